package api

import (
	"net/http"

	"cloudvid/video-api/security"
	"cloudvid/video-api/validators"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type signBody struct {
	ParamsToSign map[string]any `json:"paramsToSign"`
}

// UploadSign authorizes a direct client upload to the media service by
// signing the exact parameter set the client declared. Pure function of
// the request, nothing is persisted here.
func (a *API) UploadSign(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data signBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.UploadParamsValidator(data.ParamsToSign); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	// A missing secret is our fault, not the caller's. Don't ever fall
	// through to signing with an empty string
	secret := viper.GetString("media.api_secret")
	if secret == "" {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Server misconfiguration",
			"requestID": requestID,
		})

		zap.L().Error("media.api_secret is not configured, refusing to sign", zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"signature": security.SignUploadParams(data.ParamsToSign, secret),
	})
}
