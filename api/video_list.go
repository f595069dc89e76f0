package api

import (
	"net/http"

	"cloudvid/video-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VideoList returns every video owned by the caller, newest first. An
// identity with no uploads gets an empty array, not an error.
func (a *API) VideoList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	entries := []model.Video{}

	err := a.DB.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&entries).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to lookup user videos", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, entries)
}
