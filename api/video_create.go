package api

import (
	"net/http"
	"time"

	"cloudvid/video-api/model"
	"cloudvid/video-api/service"
	"cloudvid/video-api/util"
	"cloudvid/video-api/validators"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

// Substituted when the client flow never got around to asking for one.
// Titles arrive best effort, a missing one must not lose the record
const defaultTitle = "Untitled video"

const videoIDCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

type videoCreateBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`

	// The media service calls its handle publicId, some client SDKs
	// forward it as assetId. Either spelling is accepted
	PublicID string `json:"publicId"`
	AssetID  string `json:"assetId"`

	// Sizes and durations come straight out of the media service's
	// upload response and show up as numbers, strings or not at all
	// depending on how far transcoding got. Decoded loose here, coerced
	// once below, never re-inspected after that
	OriginalSize any `json:"originalSize"`
	Duration     any `json:"duration"`

	URL   string                 `json:"url"`
	Eager []service.AssetVariant `json:"eager"`
}

// VideoCreate records the metadata of a video whose bytes already reached
// the media service. One insert on success, nothing written on any
// validation failure.
func (a *API) VideoCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data videoCreateBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.PublicID == "" {
		data.PublicID = data.AssetID
	}

	if err := validators.AssetIDValidator(data.PublicID); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	// First action by an unknown identity creates its account, so the
	// owner row always exists before the video row references it
	if _, err := service.EnsureAccount(a.DB, userID); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to provision account", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	id, err := gonanoid.Generate(videoIDCharset, 16)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate video ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	title := data.Title
	if title == "" {
		title = defaultTitle
	}

	originalSize := util.ByteSize(data.OriginalSize)

	video := model.Video{
		ID:             id,
		UserID:         userID,
		PublicID:       data.PublicID,
		Title:          title,
		Description:    data.Description,
		OriginalSize:   originalSize,
		CompressedSize: service.CompressedSize(data.Eager, originalSize),
		Duration:       util.Seconds(data.Duration),
		CreatedAt:      time.Now().UnixMilli(),
	}

	if err := a.DB.Create(&video).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save video record", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, video)
}
