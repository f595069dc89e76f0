package api

import (
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"cloudvid/video-api/model"
	"cloudvid/video-api/service"
	"cloudvid/video-api/util"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

// Above this the upload goes through the multipart manager instead of a
// single PutObject
const multipartLimit = 100 << 20

// UploadProxy relays a video through the server into the S3 backed media
// bucket, for clients that can't do the direct browser upload. Only
// registered in s3 mode. After the bytes land it runs the same
// provisioning and metadata path as VideoCreate, with the observed size.
func (a *API) UploadProxy(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	if !strings.HasPrefix(c.Request.Header.Get("Content-Type"), "multipart/form-data") {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request",
			"requestID": requestID,
		})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid multipart form",
			"requestID": requestID,
		})

		zap.L().Debug("Failed to parse multipart form", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No file provided",
			"requestID": requestID,
		})
		return
	}

	fh := files[0]

	f, err := fh.Open()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to open uploaded file", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	defer f.Close()

	key, err := gonanoid.Generate(videoIDCharset, 16)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate object key", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	key += path.Ext(fh.Filename)

	put := &s3.PutObjectInput{
		Bucket:        a.S3.Bucket,
		Key:           aws.String(key),
		Body:          f,
		ContentLength: &fh.Size,
		ContentType:   aws.String("video/mp4"),
	}

	now := time.Now()

	if fh.Size > multipartLimit {
		u := manager.NewUploader(a.S3.C, func(u *manager.Uploader) {
			u.Concurrency = 5
			u.PartSize = 5 << 20
		})

		_, err = u.Upload(c.Request.Context(), put)
	} else {
		_, err = a.S3.C.PutObject(c.Request.Context(), put)
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to upload file to S3", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	zap.L().Debug("File uploaded", zap.Duration("took", time.Since(now)), zap.String("requestID", requestID))

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

	title := c.PostForm("title")
	if title == "" {
		title = defaultTitle
	}

	// The relay sees the real byte count, no client declared value to
	// distrust. No transcode has happened yet either, so the processed
	// size mirrors it until reconciliation
	size := strconv.FormatInt(fh.Size, 10)

	video := model.Video{
		ID:             id,
		UserID:         userID,
		PublicID:       key,
		Title:          title,
		Description:    c.PostForm("description"),
		OriginalSize:   size,
		CompressedSize: size,
		Duration:       util.Seconds(c.PostForm("duration")),
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
