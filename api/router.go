// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"cloudvid/video-api/aws"
	"cloudvid/video-api/db"
	"cloudvid/video-api/middleware"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

// Small bodies only: signing params and metadata descriptors. The actual
// video bytes go straight from the client to the media service
const jsonBodyLimit = 1 << 20

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
	S3     *aws.S3Client
}

func NewRouter() (*API, error) {
	a := &API{}

	db, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = db

	makeLogger()

	// The S3 backed media store only exists in self hosted mode. In
	// cloudinary mode uploads never touch this server
	if viper.GetString("media.provider") == "s3" {
		s3, err := aws.NewS3()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
		}
		a.S3 = s3
	}

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors_origins"),
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	a.registerRoutes()

	return a, nil
}

func (a *API) registerRoutes() {
	auth := middleware.NewAuthMiddleware()
	maxUploadSize := viper.GetInt64("upload.max_size")

	main := a.Router.Group("/api", middleware.NewRateLimiterMiddleware(
		viper.GetInt("rate_limit.requests_per_second"),
		viper.GetInt("rate_limit.burst"),
	))
	{
		// HEAD /api/heartbeat		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)
	}

	uploads := main.Group("/uploads", auth)
	{
		// POST /api/uploads/sign	-> Signs upload params for a direct client upload
		uploads.POST("/sign", middleware.BodySizeLimiter(jsonBodyLimit), a.UploadSign)

		// POST /api/uploads/proxy	-> Relays an upload through the server (s3 mode only)
		if a.S3 != nil {
			uploads.POST("/proxy", middleware.BodySizeLimiter(maxUploadSize), a.UploadProxy)
		}
	}

	videos := main.Group("/videos", auth)
	{
		// POST /api/videos		-> Records the metadata of an uploaded video
		videos.POST("", middleware.BodySizeLimiter(jsonBodyLimit), a.VideoCreate)

		// GET /api/videos		-> Lists the caller's videos, newest first
		videos.GET("", a.VideoList)
	}
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
