// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configPath = pflag.String("config", ".", "Directory containing config.toml")

	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDrivers   = []string{"sqlite", "postgres"}
	validProviders = []string{"cloudinary", "s3"}
)

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(*configPath)

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.cors_origins", "host_cors_origins")

	v.BindEnv("auth.jwt_secret", "auth_jwt_secret")

	v.BindEnv("db.driver", "db_driver")
	v.BindEnv("db.path", "db_path")
	v.BindEnv("db.dsn", "db_dsn")

	v.BindEnv("media.provider", "media_provider")
	v.BindEnv("media.cloud_name", "media_cloud_name")
	v.BindEnv("media.api_key", "media_api_key")
	v.BindEnv("media.api_secret", "media_api_secret")

	v.BindEnv("media.s3.region", "media_s3_region")
	v.BindEnv("media.s3.access_key_id", "media_s3_access_key_id")
	v.BindEnv("media.s3.secret_access_key", "media_s3_secret_access_key")
	v.BindEnv("media.s3.bucket", "media_s3_bucket")
	v.BindEnv("media.s3.endpoint", "media_s3_endpoint")

	v.BindEnv("upload.max_size", "upload_max_size")

	v.BindEnv("rate_limit.requests_per_second", "rate_limit_requests_per_second")
	v.BindEnv("rate_limit.burst", "rate_limit_burst")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.cors_origins", []string{"http://localhost:3000"})

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "database.db")

	v.SetDefault("media.provider", "cloudinary")

	v.SetDefault("upload.max_size", 100)

	v.SetDefault("rate_limit.requests_per_second", 20)
	v.SetDefault("rate_limit.burst", 40)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); ok {
			return errors.New("config.toml file is missing")
		}

		return fmt.Errorf("failed to read config file, %w", err)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetString("auth.jwt_secret") == "" {
		return errors.New("auth.jwt_secret is missing. Set it to the signing secret shared with your identity provider")
	}

	switch v.GetString("db.driver") {
	case "sqlite":
		if v.GetString("db.path") == "" {
			return errors.New("db.path can't be empty when using the sqlite driver")
		}
	case "postgres":
		if v.GetString("db.dsn") == "" {
			return errors.New("db.dsn can't be empty when using the postgres driver")
		}
	default:
		return errors.New("invalid db driver provided")
	}

	switch v.GetString("media.provider") {
	case "cloudinary":
		// A missing API secret is deliberately not fatal here. The sign
		// endpoint reports it as a server misconfiguration per request,
		// so the rest of the API keeps working.
		if v.GetString("media.api_secret") == "" {
			zap.L().Warn("No media.api_secret configured, upload signing will fail until one is set")
		}
	case "s3":
		{
			if v.GetString("media.s3.access_key_id") == "" {
				return errors.New("access key id can't be empty")
			}
			if v.GetString("media.s3.secret_access_key") == "" {
				return errors.New("secret access key can't be empty")
			}
			if v.GetString("media.s3.bucket") == "" {
				return errors.New("bucket can't be empty")
			}
		}
	default:
		return errors.New("invalid media provider provided")
	}

	if !slices.Contains(validProviders, v.GetString("media.provider")) {
		return errors.New("invalid media provider provided")
	}

	if !slices.Contains(validDrivers, v.GetString("db.driver")) {
		return errors.New("invalid db driver provided")
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	if v.GetInt("rate_limit.requests_per_second") <= 0 {
		return errors.New("rate_limit.requests_per_second must be bigger than 0")
	}

	// Configured in MiB, used in bytes
	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	return nil
}
