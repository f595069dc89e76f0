// Package db contains the database connection setup
package db

import (
	"fmt"

	"cloudvid/video-api/model"

	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New() (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch viper.GetString("db.driver") {
	case "postgres":
		db, err = gorm.Open(postgres.Open(viper.GetString("db.dsn")))
	default:
		db, err = gorm.Open(sqlite.Open(viper.GetString("db.path")))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database, %w", err)
	}

	err = db.AutoMigrate(model.User{}, model.Video{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
