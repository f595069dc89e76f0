// Package service contains the business logic shared between endpoints
package service

import (
	"fmt"
	"time"

	"cloudvid/video-api/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnsureAccount returns the local account for an identity issued by the
// auth provider, creating it on first contact. Creation is a single
// insert-if-absent guarded by the primary key, so two racing first
// requests from the same identity end up with exactly one row and both
// calls succeed.
//
// The email is a synthetic placeholder. Real profile data is synced by
// the identity provider's webhook, which may land long after the first
// upload.
func EnsureAccount(d *gorm.DB, userID string) (*model.User, error) {
	user := model.User{
		ID:        userID,
		Email:     fmt.Sprintf("user_%s@placeholder.com", userID),
		CreatedAt: time.Now().UnixMilli(),
	}

	err := d.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&user).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to provision account, %w", err)
	}

	// The conflict path leaves the struct untouched, read back whatever
	// row actually won
	err = d.First(&user, "id = ?", userID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load provisioned account, %w", err)
	}

	return &user, nil
}
