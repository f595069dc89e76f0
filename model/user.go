// Package model defines database models
package model

// User is this service's local account record for an identity issued
// by the external auth provider. Rows are created lazily the first
// time an identity does anything video-related, so the email is a
// placeholder until real profile data arrives out of band.
type User struct {
	ID        string `gorm:"primaryKey" json:"id"`
	Email     string `gorm:"unique;not null" json:"email"`
	CreatedAt int64  `gorm:"not null" json:"createdAt"`

	Videos []Video `gorm:"foreignKey:UserID" json:"-"`
}
