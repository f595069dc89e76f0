package model

type Video struct {
	ID     string `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"index;not null" json:"-"`

	// Permanent handle into the media service. Required, never changes.
	// Deliberately not unique: re-submitting the same asset creates a
	// new record instead of failing
	PublicID string `gorm:"index;not null" json:"publicId"`

	Title       string `json:"title"`
	Description string `json:"description"`

	// Byte counts are kept as decimal strings so values past float64
	// precision survive JSON round trips untouched
	OriginalSize   string `json:"originalSize"`
	CompressedSize string `json:"compressedSize"`

	// Seconds
	Duration float64 `json:"duration"`

	// Unix millisecond timestamp
	CreatedAt int64 `gorm:"not null;index" json:"createdAt"`
}
