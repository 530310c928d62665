package types

import (
	"time"
)

type Release struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ArtistName    string    `gorm:"not null;index;column:artist_name" json:"artist_name"`
	AlbumTitle    string    `gorm:"not null;index;column:album_title" json:"album_title"`
	CoverImageURL *string   `gorm:"column:cover_image_url" json:"cover_image_url"`
	CreatedAt     time.Time `gorm:"not null;column:created_at" json:"created_at"`

	// Cascade is defined at the storage layer but unreachable through the
	// API: deleteRelease refuses while listings exist.
	Listings []Listing `gorm:"foreignKey:ReleaseID;constraint:OnDelete:CASCADE" json:"listings"`
}

func (Release) TableName() string {
	return "releases"
}
