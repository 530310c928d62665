package types

import (
	"time"
)

// Store is a sales channel identified by a stable slug. Listings point at
// it by slug, not by id; the slug is the external join key.
type Store struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null;index;column:name" json:"name"`
	Slug      string    `gorm:"not null;uniqueIndex;size:64;column:slug" json:"slug"`
	IconURL   string    `gorm:"not null;column:icon_url" json:"icon_url"`
	CreatedAt time.Time `gorm:"not null;column:created_at" json:"created_at"`
}

func (Store) TableName() string {
	return "stores"
}
