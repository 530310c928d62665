package types

import (
	"time"
)

const (
	ListingStatusOnSale   = "ON_SALE"
	ListingStatusPreorder = "PREORDER"
	ListingStatusSoldOut  = "SOLD_OUT"
)

// ValidListingStatus reports whether s is one of the three known statuses.
func ValidListingStatus(s string) bool {
	switch s {
	case ListingStatusOnSale, ListingStatusPreorder, ListingStatusSoldOut:
		return true
	}
	return false
}

// ListingStatusPriority orders statuses for display: preorders first, then
// on-sale, then sold-out. Unknown statuses sink to the bottom.
func ListingStatusPriority(s string) int {
	switch s {
	case ListingStatusPreorder:
		return 0
	case ListingStatusOnSale:
		return 1
	case ListingStatusSoldOut:
		return 2
	}
	return 99
}

// Listing is one store's current offer for one release. SourceSlug points
// at stores.slug without a database foreign key; the service layer checks
// the slug resolves at creation time.
type Listing struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ReleaseID          int64     `gorm:"not null;index;column:release_id" json:"release_id"`
	SourceSlug         string    `gorm:"not null;index;size:64;column:source_slug" json:"source_slug"`
	SourceProductTitle string    `gorm:"not null;column:source_product_title" json:"source_product_title"`
	URL                string    `gorm:"not null;column:url" json:"url"`
	Price              *int64    `gorm:"column:price" json:"price"`
	Status             string    `gorm:"not null;default:ON_SALE;size:20;column:status" json:"status"`
	CollectedAt        time.Time `gorm:"not null;column:collected_at" json:"collected_at"`
}

func (Listing) TableName() string {
	return "listings"
}
