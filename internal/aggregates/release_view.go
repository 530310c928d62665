// Package aggregates derives the response representations the front end
// consumes. Derivations are pure: they read rows already loaded by a
// service transaction and never touch the database.
package aggregates

import (
	"sort"
	"strconv"
	"time"

	"github.com/ye-gang-jjang/vinyl-alert-api/internal/types"
)

// ListingView is one row of a release view. Store name and icon are
// resolved live against the store directory; a listing whose slug no
// longer resolves renders with empty name and icon.
type ListingView struct {
	ID                 string    `json:"id"`
	StoreName          string    `json:"storeName"`
	StoreIconURL       string    `json:"storeIconUrl"`
	SourceProductTitle string    `json:"sourceProductTitle"`
	URL                string    `json:"url"`
	CollectedAt        time.Time `json:"collectedAt"`
	Price              *int64    `json:"price"`
	Status             string    `json:"status"`
}

type ReleaseView struct {
	ID            string    `json:"id"`
	ArtistName    string    `json:"artistName"`
	AlbumTitle    string    `json:"albumTitle"`
	CoverImageURL *string   `json:"coverImageUrl"`
	CreatedAt     time.Time `json:"createdAt"`
	// LatestCollectedAt is the newest collected_at across the listings,
	// null when the release has none.
	LatestCollectedAt *time.Time `json:"latestCollectedAt"`
	// StoresCount counts listings, not distinct stores. A store offering
	// the release twice is counted twice. Historical field name.
	StoresCount int           `json:"storesCount"`
	Listings    []ListingView `json:"listings"`
}

type StoreView struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	IconURL       string    `json:"iconUrl"`
	ListingsCount int64     `json:"listingsCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// StoresBySlug indexes a store directory snapshot for view resolution.
func StoresBySlug(stores []*types.Store) map[string]*types.Store {
	bySlug := make(map[string]*types.Store, len(stores))
	for _, s := range stores {
		bySlug[s.Slug] = s
	}
	return bySlug
}

func BuildListingView(listing *types.Listing, store *types.Store) ListingView {
	view := ListingView{
		ID:                 strconv.FormatInt(listing.ID, 10),
		SourceProductTitle: listing.SourceProductTitle,
		URL:                listing.URL,
		CollectedAt:        listing.CollectedAt,
		Price:              listing.Price,
		Status:             listing.Status,
	}
	if store != nil {
		view.StoreName = store.Name
		view.StoreIconURL = store.IconURL
	}
	return view
}

// BuildReleaseView assembles the release response: listings sorted by
// status priority (preorder, on sale, sold out, unknown last) and, within
// equal priority, newest collected first.
func BuildReleaseView(release *types.Release, listings []*types.Listing, storesBySlug map[string]*types.Store) *ReleaseView {
	sorted := make([]*types.Listing, len(listings))
	copy(sorted, listings)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi := types.ListingStatusPriority(sorted[i].Status)
		pj := types.ListingStatusPriority(sorted[j].Status)
		if pi != pj {
			return pi < pj
		}
		return sorted[i].CollectedAt.After(sorted[j].CollectedAt)
	})

	views := make([]ListingView, 0, len(sorted))
	var latest *time.Time
	for _, l := range sorted {
		views = append(views, BuildListingView(l, storesBySlug[l.SourceSlug]))
		if latest == nil || l.CollectedAt.After(*latest) {
			t := l.CollectedAt
			latest = &t
		}
	}

	return &ReleaseView{
		ID:                strconv.FormatInt(release.ID, 10),
		ArtistName:        release.ArtistName,
		AlbumTitle:        release.AlbumTitle,
		CoverImageURL:     release.CoverImageURL,
		CreatedAt:         release.CreatedAt,
		LatestCollectedAt: latest,
		StoresCount:       len(sorted),
		Listings:          views,
	}
}

func BuildStoreView(store *types.Store, listingsCount int64) *StoreView {
	return &StoreView{
		ID:            strconv.FormatInt(store.ID, 10),
		Name:          store.Name,
		Slug:          store.Slug,
		IconURL:       store.IconURL,
		ListingsCount: listingsCount,
		CreatedAt:     store.CreatedAt,
	}
}
