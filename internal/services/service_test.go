package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ye-gang-jjang/vinyl-alert-api/internal/aggregates"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/logger"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/repos"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/types"
)

var testDBSeq int64

type testEnv struct {
	db       *gorm.DB
	releases *releaseService
	stores   *storeService
	listings *listingService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:vinyl_alert_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	// One connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := gdb.AutoMigrate(&types.Release{}, &types.Store{}, &types.Listing{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	log := logger.NewNop()
	releaseRepo := repos.NewReleaseRepo(gdb, log)
	storeRepo := repos.NewStoreRepo(gdb, log)
	listingRepo := repos.NewListingRepo(gdb, log)

	return &testEnv{
		db:       gdb,
		releases: NewReleaseService(gdb, log, releaseRepo, listingRepo, storeRepo).(*releaseService),
		stores:   NewStoreService(gdb, log, storeRepo, listingRepo).(*storeService),
		listings: NewListingService(gdb, log, listingRepo, releaseRepo, storeRepo).(*listingService),
	}
}

var testBase = time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

// setClock pins every service's notion of now.
func (e *testEnv) setClock(at time.Time) {
	clock := func() time.Time { return at }
	e.releases.now = clock
	e.stores.now = clock
	e.listings.now = clock
}

func (e *testEnv) mustCreateStore(t *testing.T, name, slug string) *aggregates.StoreView {
	t.Helper()
	view, err := e.stores.Create(context.Background(), types.StoreInput{
		Name:    name,
		Slug:    slug,
		IconURL: "/store-icons/" + slug + ".png",
	})
	if err != nil {
		t.Fatalf("create store %s: %v", slug, err)
	}
	return view
}

func (e *testEnv) mustCreateRelease(t *testing.T, artist, album string) *aggregates.ReleaseView {
	t.Helper()
	view, err := e.releases.Create(context.Background(), types.ReleaseInput{
		ArtistName: artist,
		AlbumTitle: album,
	})
	if err != nil {
		t.Fatalf("create release %s/%s: %v", artist, album, err)
	}
	return view
}

func (e *testEnv) mustAddListing(t *testing.T, releaseID int64, slug string, price *int64, status string) *aggregates.ReleaseView {
	t.Helper()
	view, err := e.listings.Add(context.Background(), releaseID, types.ListingInput{
		StoreSlug:          slug,
		SourceProductTitle: "Test LP",
		URL:                "https://example.com/lp",
		Price:              price,
		Status:             status,
	})
	if err != nil {
		t.Fatalf("add listing: %v", err)
	}
	return view
}

func int64p(v int64) *int64 { return &v }

func parseID(t *testing.T, s string) int64 {
	t.Helper()
	var id int64
	if _, err := fmt.Sscanf(s, "%d", &id); err != nil {
		t.Fatalf("parse id %q: %v", s, err)
	}
	return id
}
