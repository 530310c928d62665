package services

import (
	"context"
	"testing"
	"time"

	"github.com/ye-gang-jjang/vinyl-alert-api/internal/apperr"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/types"
)

func TestListingAdd_SoldOutClearsPriceAtCreation(t *testing.T) {
	env := newTestEnv(t)

	env.mustCreateStore(t, "Seoul Vinyl", "s1")
	release := env.mustCreateRelease(t, "A", "B")
	view := env.mustAddListing(t, parseID(t, release.ID), "s1", int64p(30000), types.ListingStatusSoldOut)

	if view.Listings[0].Price != nil {
		t.Fatalf("expected nil price on sold-out creation, got %d", *view.Listings[0].Price)
	}
}

func TestListingAdd_UnknownStoreIsValidationError(t *testing.T) {
	env := newTestEnv(t)

	release := env.mustCreateRelease(t, "A", "B")
	_, err := env.listings.Add(context.Background(), parseID(t, release.ID), types.ListingInput{
		StoreSlug:          "nope",
		SourceProductTitle: "LP",
		URL:                "https://example.com",
	})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for unknown store, got %v", err)
	}
}

func TestListingAdd_MissingReleaseIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	env.mustCreateStore(t, "Seoul Vinyl", "s1")
	_, err := env.listings.Add(context.Background(), 999, types.ListingInput{
		StoreSlug:          "s1",
		SourceProductTitle: "LP",
		URL:                "https://example.com",
	})
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not found for missing release, got %v", err)
	}
}

func TestListingAdd_DefaultsToOnSale(t *testing.T) {
	env := newTestEnv(t)

	env.mustCreateStore(t, "Seoul Vinyl", "s1")
	release := env.mustCreateRelease(t, "A", "B")
	view := env.mustAddListing(t, parseID(t, release.ID), "s1", int64p(30000), "")

	if view.Listings[0].Status != types.ListingStatusOnSale {
		t.Fatalf("expected default ON_SALE, got %s", view.Listings[0].Status)
	}
}

func setupListing(t *testing.T, env *testEnv, price *int64, status string) int64 {
	t.Helper()
	env.mustCreateStore(t, "Seoul Vinyl", "s1")
	release := env.mustCreateRelease(t, "A", "B")
	view := env.mustAddListing(t, parseID(t, release.ID), "s1", price, status)
	return parseID(t, view.Listings[0].ID)
}

func TestListingUpdate_NullStatusRejected(t *testing.T) {
	env := newTestEnv(t)
	id := setupListing(t, env, int64p(30000), types.ListingStatusOnSale)

	_, err := env.listings.Update(context.Background(), id, types.ListingPatch{StatusSet: true, Status: nil})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error for null status, got %v", err)
	}
}

func TestListingUpdate_MissingIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.listings.Update(context.Background(), 999, types.ListingPatch{})
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListingUpdate_NoOpDoesNotBumpCollectedAt(t *testing.T) {
	env := newTestEnv(t)
	env.setClock(testBase)
	id := setupListing(t, env, int64p(30000), types.ListingStatusOnSale)

	env.setClock(testBase.Add(time.Hour))

	// Empty patch.
	view, err := env.listings.Update(context.Background(), id, types.ListingPatch{})
	if err != nil {
		t.Fatalf("empty patch: %v", err)
	}
	if !view.CollectedAt.Equal(testBase) {
		t.Fatalf("empty patch must not bump collectedAt, got %v", view.CollectedAt)
	}

	// Same status it already holds.
	same := types.ListingStatusOnSale
	view, err = env.listings.Update(context.Background(), id, types.ListingPatch{StatusSet: true, Status: &same})
	if err != nil {
		t.Fatalf("same-status patch: %v", err)
	}
	if !view.CollectedAt.Equal(testBase) {
		t.Fatalf("same-status patch must not bump collectedAt, got %v", view.CollectedAt)
	}

	// Same price it already holds.
	view, err = env.listings.Update(context.Background(), id, types.ListingPatch{PriceSet: true, Price: int64p(30000)})
	if err != nil {
		t.Fatalf("same-price patch: %v", err)
	}
	if !view.CollectedAt.Equal(testBase) {
		t.Fatalf("same-price patch must not bump collectedAt, got %v", view.CollectedAt)
	}
}

func TestListingUpdate_ChangeBumpsCollectedAt(t *testing.T) {
	env := newTestEnv(t)
	env.setClock(testBase)
	id := setupListing(t, env, int64p(30000), types.ListingStatusOnSale)

	bumped := testBase.Add(time.Hour)
	env.setClock(bumped)

	preorder := types.ListingStatusPreorder
	view, err := env.listings.Update(context.Background(), id, types.ListingPatch{StatusSet: true, Status: &preorder})
	if err != nil {
		t.Fatalf("status patch: %v", err)
	}
	if view.Status != types.ListingStatusPreorder {
		t.Fatalf("expected PREORDER, got %s", view.Status)
	}
	if !view.CollectedAt.Equal(bumped) {
		t.Fatalf("expected collectedAt bump to %v, got %v", bumped, view.CollectedAt)
	}
}

func TestListingUpdate_SoldOutForcesNilPrice(t *testing.T) {
	env := newTestEnv(t)
	id := setupListing(t, env, int64p(30000), types.ListingStatusOnSale)

	soldOut := types.ListingStatusSoldOut
	view, err := env.listings.Update(context.Background(), id, types.ListingPatch{
		StatusSet: true,
		Status:    &soldOut,
		// Price requested in the same patch is discarded.
		PriceSet: true,
		Price:    int64p(99999),
	})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if view.Status != types.ListingStatusSoldOut {
		t.Fatalf("expected SOLD_OUT, got %s", view.Status)
	}
	if view.Price != nil {
		t.Fatalf("expected nil price entering SOLD_OUT, got %d", *view.Price)
	}
}

func TestListingUpdate_PriceIgnoredWhileSoldOut(t *testing.T) {
	env := newTestEnv(t)
	env.setClock(testBase)
	id := setupListing(t, env, nil, types.ListingStatusSoldOut)

	env.setClock(testBase.Add(time.Hour))
	view, err := env.listings.Update(context.Background(), id, types.ListingPatch{PriceSet: true, Price: int64p(30000)})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if view.Price != nil {
		t.Fatalf("price must stay nil while sold out, got %d", *view.Price)
	}
	// Nothing effectively changed, so no bump either.
	if !view.CollectedAt.Equal(testBase) {
		t.Fatalf("expected no collectedAt bump, got %v", view.CollectedAt)
	}
}

func TestListingUpdate_PriceAppliesWhenLeavingSoldOut(t *testing.T) {
	env := newTestEnv(t)
	id := setupListing(t, env, nil, types.ListingStatusSoldOut)

	onSale := types.ListingStatusOnSale
	view, err := env.listings.Update(context.Background(), id, types.ListingPatch{
		StatusSet: true,
		Status:    &onSale,
		PriceSet:  true,
		Price:     int64p(42000),
	})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if view.Status != types.ListingStatusOnSale {
		t.Fatalf("expected ON_SALE, got %s", view.Status)
	}
	if view.Price == nil || *view.Price != 42000 {
		t.Fatalf("expected price 42000 after leaving SOLD_OUT, got %v", view.Price)
	}
}

func TestListingUpdate_ExplicitNullClearsPrice(t *testing.T) {
	env := newTestEnv(t)
	env.setClock(testBase)
	id := setupListing(t, env, int64p(30000), types.ListingStatusOnSale)

	bumped := testBase.Add(time.Hour)
	env.setClock(bumped)
	view, err := env.listings.Update(context.Background(), id, types.ListingPatch{PriceSet: true, Price: nil})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if view.Price != nil {
		t.Fatalf("expected cleared price, got %d", *view.Price)
	}
	if !view.CollectedAt.Equal(bumped) {
		t.Fatalf("clearing price is a change, expected bump to %v, got %v", bumped, view.CollectedAt)
	}
}

func TestListingDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := setupListing(t, env, int64p(30000), types.ListingStatusOnSale)

	if err := env.listings.Delete(ctx, id); err != nil {
		t.Fatalf("delete listing: %v", err)
	}
	if err := env.listings.Delete(ctx, id); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
