package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ye-gang-jjang/vinyl-alert-api/internal/aggregates"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/apperr"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/logger"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/repos"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/types"
)

type ListingService interface {
	// Add creates a listing under a release and returns the updated
	// release view.
	Add(ctx context.Context, releaseID int64, in types.ListingInput) (*aggregates.ReleaseView, error)
	Update(ctx context.Context, id int64, patch types.ListingPatch) (*aggregates.ListingView, error)
	Delete(ctx context.Context, id int64) error
}

type listingService struct {
	db          *gorm.DB
	log         *logger.Logger
	listingRepo repos.ListingRepo
	releaseRepo repos.ReleaseRepo
	storeRepo   repos.StoreRepo
	now         func() time.Time
}

func NewListingService(
	db *gorm.DB,
	baseLog *logger.Logger,
	listingRepo repos.ListingRepo,
	releaseRepo repos.ReleaseRepo,
	storeRepo repos.StoreRepo,
) ListingService {
	return &listingService{
		db:          db,
		log:         baseLog.With("service", "ListingService"),
		listingRepo: listingRepo,
		releaseRepo: releaseRepo,
		storeRepo:   storeRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (ls *listingService) Add(ctx context.Context, releaseID int64, in types.ListingInput) (*aggregates.ReleaseView, error) {
	status := in.Status
	if status == "" {
		status = types.ListingStatusOnSale
	}
	if !types.ValidListingStatus(status) {
		return nil, apperr.Validation("invalid_status", "invalid listing status %q", in.Status)
	}
	price := in.Price
	if status == types.ListingStatusSoldOut {
		// Sold-out listings never carry a price.
		price = nil
	}

	var view *aggregates.ReleaseView
	if err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		release, err := ls.releaseRepo.GetByID(ctx, tx, releaseID)
		if err != nil {
			return fmt.Errorf("load release: %w", err)
		}
		if release == nil {
			return apperr.NotFound("release_not_found", "release %d not found", releaseID)
		}
		store, err := ls.storeRepo.GetBySlug(ctx, tx, in.StoreSlug)
		if err != nil {
			return fmt.Errorf("load store: %w", err)
		}
		if store == nil {
			return apperr.Validation("unknown_store", "unknown store slug %q", in.StoreSlug)
		}
		listing := &types.Listing{
			ReleaseID:          release.ID,
			SourceSlug:         store.Slug,
			SourceProductTitle: in.SourceProductTitle,
			URL:                in.URL,
			Price:              price,
			Status:             status,
			CollectedAt:        ls.now(),
		}
		if _, err := ls.listingRepo.Create(ctx, tx, listing); err != nil {
			return fmt.Errorf("create listing: %w", err)
		}
		view, err = loadReleaseView(ctx, tx, release, ls.listingRepo, ls.storeRepo)
		return err
	}); err != nil {
		return nil, err
	}
	return view, nil
}

func int64PtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (ls *listingService) Update(ctx context.Context, id int64, patch types.ListingPatch) (*aggregates.ListingView, error) {
	if patch.StatusSet && patch.Status == nil {
		return nil, apperr.Validation("null_status", "status cannot be null")
	}
	if patch.StatusSet && !types.ValidListingStatus(*patch.Status) {
		return nil, apperr.Validation("invalid_status", "invalid listing status %q", *patch.Status)
	}

	var view *aggregates.ListingView
	if err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		listing, err := ls.listingRepo.GetByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("load listing: %w", err)
		}
		if listing == nil {
			return apperr.NotFound("listing_not_found", "listing %d not found", id)
		}

		// The status change applies first; price rules see the new status.
		status := listing.Status
		if patch.StatusSet {
			status = *patch.Status
		}
		price := listing.Price
		if patch.PriceSet {
			if patch.Price == nil {
				price = nil
			} else if status != types.ListingStatusSoldOut {
				// A price for a sold-out listing is ignored, not an error.
				price = patch.Price
			}
		}
		if status == types.ListingStatusSoldOut {
			price = nil
		}

		// collected_at marks the last observed change; a no-op update must
		// not advance it.
		if status != listing.Status || !int64PtrEqual(price, listing.Price) {
			listing.Status = status
			listing.Price = price
			listing.CollectedAt = ls.now()
			if err := ls.listingRepo.Save(ctx, tx, listing); err != nil {
				return fmt.Errorf("save listing: %w", err)
			}
		}

		store, err := ls.storeRepo.GetBySlug(ctx, tx, listing.SourceSlug)
		if err != nil {
			return fmt.Errorf("load store: %w", err)
		}
		v := aggregates.BuildListingView(listing, store)
		view = &v
		return nil
	}); err != nil {
		return nil, err
	}
	return view, nil
}

func (ls *listingService) Delete(ctx context.Context, id int64) error {
	return ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		listing, err := ls.listingRepo.GetByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("load listing: %w", err)
		}
		if listing == nil {
			return apperr.NotFound("listing_not_found", "listing %d not found", id)
		}
		return ls.listingRepo.Delete(ctx, tx, id)
	})
}
