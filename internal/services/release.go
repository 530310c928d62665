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

type ReleaseService interface {
	Create(ctx context.Context, in types.ReleaseInput) (*aggregates.ReleaseView, error)
	Get(ctx context.Context, id int64) (*aggregates.ReleaseView, error)
	List(ctx context.Context) ([]*aggregates.ReleaseView, error)
	Delete(ctx context.Context, id int64) error
}

type releaseService struct {
	db          *gorm.DB
	log         *logger.Logger
	releaseRepo repos.ReleaseRepo
	listingRepo repos.ListingRepo
	storeRepo   repos.StoreRepo
	now         func() time.Time
}

func NewReleaseService(
	db *gorm.DB,
	baseLog *logger.Logger,
	releaseRepo repos.ReleaseRepo,
	listingRepo repos.ListingRepo,
	storeRepo repos.StoreRepo,
) ReleaseService {
	return &releaseService{
		db:          db,
		log:         baseLog.With("service", "ReleaseService"),
		releaseRepo: releaseRepo,
		listingRepo: listingRepo,
		storeRepo:   storeRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// loadReleaseView joins a release with its listings and the store
// directory inside the caller's transaction.
func loadReleaseView(
	ctx context.Context,
	tx *gorm.DB,
	release *types.Release,
	listingRepo repos.ListingRepo,
	storeRepo repos.StoreRepo,
) (*aggregates.ReleaseView, error) {
	listings, err := listingRepo.ListByReleaseID(ctx, tx, release.ID)
	if err != nil {
		return nil, fmt.Errorf("load listings: %w", err)
	}
	stores, err := storeRepo.List(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("load stores: %w", err)
	}
	return aggregates.BuildReleaseView(release, listings, aggregates.StoresBySlug(stores)), nil
}

func (rs *releaseService) Create(ctx context.Context, in types.ReleaseInput) (*aggregates.ReleaseView, error) {
	release := &types.Release{
		ArtistName:    in.ArtistName,
		AlbumTitle:    in.AlbumTitle,
		CoverImageURL: in.CoverImageURL,
		CreatedAt:     rs.now(),
	}
	if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := rs.releaseRepo.Create(ctx, tx, release)
		return err
	}); err != nil {
		rs.log.Error("Create release failed", "error", err)
		return nil, fmt.Errorf("create release: %w", err)
	}
	return aggregates.BuildReleaseView(release, nil, nil), nil
}

func (rs *releaseService) Get(ctx context.Context, id int64) (*aggregates.ReleaseView, error) {
	var view *aggregates.ReleaseView
	if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		release, err := rs.releaseRepo.GetByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("load release: %w", err)
		}
		if release == nil {
			return apperr.NotFound("release_not_found", "release %d not found", id)
		}
		view, err = loadReleaseView(ctx, tx, release, rs.listingRepo, rs.storeRepo)
		return err
	}); err != nil {
		return nil, err
	}
	return view, nil
}

func (rs *releaseService) List(ctx context.Context) ([]*aggregates.ReleaseView, error) {
	var views []*aggregates.ReleaseView
	if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		releases, err := rs.releaseRepo.List(ctx, tx)
		if err != nil {
			return fmt.Errorf("load releases: %w", err)
		}
		ids := make([]int64, 0, len(releases))
		for _, r := range releases {
			ids = append(ids, r.ID)
		}
		listings, err := rs.listingRepo.ListByReleaseIDs(ctx, tx, ids)
		if err != nil {
			return fmt.Errorf("load listings: %w", err)
		}
		byRelease := make(map[int64][]*types.Listing, len(releases))
		for _, l := range listings {
			byRelease[l.ReleaseID] = append(byRelease[l.ReleaseID], l)
		}
		stores, err := rs.storeRepo.List(ctx, tx)
		if err != nil {
			return fmt.Errorf("load stores: %w", err)
		}
		bySlug := aggregates.StoresBySlug(stores)
		views = make([]*aggregates.ReleaseView, 0, len(releases))
		for _, r := range releases {
			views = append(views, aggregates.BuildReleaseView(r, byRelease[r.ID], bySlug))
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return views, nil
}

func (rs *releaseService) Delete(ctx context.Context, id int64) error {
	return rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		release, err := rs.releaseRepo.GetByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("load release: %w", err)
		}
		if release == nil {
			return apperr.NotFound("release_not_found", "release %d not found", id)
		}
		count, err := rs.listingRepo.CountByReleaseID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("count listings: %w", err)
		}
		if count > 0 {
			return apperr.Conflict("release_has_listings", "release has %d listings; delete them first", count)
		}
		return rs.releaseRepo.Delete(ctx, tx, id)
	})
}
