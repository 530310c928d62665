package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ye-gang-jjang/vinyl-alert-api/internal/aggregates"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/apperr"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/logger"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/repos"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/types"
)

type StoreService interface {
	Create(ctx context.Context, in types.StoreInput) (*aggregates.StoreView, error)
	List(ctx context.Context) ([]*aggregates.StoreView, error)
	Delete(ctx context.Context, id int64) error
}

type storeService struct {
	db          *gorm.DB
	log         *logger.Logger
	storeRepo   repos.StoreRepo
	listingRepo repos.ListingRepo
	now         func() time.Time
}

func NewStoreService(
	db *gorm.DB,
	baseLog *logger.Logger,
	storeRepo repos.StoreRepo,
	listingRepo repos.ListingRepo,
) StoreService {
	return &storeService{
		db:          db,
		log:         baseLog.With("service", "StoreService"),
		storeRepo:   storeRepo,
		listingRepo: listingRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (ss *storeService) Create(ctx context.Context, in types.StoreInput) (*aggregates.StoreView, error) {
	store := &types.Store{
		Name:      in.Name,
		Slug:      in.Slug,
		IconURL:   in.IconURL,
		CreatedAt: ss.now(),
	}
	if err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := ss.storeRepo.GetBySlug(ctx, tx, in.Slug)
		if err != nil {
			return fmt.Errorf("check slug: %w", err)
		}
		if existing != nil {
			return apperr.Conflict("store_slug_exists", "store slug %q already registered", in.Slug)
		}
		if _, err := ss.storeRepo.Create(ctx, tx, store); err != nil {
			// Two concurrent creates can both pass the lookup; the unique
			// index decides the loser at commit.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("store_slug_exists", "store slug %q already registered", in.Slug)
			}
			return fmt.Errorf("create store: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return aggregates.BuildStoreView(store, 0), nil
}

func (ss *storeService) List(ctx context.Context) ([]*aggregates.StoreView, error) {
	var views []*aggregates.StoreView
	if err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stores, err := ss.storeRepo.List(ctx, tx)
		if err != nil {
			return fmt.Errorf("load stores: %w", err)
		}
		counts, err := ss.listingRepo.CountsBySourceSlug(ctx, tx)
		if err != nil {
			return fmt.Errorf("count listings: %w", err)
		}
		views = make([]*aggregates.StoreView, 0, len(stores))
		for _, s := range stores {
			views = append(views, aggregates.BuildStoreView(s, counts[s.Slug]))
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return views, nil
}

func (ss *storeService) Delete(ctx context.Context, id int64) error {
	return ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		store, err := ss.storeRepo.GetByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("load store: %w", err)
		}
		if store == nil {
			return apperr.NotFound("store_not_found", "store %d not found", id)
		}
		count, err := ss.listingRepo.CountBySourceSlug(ctx, tx, store.Slug)
		if err != nil {
			return fmt.Errorf("count listings: %w", err)
		}
		if count > 0 {
			return apperr.Conflict("store_referenced", "store is referenced by %d listings", count)
		}
		return ss.storeRepo.Delete(ctx, tx, id)
	})
}
