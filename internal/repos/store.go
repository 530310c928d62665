package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ye-gang-jjang/vinyl-alert-api/internal/logger"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/types"
)

type StoreRepo interface {
	Create(ctx context.Context, tx *gorm.DB, store *types.Store) (*types.Store, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Store, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Store, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Store, error)
	Delete(ctx context.Context, tx *gorm.DB, id int64) error
}

type storeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStoreRepo(db *gorm.DB, baseLog *logger.Logger) StoreRepo {
	return &storeRepo{db: db, log: baseLog.With("repo", "StoreRepo")}
}

func (sr *storeRepo) Create(ctx context.Context, tx *gorm.DB, store *types.Store) (*types.Store, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if err := transaction.WithContext(ctx).Create(store).Error; err != nil {
		return nil, err
	}
	return store, nil
}

// GetByID returns nil, nil when the store does not exist.
func (sr *storeRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Store, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var result types.Store
	if err := transaction.WithContext(ctx).
		First(&result, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// GetBySlug returns nil, nil when no store carries the slug.
func (sr *storeRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Store, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var result types.Store
	if err := transaction.WithContext(ctx).
		First(&result, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// List returns all stores ordered by name ascending.
func (sr *storeRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Store, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.Store
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *storeRepo) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Delete(&types.Store{}, "id = ?", id).Error
}
