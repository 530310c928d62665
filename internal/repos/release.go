package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ye-gang-jjang/vinyl-alert-api/internal/logger"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/types"
)

type ReleaseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, release *types.Release) (*types.Release, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Release, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Release, error)
	Delete(ctx context.Context, tx *gorm.DB, id int64) error
}

type releaseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReleaseRepo(db *gorm.DB, baseLog *logger.Logger) ReleaseRepo {
	return &releaseRepo{db: db, log: baseLog.With("repo", "ReleaseRepo")}
}

func (rr *releaseRepo) Create(ctx context.Context, tx *gorm.DB, release *types.Release) (*types.Release, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if err := transaction.WithContext(ctx).Create(release).Error; err != nil {
		return nil, err
	}
	return release, nil
}

// GetByID returns nil, nil when the release does not exist.
func (rr *releaseRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Release, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var result types.Release
	if err := transaction.WithContext(ctx).
		First(&result, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

// List returns all releases, most recently created first.
func (rr *releaseRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Release, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.Release
	if err := transaction.WithContext(ctx).
		Order("id DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *releaseRepo) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Delete(&types.Release{}, "id = ?", id).Error
}
