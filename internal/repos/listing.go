package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ye-gang-jjang/vinyl-alert-api/internal/logger"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/types"
)

type ListingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, listing *types.Listing) (*types.Listing, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Listing, error)
	ListByReleaseID(ctx context.Context, tx *gorm.DB, releaseID int64) ([]*types.Listing, error)
	ListByReleaseIDs(ctx context.Context, tx *gorm.DB, releaseIDs []int64) ([]*types.Listing, error)
	Save(ctx context.Context, tx *gorm.DB, listing *types.Listing) error
	Delete(ctx context.Context, tx *gorm.DB, id int64) error
	CountByReleaseID(ctx context.Context, tx *gorm.DB, releaseID int64) (int64, error)
	CountBySourceSlug(ctx context.Context, tx *gorm.DB, slug string) (int64, error)
	CountsBySourceSlug(ctx context.Context, tx *gorm.DB) (map[string]int64, error)
}

type listingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewListingRepo(db *gorm.DB, baseLog *logger.Logger) ListingRepo {
	return &listingRepo{db: db, log: baseLog.With("repo", "ListingRepo")}
}

func (lr *listingRepo) Create(ctx context.Context, tx *gorm.DB, listing *types.Listing) (*types.Listing, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	if err := transaction.WithContext(ctx).Create(listing).Error; err != nil {
		return nil, err
	}
	return listing, nil
}

// GetByID returns nil, nil when the listing does not exist.
func (lr *listingRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.Listing, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var result types.Listing
	if err := transaction.WithContext(ctx).
		First(&result, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (lr *listingRepo) ListByReleaseID(ctx context.Context, tx *gorm.DB, releaseID int64) ([]*types.Listing, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var results []*types.Listing
	if err := transaction.WithContext(ctx).
		Where("release_id = ?", releaseID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *listingRepo) ListByReleaseIDs(ctx context.Context, tx *gorm.DB, releaseIDs []int64) ([]*types.Listing, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var results []*types.Listing
	if len(releaseIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("release_id IN ?", releaseIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *listingRepo) Save(ctx context.Context, tx *gorm.DB, listing *types.Listing) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).Save(listing).Error
}

func (lr *listingRepo) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).
		Delete(&types.Listing{}, "id = ?", id).Error
}

func (lr *listingRepo) CountByReleaseID(ctx context.Context, tx *gorm.DB, releaseID int64) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Listing{}).
		Where("release_id = ?", releaseID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (lr *listingRepo) CountBySourceSlug(ctx context.Context, tx *gorm.DB, slug string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Listing{}).
		Where("source_slug = ?", slug).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountsBySourceSlug returns how many listings reference each store slug.
// Slugs with no listings are absent from the map.
func (lr *listingRepo) CountsBySourceSlug(ctx context.Context, tx *gorm.DB) (map[string]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var rows []struct {
		SourceSlug string
		Count      int64
	}
	if err := transaction.WithContext(ctx).
		Model(&types.Listing{}).
		Select("source_slug, COUNT(*) AS count").
		Group("source_slug").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.SourceSlug] = row.Count
	}
	return counts, nil
}
