package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rental-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityReview = "review"

var (
	reviewUniqueKey    = []string{"listing", "guest_name"}
	reviewOrderColumns = []string{"created_at", "rating"}
)

// ReviewRepository is the GORM implementation of domain.ReviewRepository.
type ReviewRepository struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

var _ domain.ReviewRepository = (*ReviewRepository)(nil)

func (r *ReviewRepository) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now().UTC()
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	if err := rv.Validate(); err != nil {
		return err
	}
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = r.now()
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing domain.Listing
		if err := tx.Where("listing_id = ?", rv.ListingID).First(&listing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &domain.ConstraintError{Entity: entityReview, Reason: missingListingRefs}
			}
			return err
		}
		if err := tx.Omit(clause.Associations).Create(rv).Error; err != nil {
			return translateError(entityReview, reviewUniqueKey, err)
		}
		rv.Listing = &listing
		return nil
	})
	if err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	var review domain.Review
	if err := r.DB.WithContext(ctx).Preload("Listing").Where("review_id = ?", id).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(entityReview, id)
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return &review, nil
}

func (r *ReviewRepository) List(ctx context.Context, f domain.ReviewFilter) ([]domain.Review, error) {
	order, err := orderClause(f.Order, reviewOrderColumns, "created_at DESC", "review_id")
	if err != nil {
		return nil, err
	}
	q := r.DB.WithContext(ctx).Preload("Listing")
	if f.ListingID != nil {
		q = q.Where("listing_id = ?", *f.ListingID)
	}
	reviews := []domain.Review{}
	if err := q.Order(order).Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

func (r *ReviewRepository) Update(ctx context.Context, id uuid.UUID, p domain.ReviewPatch) (*domain.Review, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.IsEmpty() {
		return nil, noChanges()
	}

	var review domain.Review
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Review{}).Where("review_id = ?", id).Updates(p.Columns())
		if res.Error != nil {
			return translateError(entityReview, reviewUniqueKey, res.Error)
		}
		if res.RowsAffected == 0 {
			return notFound(entityReview, id)
		}
		return tx.Preload("Listing").Where("review_id = ?", id).First(&review).Error
	})
	if err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return &review, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("review_id = ?", id).Delete(&domain.Review{})
	if res.Error != nil {
		return fmt.Errorf("delete review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(entityReview, id)
	}
	return nil
}

func (r *ReviewRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.DB.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.Review{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete all reviews: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *ReviewRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&domain.Review{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count reviews: %w", err)
	}
	return n, nil
}
