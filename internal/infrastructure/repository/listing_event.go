package repository

import (
	"context"
	"fmt"

	"rental-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListingEventRepository struct {
	DB *gorm.DB
}

func NewListingEventRepository(db *gorm.DB) *ListingEventRepository {
	return &ListingEventRepository{DB: db}
}

var _ domain.ListingEventRepository = (*ListingEventRepository)(nil)

// ListByListing returns the listing's audit trail, oldest first. It still
// answers after the listing itself has been deleted.
func (r *ListingEventRepository) ListByListing(ctx context.Context, listingID uuid.UUID) ([]domain.ListingEvent, error) {
	events := []domain.ListingEvent{}
	if err := r.DB.WithContext(ctx).Where("listing_id = ?", listingID).Order("created_at ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list listing events: %w", err)
	}
	return events, nil
}
