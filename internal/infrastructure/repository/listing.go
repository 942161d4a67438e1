package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rental-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const entityListing = "listing"

var listingOrderColumns = []string{"created_at", "updated_at", "price_per_night", "title", "max_guests", "bedrooms"}

// ListingRepository is the GORM implementation of domain.ListingRepository.
// Every mutation also writes a ListingEvent in the same transaction.
type ListingRepository struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{DB: db}
}

var _ domain.ListingRepository = (*ListingRepository)(nil)

func (r *ListingRepository) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now().UTC()
}

// Create stores l. A preset CreatedAt is kept (the seed generator backdates
// listings); UpdatedAt is never earlier than CreatedAt.
func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	now := r.now()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now
	if l.UpdatedAt.Before(l.CreatedAt) {
		l.UpdatedAt = l.CreatedAt
	}
	if err := l.Validate(); err != nil {
		return err
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(l).Error; err != nil {
			return translateError(entityListing, nil, err)
		}
		return r.recordEvent(tx, l.ID, domain.ListingEventCreated, map[string]interface{}{
			"title":           l.Title,
			"price_per_night": l.PricePerNight,
			"is_published":    l.IsPublished,
		})
	})
	if err != nil {
		return fmt.Errorf("create listing: %w", err)
	}
	return nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	var listing domain.Listing
	if err := r.DB.WithContext(ctx).Where("listing_id = ?", id).First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(entityListing, id)
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return &listing, nil
}

func (r *ListingRepository) List(ctx context.Context, f domain.ListingFilter) ([]domain.Listing, error) {
	order, err := orderClause(f.Order, listingOrderColumns, "created_at DESC", "listing_id")
	if err != nil {
		return nil, err
	}
	q := r.DB.WithContext(ctx)
	if f.Published != nil {
		q = q.Where("is_published = ?", *f.Published)
	}
	listings := []domain.Listing{}
	if err := q.Order(order).Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return listings, nil
}

// Update applies p and always refreshes updated_at.
func (r *ListingRepository) Update(ctx context.Context, id uuid.UUID, p domain.ListingPatch) (*domain.Listing, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.IsEmpty() {
		return nil, noChanges()
	}

	var listing domain.Listing
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", id).First(&listing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(entityListing, id)
			}
			return err
		}

		changes := p.Columns()
		cols := make(map[string]interface{}, len(changes)+1)
		for k, v := range changes {
			cols[k] = v
		}
		updatedAt := r.now()
		if updatedAt.Before(listing.CreatedAt) {
			updatedAt = listing.CreatedAt
		}
		cols["updated_at"] = updatedAt

		if err := tx.Model(&domain.Listing{}).Where("listing_id = ?", id).Updates(cols).Error; err != nil {
			return translateError(entityListing, nil, err)
		}
		if err := tx.Where("listing_id = ?", id).First(&listing).Error; err != nil {
			return err
		}
		return r.recordEvent(tx, id, domain.ListingEventUpdated, changes)
	})
	if err != nil {
		return nil, fmt.Errorf("update listing: %w", err)
	}
	return &listing, nil
}

// Delete removes the listing together with all its reviews and bookings.
// Either everything is removed or nothing is.
func (r *ListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing domain.Listing
		if err := tx.Where("listing_id = ?", id).First(&listing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(entityListing, id)
			}
			return err
		}
		reviews := tx.Where("listing_id = ?", id).Delete(&domain.Review{})
		if reviews.Error != nil {
			return reviews.Error
		}
		bookings := tx.Where("listing_id = ?", id).Delete(&domain.Booking{})
		if bookings.Error != nil {
			return bookings.Error
		}
		if err := tx.Where("listing_id = ?", id).Delete(&domain.Listing{}).Error; err != nil {
			return err
		}
		return r.recordEvent(tx, id, domain.ListingEventDeleted, map[string]interface{}{
			"title":            listing.Title,
			"bookings_deleted": bookings.RowsAffected,
			"reviews_deleted":  reviews.RowsAffected,
		})
	})
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	return nil
}

// DeleteAll removes every listing and, with them, every booking and review.
func (r *ListingRepository) DeleteAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&domain.Review{}).Error; err != nil {
			return err
		}
		if err := all.Delete(&domain.Booking{}).Error; err != nil {
			return err
		}
		res := all.Delete(&domain.Listing{})
		n = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("delete all listings: %w", err)
	}
	return n, nil
}

func (r *ListingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&domain.Listing{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count listings: %w", err)
	}
	return n, nil
}

func (r *ListingRepository) recordEvent(tx *gorm.DB, listingID uuid.UUID, eventType string, data map[string]interface{}) error {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode listing event: %w", err)
	}
	return tx.Create(&domain.ListingEvent{
		ListingID: listingID,
		EventType: eventType,
		EventData: datatypes.JSON(b),
		CreatedAt: r.now(),
	}).Error
}
