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

const (
	entityBooking      = "booking"
	missingListingRefs = "listing does not exist"
)

var (
	bookingUniqueKey    = []string{"listing", "guest_email", "check_in_date"}
	bookingOrderColumns = []string{"check_in_date", "check_out_date", "created_at", "total_price"}
)

// BookingRepository is the GORM implementation of domain.BookingRepository.
// Reads preload the parent listing so callers can show its title.
type BookingRepository struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{DB: db}
}

var _ domain.BookingRepository = (*BookingRepository)(nil)

func (r *BookingRepository) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now().UTC()
}

// Create stores b as given; TotalPrice must already be computed. A booking for
// a listing that does not exist fails with a ConstraintError, a repeated
// (listing, guest_email, check_in_date) with a UniquenessError.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = r.now()
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing domain.Listing
		if err := tx.Where("listing_id = ?", b.ListingID).First(&listing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &domain.ConstraintError{Entity: entityBooking, Reason: missingListingRefs}
			}
			return err
		}
		if err := tx.Omit(clause.Associations).Create(b).Error; err != nil {
			return translateError(entityBooking, bookingUniqueKey, err)
		}
		b.Listing = &listing
		return nil
	})
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var booking domain.Booking
	if err := r.DB.WithContext(ctx).Preload("Listing").Where("booking_id = ?", id).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(entityBooking, id)
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &booking, nil
}

func (r *BookingRepository) List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	order, err := orderClause(f.Order, bookingOrderColumns, "check_in_date ASC", "booking_id")
	if err != nil {
		return nil, err
	}
	q := r.DB.WithContext(ctx).Preload("Listing")
	if f.ListingID != nil {
		q = q.Where("listing_id = ?", *f.ListingID)
	}
	bookings := []domain.Booking{}
	if err := q.Order(order).Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// Update changes guest contact details only.
func (r *BookingRepository) Update(ctx context.Context, id uuid.UUID, p domain.BookingPatch) (*domain.Booking, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.IsEmpty() {
		return nil, noChanges()
	}

	var booking domain.Booking
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Booking{}).Where("booking_id = ?", id).Updates(p.Columns())
		if res.Error != nil {
			return translateError(entityBooking, bookingUniqueKey, res.Error)
		}
		if res.RowsAffected == 0 {
			return notFound(entityBooking, id)
		}
		return tx.Preload("Listing").Where("booking_id = ?", id).First(&booking).Error
	})
	if err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	return &booking, nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("booking_id = ?", id).Delete(&domain.Booking{})
	if res.Error != nil {
		return fmt.Errorf("delete booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(entityBooking, id)
	}
	return nil
}

func (r *BookingRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.DB.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.Booking{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete all bookings: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&domain.Booking{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}
