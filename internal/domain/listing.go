package domain

import (
	"math"
	"time"

	"rental-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Listing is a property available for booking. It owns its Bookings and Reviews.
type Listing struct {
	// Named ID so GORM resolves Booking.Listing and Review.Listing as
	// belongs-to; a field called ListingID here would read as has-one.
	ID            uuid.UUID `gorm:"column:listing_id;type:uuid;primaryKey" json:"id"`
	Title         string    `gorm:"column:title;size:255;not null" json:"title" validate:"required,max=255"`
	Description   string    `gorm:"column:description;type:text;not null" json:"description" validate:"required"`
	Address       string    `gorm:"column:address;size:255;not null" json:"address" validate:"required,max=255"`
	PricePerNight float64   `gorm:"column:price_per_night;type:decimal(10,2);not null" json:"price_per_night" validate:"gt=0,lt=100000000"`
	MaxGuests     int       `gorm:"column:max_guests;not null" json:"max_guests" validate:"gte=1"`
	Bedrooms      int       `gorm:"column:bedrooms;not null" json:"bedrooms" validate:"gte=0"`
	Bathrooms     float64   `gorm:"column:bathrooms;type:decimal(3,1);not null" json:"bathrooms" validate:"gte=0,lt=100"`
	// No column default: GORM would skip an explicit false on insert. New
	// listings are published unless the caller says otherwise; callers set it.
	IsPublished bool      `gorm:"column:is_published;not null" json:"is_published"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;index" json:"created_at" validate:"-"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null" json:"updated_at" validate:"-"`
}

func (Listing) TableName() string {
	return "listings"
}

// BeforeCreate sets listing_id if not already set.
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (l *Listing) String() string {
	return l.Title
}

// Validate checks field constraints. Money and bathroom counts are normalised
// to their stored precision first.
func (l *Listing) Validate() error {
	l.PricePerNight = RoundMoney(l.PricePerNight)
	l.Bathrooms = roundTo(l.Bathrooms, 1)
	if fields := validation.Struct(l); fields != nil {
		return &ValidationError{Fields: fields}
	}
	if !l.CreatedAt.IsZero() && !l.UpdatedAt.IsZero() && l.UpdatedAt.Before(l.CreatedAt) {
		return NewValidationError("updated_at", "Must not be earlier than created_at.")
	}
	return nil
}

// ListingPatch is a partial update. Nil fields are left untouched.
type ListingPatch struct {
	Title         *string  `json:"title" validate:"omitnil,notblank,max=255"`
	Description   *string  `json:"description" validate:"omitnil,notblank"`
	Address       *string  `json:"address" validate:"omitnil,notblank,max=255"`
	PricePerNight *float64 `json:"price_per_night" validate:"omitnil,gt=0,lt=100000000"`
	MaxGuests     *int     `json:"max_guests" validate:"omitnil,gte=1"`
	Bedrooms      *int     `json:"bedrooms" validate:"omitnil,gte=0"`
	Bathrooms     *float64 `json:"bathrooms" validate:"omitnil,gte=0,lt=100"`
	IsPublished   *bool    `json:"is_published"`
}

func (p ListingPatch) Validate() error {
	if fields := validation.Struct(p); fields != nil {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (p ListingPatch) IsEmpty() bool {
	return len(p.Columns()) == 0
}

// Columns maps the set fields to their column names. updated_at is not
// included; the update contract adds it.
func (p ListingPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.Address != nil {
		cols["address"] = *p.Address
	}
	if p.PricePerNight != nil {
		cols["price_per_night"] = RoundMoney(*p.PricePerNight)
	}
	if p.MaxGuests != nil {
		cols["max_guests"] = *p.MaxGuests
	}
	if p.Bedrooms != nil {
		cols["bedrooms"] = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		cols["bathrooms"] = roundTo(*p.Bathrooms, 1)
	}
	if p.IsPublished != nil {
		cols["is_published"] = *p.IsPublished
	}
	return cols
}

// ListingFilter selects listings. Order is a column name, "-" prefixed for
// descending; empty means newest first.
type ListingFilter struct {
	Published *bool
	Order     string
}

// RoundMoney rounds to cents, half away from zero.
func RoundMoney(v float64) float64 {
	return roundTo(v, 2)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
