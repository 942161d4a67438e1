package domain

import (
	"context"

	"github.com/google/uuid"
)

// ListingRepository persists listings. Delete removes the listing's bookings
// and reviews in the same transaction.
//
// Create stores IsPublished as given. The published-by-default rule belongs to
// whoever builds the Listing (serializer.DecodeListing, the seeder), since a
// false here is indistinguishable from an omitted value.
type ListingRepository interface {
	Create(ctx context.Context, l *Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	List(ctx context.Context, f ListingFilter) ([]Listing, error)
	Update(ctx context.Context, id uuid.UUID, p ListingPatch) (*Listing, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	List(ctx context.Context, f BookingFilter) ([]Booking, error)
	Update(ctx context.Context, id uuid.UUID, p BookingPatch) (*Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, r *Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*Review, error)
	List(ctx context.Context, f ReviewFilter) ([]Review, error)
	Update(ctx context.Context, id uuid.UUID, p ReviewPatch) (*Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type ListingEventRepository interface {
	ListByListing(ctx context.Context, listingID uuid.UUID) ([]ListingEvent, error)
}
