package serializer

import (
	"time"

	"rental-backend/internal/domain"

	"github.com/google/uuid"
)

type listingWrite struct {
	Title         *string  `json:"title" validate:"required,notblank,max=255"`
	Description   *string  `json:"description" validate:"required,notblank"`
	Address       *string  `json:"address" validate:"required,notblank,max=255"`
	PricePerNight *float64 `json:"price_per_night" validate:"required,gt=0,lt=100000000,decimals=2"`
	MaxGuests     *int     `json:"max_guests" validate:"required,gte=1"`
	Bedrooms      *int     `json:"bedrooms" validate:"required,gte=0"`
	Bathrooms     *float64 `json:"bathrooms" validate:"required,gte=0,lt=100,decimals=1"`
	IsPublished   *bool    `json:"is_published"`
}

// listingPatch mirrors domain.ListingPatch field for field, adding the
// decimal-place rules that only apply to client input.
type listingPatch struct {
	Title         *string  `json:"title" validate:"omitnil,notblank,max=255"`
	Description   *string  `json:"description" validate:"omitnil,notblank"`
	Address       *string  `json:"address" validate:"omitnil,notblank,max=255"`
	PricePerNight *float64 `json:"price_per_night" validate:"omitnil,gt=0,lt=100000000,decimals=2"`
	MaxGuests     *int     `json:"max_guests" validate:"omitnil,gte=1"`
	Bedrooms      *int     `json:"bedrooms" validate:"omitnil,gte=0"`
	Bathrooms     *float64 `json:"bathrooms" validate:"omitnil,gte=0,lt=100,decimals=1"`
	IsPublished   *bool    `json:"is_published"`
}

// ListingRead is the read representation of a listing.
type ListingRead struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Address       string    `json:"address"`
	PricePerNight Money     `json:"price_per_night"`
	MaxGuests     int       `json:"max_guests"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     Tenths    `json:"bathrooms"`
	IsPublished   bool      `json:"is_published"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DecodeListing parses a create payload. is_published defaults to true.
func DecodeListing(data []byte) (*domain.Listing, error) {
	var in listingWrite
	if err := invalid(decode(data, &in)); err != nil {
		return nil, err
	}
	published := true
	if in.IsPublished != nil {
		published = *in.IsPublished
	}
	return &domain.Listing{
		Title:         *in.Title,
		Description:   *in.Description,
		Address:       *in.Address,
		PricePerNight: *in.PricePerNight,
		MaxGuests:     *in.MaxGuests,
		Bedrooms:      *in.Bedrooms,
		Bathrooms:     *in.Bathrooms,
		IsPublished:   published,
	}, nil
}

// DecodeListingPatch parses a partial update; absent fields stay nil.
func DecodeListingPatch(data []byte) (domain.ListingPatch, error) {
	var in listingPatch
	if err := invalid(decode(data, &in)); err != nil {
		return domain.ListingPatch{}, err
	}
	return domain.ListingPatch(in), nil
}

func EncodeListing(l *domain.Listing) ListingRead {
	return ListingRead{
		ID:            l.ID,
		Title:         l.Title,
		Description:   l.Description,
		Address:       l.Address,
		PricePerNight: Money(l.PricePerNight),
		MaxGuests:     l.MaxGuests,
		Bedrooms:      l.Bedrooms,
		Bathrooms:     Tenths(l.Bathrooms),
		IsPublished:   l.IsPublished,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func EncodeListings(ls []domain.Listing) []ListingRead {
	out := make([]ListingRead, 0, len(ls))
	for i := range ls {
		out = append(out, EncodeListing(&ls[i]))
	}
	return out
}
