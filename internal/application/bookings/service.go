package bookings

import (
	"context"
	"errors"
	"fmt"

	"rental-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Service struct {
	Bookings domain.BookingRepository
	Listings domain.ListingRepository
}

// CreateBooking prices the stay from the listing's nightly rate and stores it.
// Any client-supplied total is overwritten.
func (s *Service) CreateBooking(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	listing, err := s.listingRef(ctx, b.ListingID)
	if err != nil {
		return nil, err
	}
	total, err := domain.TotalPrice(listing.PricePerNight, b.CheckInDate, b.CheckOutDate)
	if err != nil {
		return nil, err
	}
	b.TotalPrice = total
	if err := s.Bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	log.Info().
		Str("booking_id", b.BookingID.String()).
		Str("listing_id", b.ListingID.String()).
		Str("check_in_date", domain.FormatDate(b.CheckInDate)).
		Float64("total_price", b.TotalPrice).
		Msg("Booking created")
	return b, nil
}

func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return s.Bookings.GetByID(ctx, id)
}

func (s *Service) ListBookings(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	return s.Bookings.List(ctx, f)
}

// ListListingBookings 404s for an unknown listing instead of returning an empty list.
func (s *Service) ListListingBookings(ctx context.Context, listingID uuid.UUID, order string) ([]domain.Booking, error) {
	if _, err := s.Listings.GetByID(ctx, listingID); err != nil {
		return nil, err
	}
	return s.Bookings.List(ctx, domain.BookingFilter{ListingID: &listingID, Order: order})
}

func (s *Service) UpdateBooking(ctx context.Context, id uuid.UUID, p domain.BookingPatch) (*domain.Booking, error) {
	b, err := s.Bookings.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	log.Info().Str("booking_id", id.String()).Msg("Booking updated")
	return b, nil
}

func (s *Service) CancelBooking(ctx context.Context, id uuid.UUID) error {
	if err := s.Bookings.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("booking_id", id.String()).Msg("Booking cancelled")
	return nil
}

// listingRef resolves the listing a new record points at. An unknown id is a
// client error on the "listing" field, not a missing route.
func (s *Service) listingRef(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	listing, err := s.Listings.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewValidationError("listing", fmt.Sprintf("Invalid pk \"%s\" - object does not exist.", id))
	}
	return listing, err
}
