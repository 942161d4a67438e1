package listings

import (
	"context"

	"rental-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Service struct {
	Listings domain.ListingRepository
}

func (s *Service) CreateListing(ctx context.Context, l *domain.Listing) (*domain.Listing, error) {
	if err := s.Listings.Create(ctx, l); err != nil {
		return nil, err
	}
	log.Info().Str("listing_id", l.ID.String()).Str("title", l.Title).Msg("Listing created")
	return l, nil
}

func (s *Service) GetListing(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	return s.Listings.GetByID(ctx, id)
}

func (s *Service) ListListings(ctx context.Context, f domain.ListingFilter) ([]domain.Listing, error) {
	return s.Listings.List(ctx, f)
}

func (s *Service) UpdateListing(ctx context.Context, id uuid.UUID, p domain.ListingPatch) (*domain.Listing, error) {
	l, err := s.Listings.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	log.Info().Str("listing_id", id.String()).Msg("Listing updated")
	return l, nil
}

// DeleteListing removes the listing along with its bookings and reviews.
func (s *Service) DeleteListing(ctx context.Context, id uuid.UUID) error {
	if err := s.Listings.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("listing_id", id.String()).Msg("Listing deleted")
	return nil
}
