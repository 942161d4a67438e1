package reviews

import (
	"context"
	"errors"
	"fmt"

	"rental-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Service struct {
	Reviews  domain.ReviewRepository
	Listings domain.ListingRepository
}

func (s *Service) CreateReview(ctx context.Context, r *domain.Review) (*domain.Review, error) {
	listing, err := s.listingRef(ctx, r.ListingID)
	if err != nil {
		return nil, err
	}
	if err := s.Reviews.Create(ctx, r); err != nil {
		return nil, err
	}
	r.Listing = listing
	log.Info().Str("review_id", r.ReviewID.String()).Str("listing_id", r.ListingID.String()).Int("rating", r.Rating).Msg("Review created")
	return r, nil
}

func (s *Service) GetReview(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	return s.Reviews.GetByID(ctx, id)
}

func (s *Service) ListReviews(ctx context.Context, f domain.ReviewFilter) ([]domain.Review, error) {
	return s.Reviews.List(ctx, f)
}

func (s *Service) ListListingReviews(ctx context.Context, listingID uuid.UUID, order string) ([]domain.Review, error) {
	if _, err := s.Listings.GetByID(ctx, listingID); err != nil {
		return nil, err
	}
	return s.Reviews.List(ctx, domain.ReviewFilter{ListingID: &listingID, Order: order})
}

func (s *Service) UpdateReview(ctx context.Context, id uuid.UUID, p domain.ReviewPatch) (*domain.Review, error) {
	r, err := s.Reviews.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	log.Info().Str("review_id", id.String()).Msg("Review updated")
	return r, nil
}

func (s *Service) DeleteReview(ctx context.Context, id uuid.UUID) error {
	if err := s.Reviews.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("review_id", id.String()).Msg("Review deleted")
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
