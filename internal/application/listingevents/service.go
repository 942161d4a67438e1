package listingevents

import (
	"context"

	"rental-backend/internal/domain"

	"github.com/google/uuid"
)

type Service struct {
	Events domain.ListingEventRepository
}

// GetListingEvents returns the audit trail of a listing, oldest first. The
// trail is kept after the listing is deleted, so no existence check is made.
func (s *Service) GetListingEvents(ctx context.Context, listingID uuid.UUID) ([]domain.ListingEvent, error) {
	return s.Events.ListByListing(ctx, listingID)
}
