package serializer

import (
	"time"

	"rental-backend/internal/domain"

	"github.com/google/uuid"
)

type reviewWrite struct {
	Listing   *string `json:"listing" validate:"required,uuid"`
	GuestName *string `json:"guest_name" validate:"required,notblank,max=255"`
	Rating    *int    `json:"rating" validate:"required,oneof=1 2 3 4 5"`
	Comment   *string `json:"comment"`
}

type ReviewRead struct {
	ID           uuid.UUID `json:"id"`
	Listing      uuid.UUID `json:"listing"`
	ListingTitle string    `json:"listing_title"`
	GuestName    string    `json:"guest_name"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

// DecodeReview parses a create payload. comment may be omitted or null.
func DecodeReview(data []byte) (*domain.Review, error) {
	var in reviewWrite
	if err := invalid(decode(data, &in)); err != nil {
		return nil, err
	}
	listingID, err := uuid.Parse(*in.Listing)
	if err != nil {
		return nil, domain.NewValidationError("listing", "Must be a valid UUID.")
	}
	return &domain.Review{
		ListingID: listingID,
		GuestName: *in.GuestName,
		Rating:    *in.Rating,
		Comment:   in.Comment,
	}, nil
}

// DecodeReviewPatch parses a reviewer-name correction. Rating and comment are
// immutable and ignored if present.
func DecodeReviewPatch(data []byte) (domain.ReviewPatch, error) {
	var in domain.ReviewPatch
	if err := invalid(decode(data, &in)); err != nil {
		return domain.ReviewPatch{}, err
	}
	return in, nil
}

func EncodeReview(r *domain.Review) ReviewRead {
	out := ReviewRead{
		ID:        r.ReviewID,
		Listing:   r.ListingID,
		GuestName: r.GuestName,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
	if r.Listing != nil {
		out.ListingTitle = r.Listing.Title
	}
	return out
}

func EncodeReviews(rs []domain.Review) []ReviewRead {
	out := make([]ReviewRead, 0, len(rs))
	for i := range rs {
		out = append(out, EncodeReview(&rs[i]))
	}
	return out
}
