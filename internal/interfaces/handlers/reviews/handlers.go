package reviews

import (
	revsvc "rental-backend/internal/application/reviews"
	"rental-backend/internal/domain"
	"rental-backend/internal/interfaces/handlers/request"
	"rental-backend/internal/pkg/response"
	"rental-backend/internal/serializer"

	"github.com/gofiber/fiber/v2"
)

const entity = "review"

type Handlers struct {
	Service *revsvc.Service
}

// GET /api/v1/reviews?listing=&order=
func (h *Handlers) List(c *fiber.Ctx) error {
	listingID, err := request.OptionalUUID(c, "listing")
	if err != nil {
		return err
	}
	reviews, err := h.Service.ListReviews(c.Context(), domain.ReviewFilter{ListingID: listingID, Order: request.Order(c)})
	if err != nil {
		return err
	}
	return response.List(c, "Reviews fetched successfully", serializer.EncodeReviews(reviews), len(reviews))
}

// GET /api/v1/listings/:id/reviews
func (h *Handlers) ListForListing(c *fiber.Ctx) error {
	listingID, err := request.ID(c, "id", "listing")
	if err != nil {
		return err
	}
	reviews, err := h.Service.ListListingReviews(c.Context(), listingID, request.Order(c))
	if err != nil {
		return err
	}
	return response.List(c, "Reviews fetched successfully", serializer.EncodeReviews(reviews), len(reviews))
}

// POST /api/v1/reviews
func (h *Handlers) Create(c *fiber.Ctx) error {
	review, err := serializer.DecodeReview(c.Body())
	if err != nil {
		return err
	}
	review, err = h.Service.CreateReview(c.Context(), review)
	if err != nil {
		return err
	}
	return response.SuccessCreated(c, "Review created successfully", serializer.EncodeReview(review), nil)
}

// GET /api/v1/reviews/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := request.ID(c, "id", entity)
	if err != nil {
		return err
	}
	review, err := h.Service.GetReview(c.Context(), id)
	if err != nil {
		return err
	}
	return response.Success(c, "Review fetched successfully", serializer.EncodeReview(review), nil)
}

// PATCH /api/v1/reviews/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := request.ID(c, "id", entity)
	if err != nil {
		return err
	}
	patch, err := serializer.DecodeReviewPatch(c.Body())
	if err != nil {
		return err
	}
	review, err := h.Service.UpdateReview(c.Context(), id, patch)
	if err != nil {
		return err
	}
	return response.Success(c, "Review updated successfully", serializer.EncodeReview(review), nil)
}

// DELETE /api/v1/reviews/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := request.ID(c, "id", entity)
	if err != nil {
		return err
	}
	if err := h.Service.DeleteReview(c.Context(), id); err != nil {
		return err
	}
	return response.NoContent(c)
}
