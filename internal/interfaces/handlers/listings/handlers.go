package listings

import (
	listsvc "rental-backend/internal/application/listings"
	"rental-backend/internal/domain"
	"rental-backend/internal/interfaces/handlers/request"
	"rental-backend/internal/pkg/response"
	"rental-backend/internal/serializer"

	"github.com/gofiber/fiber/v2"
)

const entity = "listing"

type Handlers struct {
	Service *listsvc.Service
}

// GET /api/v1/listings?published=&order=
func (h *Handlers) List(c *fiber.Ctx) error {
	published, err := request.OptionalBool(c, "published")
	if err != nil {
		return err
	}
	listings, err := h.Service.ListListings(c.Context(), domain.ListingFilter{Published: published, Order: request.Order(c)})
	if err != nil {
		return err
	}
	return response.List(c, "Listings fetched successfully", serializer.EncodeListings(listings), len(listings))
}

// POST /api/v1/listings
func (h *Handlers) Create(c *fiber.Ctx) error {
	listing, err := serializer.DecodeListing(c.Body())
	if err != nil {
		return err
	}
	listing, err = h.Service.CreateListing(c.Context(), listing)
	if err != nil {
		return err
	}
	return response.SuccessCreated(c, "Listing created successfully", serializer.EncodeListing(listing), nil)
}

// GET /api/v1/listings/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := request.ID(c, "id", entity)
	if err != nil {
		return err
	}
	listing, err := h.Service.GetListing(c.Context(), id)
	if err != nil {
		return err
	}
	return response.Success(c, "Listing fetched successfully", serializer.EncodeListing(listing), nil)
}

// PATCH /api/v1/listings/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := request.ID(c, "id", entity)
	if err != nil {
		return err
	}
	patch, err := serializer.DecodeListingPatch(c.Body())
	if err != nil {
		return err
	}
	listing, err := h.Service.UpdateListing(c.Context(), id, patch)
	if err != nil {
		return err
	}
	return response.Success(c, "Listing updated successfully", serializer.EncodeListing(listing), nil)
}

// DELETE /api/v1/listings/:id: cascades to bookings and reviews.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := request.ID(c, "id", entity)
	if err != nil {
		return err
	}
	if err := h.Service.DeleteListing(c.Context(), id); err != nil {
		return err
	}
	return response.NoContent(c)
}
