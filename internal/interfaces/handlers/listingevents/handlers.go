package listingevents

import (
	lesvc "rental-backend/internal/application/listingevents"
	"rental-backend/internal/interfaces/handlers/request"
	"rental-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *lesvc.Service
}

// GET /api/v1/listings/:id/events: audit trail, oldest first. Still served
// after the listing has been deleted.
func (h *Handlers) ListForListing(c *fiber.Ctx) error {
	listingID, err := request.ID(c, "id", "listing")
	if err != nil {
		return err
	}
	events, err := h.Service.GetListingEvents(c.Context(), listingID)
	if err != nil {
		return err
	}
	return response.List(c, "Listing events fetched successfully", events, len(events))
}
