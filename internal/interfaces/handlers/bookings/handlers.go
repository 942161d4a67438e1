package bookings

import (
	booksvc "rental-backend/internal/application/bookings"
	"rental-backend/internal/domain"
	"rental-backend/internal/interfaces/handlers/request"
	"rental-backend/internal/pkg/response"
	"rental-backend/internal/serializer"

	"github.com/gofiber/fiber/v2"
)

const entity = "booking"

type Handlers struct {
	Service *booksvc.Service
}

// GET /api/v1/bookings?listing=&order=
func (h *Handlers) List(c *fiber.Ctx) error {
	listingID, err := request.OptionalUUID(c, "listing")
	if err != nil {
		return err
	}
	bookings, err := h.Service.ListBookings(c.Context(), domain.BookingFilter{ListingID: listingID, Order: request.Order(c)})
	if err != nil {
		return err
	}
	return response.List(c, "Bookings fetched successfully", serializer.EncodeBookings(bookings), len(bookings))
}

// GET /api/v1/listings/:id/bookings
func (h *Handlers) ListForListing(c *fiber.Ctx) error {
	listingID, err := request.ID(c, "id", "listing")
	if err != nil {
		return err
	}
	bookings, err := h.Service.ListListingBookings(c.Context(), listingID, request.Order(c))
	if err != nil {
		return err
	}
	return response.List(c, "Bookings fetched successfully", serializer.EncodeBookings(bookings), len(bookings))
}

// POST /api/v1/bookings: total_price is computed server-side.
func (h *Handlers) Create(c *fiber.Ctx) error {
	booking, err := serializer.DecodeBooking(c.Body())
	if err != nil {
		return err
	}
	booking, err = h.Service.CreateBooking(c.Context(), booking)
	if err != nil {
		return err
	}
	return response.SuccessCreated(c, "Booking created successfully", serializer.EncodeBooking(booking), nil)
}

// GET /api/v1/bookings/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := request.ID(c, "id", entity)
	if err != nil {
		return err
	}
	booking, err := h.Service.GetBooking(c.Context(), id)
	if err != nil {
		return err
	}
	return response.Success(c, "Booking fetched successfully", serializer.EncodeBooking(booking), nil)
}

// PATCH /api/v1/bookings/:id: guest contact details only.
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := request.ID(c, "id", entity)
	if err != nil {
		return err
	}
	patch, err := serializer.DecodeBookingPatch(c.Body())
	if err != nil {
		return err
	}
	booking, err := h.Service.UpdateBooking(c.Context(), id, patch)
	if err != nil {
		return err
	}
	return response.Success(c, "Booking updated successfully", serializer.EncodeBooking(booking), nil)
}

// DELETE /api/v1/bookings/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := request.ID(c, "id", entity)
	if err != nil {
		return err
	}
	if err := h.Service.CancelBooking(c.Context(), id); err != nil {
		return err
	}
	return response.NoContent(c)
}
