package serializer

import (
	"time"

	"rental-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type bookingWrite struct {
	Listing      *string `json:"listing" validate:"required,uuid"`
	GuestName    *string `json:"guest_name" validate:"required,notblank,max=255"`
	GuestEmail   *string `json:"guest_email" validate:"required,notblank,email,max=254"`
	CheckInDate  *string `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate *string `json:"check_out_date" validate:"required,datetime=2006-01-02"`
}

// BookingRead is the read representation of a booking. ListingTitle is empty
// when the listing was not loaded.
type BookingRead struct {
	ID           uuid.UUID `json:"id"`
	Listing      uuid.UUID `json:"listing"`
	ListingTitle string    `json:"listing_title"`
	GuestName    string    `json:"guest_name"`
	GuestEmail   string    `json:"guest_email"`
	CheckInDate  string    `json:"check_in_date"`
	CheckOutDate string    `json:"check_out_date"`
	TotalPrice   Money     `json:"total_price"`
	CreatedAt    time.Time `json:"created_at"`
}

// DecodeBooking parses a create payload. The stay must be at least one night:
// a check-out on or before check-in is reported on check_out_date.
// total_price is left for the service to compute.
func DecodeBooking(data []byte) (*domain.Booking, error) {
	var in bookingWrite
	fields := decode(data, &in)

	var checkIn, checkOut datatypes.Date
	var inOK, outOK bool
	if in.CheckInDate != nil && fields["check_in_date"] == "" {
		d, err := domain.ParseDate(*in.CheckInDate)
		checkIn, inOK = d, err == nil
	}
	if in.CheckOutDate != nil && fields["check_out_date"] == "" {
		d, err := domain.ParseDate(*in.CheckOutDate)
		checkOut, outOK = d, err == nil
	}
	if inOK && outOK && domain.Nights(checkIn, checkOut) <= 0 {
		fields["check_out_date"] = "Check-out date must be after check-in date."
	}
	if err := invalid(fields); err != nil {
		return nil, err
	}

	listingID, err := uuid.Parse(*in.Listing)
	if err != nil {
		return nil, domain.NewValidationError("listing", "Must be a valid UUID.")
	}
	return &domain.Booking{
		ListingID:    listingID,
		GuestName:    *in.GuestName,
		GuestEmail:   *in.GuestEmail,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
	}, nil
}

// DecodeBookingPatch parses a contact-details update. Dates, listing and price
// are immutable and ignored if present.
func DecodeBookingPatch(data []byte) (domain.BookingPatch, error) {
	var in domain.BookingPatch
	if err := invalid(decode(data, &in)); err != nil {
		return domain.BookingPatch{}, err
	}
	return in, nil
}

func EncodeBooking(b *domain.Booking) BookingRead {
	out := BookingRead{
		ID:           b.BookingID,
		Listing:      b.ListingID,
		GuestName:    b.GuestName,
		GuestEmail:   b.GuestEmail,
		CheckInDate:  domain.FormatDate(b.CheckInDate),
		CheckOutDate: domain.FormatDate(b.CheckOutDate),
		TotalPrice:   Money(b.TotalPrice),
		CreatedAt:    b.CreatedAt,
	}
	if b.Listing != nil {
		out.ListingTitle = b.Listing.Title
	}
	return out
}

func EncodeBookings(bs []domain.Booking) []BookingRead {
	out := make([]BookingRead, 0, len(bs))
	for i := range bs {
		out = append(out, EncodeBooking(&bs[i]))
	}
	return out
}
