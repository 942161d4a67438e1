package domain

import (
	"fmt"
	"time"

	"rental-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DateLayout is the wire and log format for calendar dates.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// Booking is a guest's reservation of a Listing. TotalPrice is computed by the
// server when the booking is created and never changes afterwards.
//
// (listing, guest_email, check_in_date) is unique. That blocks exact duplicates
// only; overlapping stays with a different check-in date are allowed.
type Booking struct {
	BookingID    uuid.UUID      `gorm:"column:booking_id;type:uuid;primaryKey" json:"id"`
	ListingID    uuid.UUID      `gorm:"column:listing_id;type:uuid;not null;uniqueIndex:idx_bookings_listing_guest_checkin" json:"listing" validate:"-"`
	Listing      *Listing       `gorm:"foreignKey:ListingID;references:ID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	GuestName    string         `gorm:"column:guest_name;size:255;not null" json:"guest_name" validate:"required,max=255"`
	GuestEmail   string         `gorm:"column:guest_email;size:254;not null;uniqueIndex:idx_bookings_listing_guest_checkin" json:"guest_email" validate:"required,email,max=254"`
	CheckInDate  datatypes.Date `gorm:"column:check_in_date;not null;uniqueIndex:idx_bookings_listing_guest_checkin;index" json:"check_in_date" validate:"-"`
	CheckOutDate datatypes.Date `gorm:"column:check_out_date;not null" json:"check_out_date" validate:"-"`
	TotalPrice   float64        `gorm:"column:total_price;type:decimal(10,2);not null" json:"total_price" validate:"gte=0,lt=100000000"`
	CreatedAt    time.Time      `gorm:"column:created_at;not null" json:"created_at" validate:"-"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BeforeCreate sets booking_id if not already set.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.BookingID == uuid.Nil {
		b.BookingID = uuid.New()
	}
	return nil
}

func (b *Booking) String() string {
	title := b.ListingID.String()
	if b.Listing != nil {
		title = b.Listing.Title
	}
	return fmt.Sprintf("Booking for %s by %s from %s to %s",
		title, b.GuestName, FormatDate(b.CheckInDate), FormatDate(b.CheckOutDate))
}

// Validate checks field constraints. Date ordering is not checked here; it is
// enforced where payloads are decoded and where the total price is computed.
func (b *Booking) Validate() error {
	fields := validation.Struct(b)
	if fields == nil {
		fields = map[string]string{}
	}
	if b.ListingID == uuid.Nil {
		fields["listing"] = "This field is required."
	}
	if time.Time(b.CheckInDate).IsZero() {
		fields["check_in_date"] = "This field is required."
	}
	if time.Time(b.CheckOutDate).IsZero() {
		fields["check_out_date"] = "This field is required."
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	b.TotalPrice = RoundMoney(b.TotalPrice)
	return nil
}

// BookingPatch changes guest contact details. Dates and price are immutable.
type BookingPatch struct {
	GuestName  *string `json:"guest_name" validate:"omitnil,notblank,max=255"`
	GuestEmail *string `json:"guest_email" validate:"omitnil,notblank,email,max=254"`
}

func (p BookingPatch) Validate() error {
	if fields := validation.Struct(p); fields != nil {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (p BookingPatch) IsEmpty() bool {
	return len(p.Columns()) == 0
}

func (p BookingPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.GuestName != nil {
		cols["guest_name"] = *p.GuestName
	}
	if p.GuestEmail != nil {
		cols["guest_email"] = *p.GuestEmail
	}
	return cols
}

// BookingFilter selects bookings; default order is check_in_date ascending.
type BookingFilter struct {
	ListingID *uuid.UUID
	Order     string
}

// NewDate returns the calendar date in UTC.
func NewDate(year int, month time.Month, day int) datatypes.Date {
	return datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf drops the clock part of t, keeping t's calendar day.
func DateOf(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return DateOf(t), nil
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

// AddDays shifts a date by n calendar days.
func AddDays(d datatypes.Date, n int) datatypes.Date {
	return DateOf(time.Time(d).AddDate(0, 0, n))
}

// Nights is the number of nights between check-in and check-out. It is zero or
// negative when check-out is not after check-in.
func Nights(checkIn, checkOut datatypes.Date) int {
	in := time.Time(DateOf(time.Time(checkIn))).Unix()
	out := time.Time(DateOf(time.Time(checkOut))).Unix()
	return int((out - in) / secondsPerDay)
}

// TotalPrice is pricePerNight × nights, rounded to cents.
func TotalPrice(pricePerNight float64, checkIn, checkOut datatypes.Date) (float64, error) {
	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return 0, NewValidationError("check_out_date", "Check-out date must be after check-in date.")
	}
	return RoundMoney(pricePerNight * float64(nights)), nil
}
