package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPrice(t *testing.T) {
	total, err := TotalPrice(100, NewDate(2024, 6, 1), NewDate(2024, 6, 4))
	require.NoError(t, err)
	assert.Equal(t, 300.0, total)

	total, err = TotalPrice(99.99, NewDate(2024, 2, 28), NewDate(2024, 3, 1))
	require.NoError(t, err)
	assert.Equal(t, 199.98, total)

	for _, out := range []time.Time{time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)} {
		_, err = TotalPrice(100, NewDate(2024, 6, 1), DateOf(out))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Check-out date must be after check-in date.", verr.Fields["check_out_date"])
	}
}

func TestNights_IgnoresClockAndDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	in := DateOf(time.Date(2024, 3, 9, 23, 0, 0, 0, loc))
	out := DateOf(time.Date(2024, 3, 11, 1, 0, 0, 0, loc))
	assert.Equal(t, 2, Nights(in, out))
	assert.Equal(t, -2, Nights(out, in))
}

func TestNights_LongStays(t *testing.T) {
	assert.Equal(t, 137331, Nights(NewDate(2024, 1, 1), NewDate(2400, 1, 1)))
	assert.Equal(t, -366, Nights(NewDate(2025, 1, 1), NewDate(2024, 1, 1)))

	total, err := TotalPrice(1, NewDate(2024, 1, 1), NewDate(2400, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, 137331.0, total)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", FormatDate(d))
	assert.Equal(t, "2024-06-15", FormatDate(AddDays(d, 14)))

	_, err = ParseDate("01/06/2024")
	assert.Error(t, err)
}

func TestBookingValidate(t *testing.T) {
	b := &Booking{GuestName: "Ada", GuestEmail: "ada@example"}
	err := b.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "listing")
	assert.Contains(t, verr.Fields, "check_in_date")
	assert.Contains(t, verr.Fields, "check_out_date")
	assert.Equal(t, "Enter a valid email address.", verr.Fields["guest_email"])

	b = &Booking{
		ListingID:    uuid.New(),
		GuestName:    "Ada",
		GuestEmail:   "ada@example.com",
		CheckInDate:  NewDate(2024, 6, 1),
		CheckOutDate: NewDate(2024, 6, 4),
		TotalPrice:   300.004,
	}
	require.NoError(t, b.Validate())
	assert.Equal(t, 300.0, b.TotalPrice)
}

func TestBookingString(t *testing.T) {
	b := &Booking{
		Listing:      &Listing{Title: "Lake cabin"},
		GuestName:    "Ada",
		CheckInDate:  NewDate(2024, 6, 1),
		CheckOutDate: NewDate(2024, 6, 4),
	}
	assert.Equal(t, "Booking for Lake cabin by Ada from 2024-06-01 to 2024-06-04", b.String())
}

func TestErrorKinds(t *testing.T) {
	assert.True(t, errors.Is(NewValidationError("x", "bad"), ErrValidation))
	assert.True(t, errors.Is(&UniquenessError{Entity: "review", Fields: []string{"listing", "guest_name"}}, ErrUniqueness))
	assert.True(t, errors.Is(&NotFoundError{Entity: "listing", ID: "1"}, ErrNotFound))

	cause := errors.New("FOREIGN KEY constraint failed")
	cerr := &ConstraintError{Entity: "booking", Reason: "listing does not exist", Err: cause}
	assert.True(t, errors.Is(cerr, ErrConstraint))
	assert.True(t, errors.Is(cerr, cause))

	verr := &ValidationError{Fields: map[string]string{"b": "two", "a": "one"}}
	assert.Equal(t, "validation error: a: one; b: two", verr.Error())
}
