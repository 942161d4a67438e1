package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validListing() *Listing {
	return &Listing{
		Title:         "Lake cabin",
		Description:   "Quiet.",
		Address:       "1 Lake Road",
		PricePerNight: 100,
		MaxGuests:     2,
		Bedrooms:      0,
		Bathrooms:     1.5,
	}
}

func TestListingValidate(t *testing.T) {
	l := validListing()
	l.PricePerNight = 120.456
	l.Bathrooms = 2.46
	require.NoError(t, l.Validate())
	assert.Equal(t, 120.46, l.PricePerNight)
	assert.Equal(t, 2.5, l.Bathrooms)

	l = validListing()
	l.Bathrooms = -0.5
	l.MaxGuests = 0
	err := l.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "bathrooms")
	assert.Contains(t, verr.Fields, "max_guests")
}

func TestListingValidate_UpdatedAtNotBeforeCreatedAt(t *testing.T) {
	l := validListing()
	l.CreatedAt = time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	l.UpdatedAt = l.CreatedAt.Add(-time.Hour)
	var verr *ValidationError
	require.ErrorAs(t, l.Validate(), &verr)
	assert.Contains(t, verr.Fields, "updated_at")
}

func TestListingPatchColumns(t *testing.T) {
	price := 99.999
	published := false
	p := ListingPatch{PricePerNight: &price, IsPublished: &published}
	assert.Equal(t, map[string]interface{}{"price_per_night": 100.0, "is_published": false}, p.Columns())
	assert.False(t, p.IsEmpty())
	assert.True(t, ListingPatch{}.IsEmpty())

	blank := " "
	var verr *ValidationError
	require.ErrorAs(t, ListingPatch{Title: &blank}.Validate(), &verr)
	assert.Equal(t, "This field may not be blank.", verr.Fields["title"])
}

func TestReviewValidate(t *testing.T) {
	r := &Review{GuestName: "Ada", Rating: 0}
	var verr *ValidationError
	require.ErrorAs(t, r.Validate(), &verr)
	assert.Contains(t, verr.Fields, "rating")
	assert.Contains(t, verr.Fields, "listing")
}
