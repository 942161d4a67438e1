package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental-backend/internal/domain"
	"rental-backend/internal/infrastructure/database"
	"rental-backend/internal/infrastructure/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func setupSeedTest(t *testing.T) (*gorm.DB, Repositories) {
	db, err := database.OpenSQLite("")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db, Repositories{
		Listings: repository.NewListingRepository(db),
		Bookings: repository.NewBookingRepository(db),
		Reviews:  repository.NewReviewRepository(db),
	}
}

func newSeeder(repos Repositories, seed uint64) *Seeder {
	s := New(repos, seed)
	s.Now = func() time.Time { return fixedNow }
	return s
}

func TestRun_ClearExistingReplacesData(t *testing.T) {
	_, repos := setupSeedTest(t)
	ctx := context.Background()

	old := &domain.Listing{Title: "Old", Description: "D", Address: "A", PricePerNight: 80, MaxGuests: 2, Bedrooms: 1, Bathrooms: 1}
	require.NoError(t, repos.Listings.Create(ctx, old))
	require.NoError(t, repos.Reviews.Create(ctx, &domain.Review{ListingID: old.ID, GuestName: "Ada", Rating: 5}))

	sum, err := newSeeder(repos, 42).Run(ctx, Options{NumListings: 5, ClearExisting: true})
	require.NoError(t, err)
	assert.Equal(t, 5, sum.Listings)
	require.NotNil(t, sum.Cleared)
	assert.Equal(t, int64(1), sum.Cleared.Listings)
	assert.Equal(t, int64(1), sum.Cleared.Reviews)

	n, err := repos.Listings.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	_, err = repos.Listings.GetByID(ctx, old.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	reviews, err := repos.Reviews.List(ctx, domain.ReviewFilter{})
	require.NoError(t, err)
	assert.Len(t, reviews, sum.Reviews)
	for _, r := range reviews {
		assert.NotEqual(t, old.ID, r.ListingID)
	}
}

func TestRun_WithoutClearAppends(t *testing.T) {
	_, repos := setupSeedTest(t)
	ctx := context.Background()

	_, err := newSeeder(repos, 1).Run(ctx, Options{NumListings: 2})
	require.NoError(t, err)
	sum, err := newSeeder(repos, 2).Run(ctx, Options{NumListings: 3})
	require.NoError(t, err)
	assert.Nil(t, sum.Cleared)

	n, err := repos.Listings.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}

func TestRun_GeneratedValuesStayInRange(t *testing.T) {
	_, repos := setupSeedTest(t)
	ctx := context.Background()

	sum, err := newSeeder(repos, 7).Run(ctx, Options{NumListings: 8})
	require.NoError(t, err)

	today := domain.DateOf(fixedNow)
	listings, err := repos.Listings.List(ctx, domain.ListingFilter{})
	require.NoError(t, err)
	require.Len(t, listings, 8)
	for _, l := range listings {
		assert.GreaterOrEqual(t, l.PricePerNight, 50.0)
		assert.LessOrEqual(t, l.PricePerNight, 500.0)
		assert.Contains(t, bathroomChoices, l.Bathrooms)
		assert.True(t, l.MaxGuests >= 1 && l.MaxGuests <= 10)
		assert.True(t, l.Bedrooms >= 1 && l.Bedrooms <= 5)
		age := fixedNow.Sub(l.CreatedAt)
		assert.True(t, age >= 24*time.Hour && age <= 365*24*time.Hour, "created_at %s", l.CreatedAt)
		assert.False(t, l.UpdatedAt.Before(l.CreatedAt))

		bookings, err := repos.Bookings.List(ctx, domain.BookingFilter{ListingID: &l.ID})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(bookings), 5)
		for _, b := range bookings {
			lead := domain.Nights(today, b.CheckInDate)
			nights := domain.Nights(b.CheckInDate, b.CheckOutDate)
			assert.True(t, lead >= 1 && lead <= 60, "lead %d", lead)
			assert.True(t, nights >= 1 && nights <= 14, "nights %d", nights)
			assert.InDelta(t, l.PricePerNight*float64(nights), b.TotalPrice, 0.011)
		}

		reviews, err := repos.Reviews.List(ctx, domain.ReviewFilter{ListingID: &l.ID})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(reviews), 10)
		for _, r := range reviews {
			assert.True(t, r.Rating >= 1 && r.Rating <= 5)
		}
	}

	total, err := repos.Bookings.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(sum.Bookings), total)
}

func TestRun_SameSeedSameData(t *testing.T) {
	ctx := context.Background()
	titles := func(seed uint64) []string {
		_, repos := setupSeedTest(t)
		_, err := newSeeder(repos, seed).Run(ctx, Options{NumListings: 3})
		require.NoError(t, err)
		ls, err := repos.Listings.List(ctx, domain.ListingFilter{Order: "title"})
		require.NoError(t, err)
		out := make([]string, 0, len(ls))
		for _, l := range ls {
			out = append(out, l.Title)
		}
		return out
	}
	assert.Equal(t, titles(99), titles(99))
}

func TestRun_RejectsNegativeCount(t *testing.T) {
	_, repos := setupSeedTest(t)
	_, err := newSeeder(repos, 1).Run(context.Background(), Options{NumListings: -1})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "num_listings")
}

func TestRun_ZeroListings(t *testing.T) {
	_, repos := setupSeedTest(t)
	sum, err := newSeeder(repos, 1).Run(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, Summary{}, sum)
}

type failingListings struct {
	domain.ListingRepository
	after int
}

func (f *failingListings) Create(ctx context.Context, l *domain.Listing) error {
	if f.after == 0 {
		return errors.New("disk full")
	}
	f.after--
	return f.ListingRepository.Create(ctx, l)
}

func TestRun_StopsOnFirstError(t *testing.T) {
	_, repos := setupSeedTest(t)
	repos.Listings = &failingListings{ListingRepository: repos.Listings, after: 2}

	sum, err := newSeeder(repos, 3).Run(context.Background(), Options{NumListings: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 2, sum.Listings)
}

func TestStayPrice(t *testing.T) {
	in := domain.NewDate(2024, 6, 1)
	assert.Equal(t, 300.0, stayPrice(100, in, domain.NewDate(2024, 6, 4)))
	assert.Equal(t, 100.0, stayPrice(100, in, in))
	assert.Equal(t, 99.99, stayPrice(99.99, in, domain.NewDate(2024, 5, 30)))
}
