// Package seed fills the store with synthetic listings, bookings and reviews
// for development.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rental-backend/internal/domain"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// DefaultNumListings is used when no count is given.
const DefaultNumListings = 10

// maxDraws bounds re-draws of a value that collides with a unique key.
const maxDraws = 5

var bathroomChoices = []float64{1.0, 1.5, 2.0, 2.5, 3.0}

type Repositories struct {
	Listings domain.ListingRepository
	Bookings domain.BookingRepository
	Reviews  domain.ReviewRepository
}

type Options struct {
	NumListings   int
	ClearExisting bool
}

// Cleared holds the number of rows removed before seeding.
type Cleared struct {
	Reviews  int64 `json:"reviews"`
	Bookings int64 `json:"bookings"`
	Listings int64 `json:"listings"`
}

// Summary counts what a run created. It is returned as far as it got when a
// run fails.
type Summary struct {
	Listings int      `json:"listings"`
	Bookings int      `json:"bookings"`
	Reviews  int      `json:"reviews"`
	Cleared  *Cleared `json:"cleared,omitempty"`
}

type Seeder struct {
	Repos Repositories
	Faker *gofakeit.Faker
	Now   func() time.Time
}

// New returns a Seeder. The same non-zero seed yields the same data for the
// same clock; zero picks a random seed.
func New(repos Repositories, seed uint64) *Seeder {
	return &Seeder{Repos: repos, Faker: gofakeit.New(seed)}
}

func (s *Seeder) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Run seeds opts.NumListings listings, each with 0-5 bookings and 0-10
// reviews. Clearing removes reviews, then bookings, then listings. The first
// storage error stops the run.
func (s *Seeder) Run(ctx context.Context, opts Options) (Summary, error) {
	var sum Summary
	if opts.NumListings < 0 {
		return sum, domain.NewValidationError("num_listings", "Ensure this value is greater than or equal to 0.")
	}

	if opts.ClearExisting {
		log.Warn().Msg("Clearing existing data...")
		cleared, err := s.clear(ctx)
		if err != nil {
			return sum, err
		}
		sum.Cleared = cleared
		log.Info().
			Int64("reviews", cleared.Reviews).
			Int64("bookings", cleared.Bookings).
			Int64("listings", cleared.Listings).
			Msg("Existing data cleared")
	}

	log.Info().Int("num_listings", opts.NumListings).Msg("Seeding listings...")
	for i := 0; i < opts.NumListings; i++ {
		listing, err := s.createListing(ctx)
		if err != nil {
			return sum, err
		}
		sum.Listings++
		log.Info().Str("listing_id", listing.ID.String()).Msgf("Created Listing: %q", listing.String())

		n, err := s.createBookings(ctx, listing)
		sum.Bookings += n
		if err != nil {
			return sum, err
		}
		n, err = s.createReviews(ctx, listing)
		sum.Reviews += n
		if err != nil {
			return sum, err
		}
	}

	log.Info().
		Int("listings", sum.Listings).
		Int("bookings", sum.Bookings).
		Int("reviews", sum.Reviews).
		Msgf("Successfully seeded %d listings with associated bookings and reviews.", sum.Listings)
	return sum, nil
}

func (s *Seeder) clear(ctx context.Context) (*Cleared, error) {
	var (
		c   Cleared
		err error
	)
	if c.Reviews, err = s.Repos.Reviews.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("clear reviews: %w", err)
	}
	if c.Bookings, err = s.Repos.Bookings.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("clear bookings: %w", err)
	}
	if c.Listings, err = s.Repos.Listings.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("clear listings: %w", err)
	}
	return &c, nil
}

func (s *Seeder) createListing(ctx context.Context) (*domain.Listing, error) {
	f := s.Faker
	l := &domain.Listing{
		Title:         s.sentence(f.IntRange(3, 7)),
		Description:   s.paragraph(f.IntRange(3, 8)),
		Address:       s.address(),
		PricePerNight: domain.RoundMoney(f.Float64Range(50, 500)),
		MaxGuests:     f.IntRange(1, 10),
		Bedrooms:      f.IntRange(1, 5),
		Bathrooms:     bathroomChoices[f.IntRange(0, len(bathroomChoices)-1)],
		IsPublished:   s.chance(90),
		CreatedAt:     s.now().AddDate(0, 0, -f.IntRange(1, 365)),
	}
	if err := s.Repos.Listings.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("seed listing: %w", err)
	}
	return l, nil
}

func (s *Seeder) createBookings(ctx context.Context, l *domain.Listing) (int, error) {
	f := s.Faker
	today := domain.DateOf(s.now())
	taken := map[string]bool{}
	created := 0
	for i, n := 0, f.IntRange(0, 5); i < n; i++ {
		var b *domain.Booking
		for draw := 0; draw < maxDraws; draw++ {
			checkIn := domain.AddDays(today, f.IntRange(1, 60))
			checkOut := domain.AddDays(checkIn, f.IntRange(1, 14))
			b = &domain.Booking{
				ListingID:    l.ID,
				GuestName:    f.Name(),
				GuestEmail:   strings.ToLower(f.Email()),
				CheckInDate:  checkIn,
				CheckOutDate: checkOut,
				TotalPrice:   stayPrice(l.PricePerNight, checkIn, checkOut),
				CreatedAt:    s.now().AddDate(0, 0, -f.IntRange(0, 30)),
			}
			if key := b.GuestEmail + "|" + domain.FormatDate(checkIn); !taken[key] {
				taken[key] = true
				break
			}
		}
		b.Listing = l
		if err := s.Repos.Bookings.Create(ctx, b); err != nil {
			return created, fmt.Errorf("seed booking: %w", err)
		}
		created++
		log.Debug().Str("booking_id", b.BookingID.String()).Msg(b.String())
	}
	return created, nil
}

func (s *Seeder) createReviews(ctx context.Context, l *domain.Listing) (int, error) {
	f := s.Faker
	taken := map[string]bool{}
	created := 0
	for i, n := 0, f.IntRange(0, 10); i < n; i++ {
		name := f.Name()
		for draw := 1; taken[name] && draw < maxDraws; draw++ {
			name = f.Name()
		}
		taken[name] = true

		r := &domain.Review{
			ListingID: l.ID,
			GuestName: name,
			Rating:    f.IntRange(1, 5),
			CreatedAt: s.now().AddDate(0, 0, -f.IntRange(0, 60)),
		}
		if s.chance(70) {
			comment := s.paragraph(f.IntRange(1, 3))
			r.Comment = &comment
		}
		if err := s.Repos.Reviews.Create(ctx, r); err != nil {
			return created, fmt.Errorf("seed review: %w", err)
		}
		created++
	}
	return created, nil
}

// stayPrice is price × nights, charging one night when the stay is empty.
func stayPrice(pricePerNight float64, checkIn, checkOut datatypes.Date) float64 {
	total, err := domain.TotalPrice(pricePerNight, checkIn, checkOut)
	if err != nil || total <= 0 {
		return domain.RoundMoney(pricePerNight)
	}
	return total
}

// chance reports true with the given percent probability.
func (s *Seeder) chance(percent int) bool {
	return s.Faker.IntRange(1, 100) <= percent
}

func (s *Seeder) sentence(words int) string {
	parts := make([]string, words)
	for i := range parts {
		parts[i] = strings.ToLower(s.Faker.Word())
	}
	if parts[0] != "" {
		parts[0] = strings.ToUpper(parts[0][:1]) + parts[0][1:]
	}
	return strings.Join(parts, " ") + "."
}

func (s *Seeder) paragraph(sentences int) string {
	parts := make([]string, sentences)
	for i := range parts {
		parts[i] = s.sentence(s.Faker.IntRange(4, 10))
	}
	return strings.Join(parts, " ")
}

func (s *Seeder) address() string {
	f := s.Faker
	return fmt.Sprintf("%s\n%s, %s %s", f.Street(), f.City(), f.StateAbr(), f.Zip())
}
