// Command seed fills the database with sample listings, bookings and reviews.
//
//	seed --num_listings 25 --clear_existing
package main

import (
	"context"
	"os"

	"rental-backend/internal/application/seed"
	"rental-backend/internal/config"
	"rental-backend/internal/infrastructure/database"
	"rental-backend/internal/infrastructure/repository"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	flags := pflag.NewFlagSet("seed", pflag.ExitOnError)
	flags.Int("num_listings", seed.DefaultNumListings, "The number of sample listings to create.")
	flags.Bool("clear_existing", false, "Clear all existing data before seeding.")
	flags.Uint64("seed", 0, "Random seed for reproducible data (0 picks one at random).")
	flags.String("database_url", "", "Database URL; overrides DATABASE_URL.")
	_ = flags.Parse(os.Args[1:])

	// Flags win over SEED_NUM_LISTINGS, SEED_CLEAR_EXISTING and SEED_SEED.
	v := viper.New()
	v.SetEnvPrefix("SEED")
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		log.Fatal().Err(err).Msg("bind flags")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load")
	}
	config.SetupLogging(cfg.LogLevel, cfg.IsProduction())

	dsn := cfg.DatabaseURL
	if u := flags.Lookup("database_url"); u.Changed {
		dsn = u.Value.String()
	}
	db, err := database.Open(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("database open")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migrate")
	}

	seeder := seed.New(seed.Repositories{
		Listings: repository.NewListingRepository(db),
		Bookings: repository.NewBookingRepository(db),
		Reviews:  repository.NewReviewRepository(db),
	}, v.GetUint64("seed"))

	sum, err := seeder.Run(context.Background(), seed.Options{
		NumListings:   v.GetInt("num_listings"),
		ClearExisting: v.GetBool("clear_existing"),
	})
	if err != nil {
		log.Fatal().Err(err).
			Int("listings", sum.Listings).
			Int("bookings", sum.Bookings).
			Int("reviews", sum.Reviews).
			Msg("Seeding failed")
	}
}
