package router

import (
	"time"

	booksvc "rental-backend/internal/application/bookings"
	healthsvc "rental-backend/internal/application/health"
	lesvc "rental-backend/internal/application/listingevents"
	listsvc "rental-backend/internal/application/listings"
	revsvc "rental-backend/internal/application/reviews"
	"rental-backend/internal/config"
	"rental-backend/internal/infrastructure/database"
	"rental-backend/internal/infrastructure/repository"
	bookhandler "rental-backend/internal/interfaces/handlers/bookings"
	healthhandler "rental-backend/internal/interfaces/handlers/health"
	lehandler "rental-backend/internal/interfaces/handlers/listingevents"
	listhandler "rental-backend/internal/interfaces/handlers/listings"
	revhandler "rental-backend/internal/interfaces/handlers/reviews"
	"rental-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CreateApp opens the database (migrating the schema) and, when REDIS_URL is
// set, Redis, then builds the Fiber app on top of them.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, nil, nil, err
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
	} else {
		log.Warn().Msg("REDIS_URL not set, request stats and error log disabled")
	}

	return New(cfg, db, rdb), db, rdb, nil
}

// New registers middleware and routes. rdb may be nil.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler(rdb),
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.CORSAllowedSuffix,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	if rdb != nil {
		app.Use(middleware.RequestStats(rdb))
	}

	listingRepo := repository.NewListingRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	hh := &healthhandler.Handlers{
		Service: &healthsvc.Service{
			Rdb: rdb,
			DB:  &database.Pinger{DB: db},
			Counters: map[string]healthsvc.Counter{
				"listings": listingRepo,
				"bookings": bookingRepo,
				"reviews":  reviewRepo,
			},
			Started: time.Now(),
		},
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)
	app.Get("/health/reset", hh.Reset)

	lh := &listhandler.Handlers{Service: &listsvc.Service{Listings: listingRepo}}
	bh := &bookhandler.Handlers{Service: &booksvc.Service{Bookings: bookingRepo, Listings: listingRepo}}
	rh := &revhandler.Handlers{Service: &revsvc.Service{Reviews: reviewRepo, Listings: listingRepo}}
	leh := &lehandler.Handlers{Service: &lesvc.Service{Events: repository.NewListingEventRepository(db)}}

	api := app.Group("/api/v1")

	lg := api.Group("/listings")
	lg.Get("/", lh.List)
	lg.Post("/", lh.Create)
	lg.Get("/:id", lh.Get)
	lg.Patch("/:id", lh.Update)
	lg.Delete("/:id", lh.Delete)
	lg.Get("/:id/bookings", bh.ListForListing)
	lg.Get("/:id/reviews", rh.ListForListing)
	lg.Get("/:id/events", leh.ListForListing)

	bg := api.Group("/bookings")
	bg.Get("/", bh.List)
	bg.Post("/", bh.Create)
	bg.Get("/:id", bh.Get)
	bg.Patch("/:id", bh.Update)
	bg.Delete("/:id", bh.Delete)

	rg := api.Group("/reviews")
	rg.Get("/", rh.List)
	rg.Post("/", rh.Create)
	rg.Get("/:id", rh.Get)
	rg.Patch("/:id", rh.Update)
	rg.Delete("/:id", rh.Delete)

	return app
}
