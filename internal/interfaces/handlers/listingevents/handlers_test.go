package listingevents

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	lesvc "rental-backend/internal/application/listingevents"
	"rental-backend/internal/domain"
	"rental-backend/internal/infrastructure/database"
	"rental-backend/internal/infrastructure/repository"
	"rental-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupLETest(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := database.OpenSQLite("")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	h := &Handlers{Service: &lesvc.Service{Events: repository.NewListingEventRepository(db)}}
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(nil)})
	app.Get("/listings/:id/events", h.ListForListing)
	return app, db
}

func TestListForListing_MalformedID(t *testing.T) {
	app, _ := setupLETest(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/listings/not-a-uuid/events", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestListForListing_UnknownListingIsEmpty(t *testing.T) {
	app, _ := setupLETest(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/listings/"+uuid.NewString()+"/events", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	var out struct {
		Data     []interface{}          `json:"data"`
		Metadata map[string]interface{} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Empty(t, out.Data)
	assert.Equal(t, float64(0), out.Metadata["count"])
}

func TestListForListing_SurvivesDelete(t *testing.T) {
	app, db := setupLETest(t)
	repo := repository.NewListingRepository(db)
	ctx := context.Background()
	l := &domain.Listing{
		Title: "Loft", Description: "Bright loft", Address: "1 Main St",
		PricePerNight: 100, Bedrooms: 1, Bathrooms: 1, MaxGuests: 2, IsPublished: true,
	}
	require.NoError(t, repo.Create(ctx, l))
	require.NoError(t, repo.Delete(ctx, l.ID))

	resp, err := app.Test(httptest.NewRequest("GET", "/listings/"+l.ID.String()+"/events", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	var out struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.Len(t, out.Data, 2)
	assert.Equal(t, domain.ListingEventCreated, out.Data[0]["event_type"])
	assert.Equal(t, domain.ListingEventDeleted, out.Data[1]["event_type"])
}
