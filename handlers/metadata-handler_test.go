package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Wanderboy007/inksesh-app/ai"
	handler "github.com/Wanderboy007/inksesh-app/handlers"
	"github.com/Wanderboy007/inksesh-app/models"
	"github.com/Wanderboy007/inksesh-app/services"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "Failed to create test database")
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Design{}))
	return db
}

type stubAnalyzer struct{}

func (stubAnalyzer) Analyze(ctx context.Context, designs []ai.DesignImage) (*ai.Analysis, error) {
	result := &ai.Analysis{}
	for _, design := range designs {
		result.Analysis = append(result.Analysis, ai.AnalysisItem{
			ID:       design.ID,
			Title:    "Koi Sleeve",
			Caption:  "a koi sleeve",
			Gender:   "MALE",
			Size:     "LARGE",
			BodyPart: "forearm",
			Style:    []string{"Japanese"},
			Themes:   []string{"Koi"},
		})
	}
	return result, nil
}

func setupMetadataApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	app := fiber.New()
	h := &handler.MetadataHandler{
		Inference: &services.InferenceService{DB: db, Analyzer: stubAnalyzer{}},
	}
	app.Post("/api/ai/generate-metadata", h.GenerateMetadata)
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err, "Failed to execute request")

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}

func TestGenerateMetadataMissingInputs(t *testing.T) {
	app, _ := setupMetadataApp(t)

	status, result := postJSON(t, app, "/api/ai/generate-metadata", map[string]string{
		"userId": "", "designIds": "a,b",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Missing inputs", result["error"])

	status, _ = postJSON(t, app, "/api/ai/generate-metadata", map[string]string{
		"userId": "u1", "designIds": " , ",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestGenerateMetadataNoOwnedDesigns(t *testing.T) {
	app, db := setupMetadataApp(t)

	owner := &models.User{Email: "owner@x.com", Username: "owner", Password: "x"}
	require.NoError(t, db.Create(owner).Error)
	stranger := &models.User{Email: "other@x.com", Username: "other", Password: "x"}
	require.NoError(t, db.Create(stranger).Error)

	design := &models.Design{UserID: owner.ID, ImageURL: "https://x/a.jpg"}
	require.NoError(t, db.Create(design).Error)

	status, result := postJSON(t, app, "/api/ai/generate-metadata", map[string]string{
		"userId": stranger.ID, "designIds": design.ID,
	})
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "No designs found", result["error"])
}

func TestGenerateMetadataSuccess(t *testing.T) {
	app, db := setupMetadataApp(t)

	owner := &models.User{Email: "owner@x.com", Username: "owner", Password: "x"}
	require.NoError(t, db.Create(owner).Error)

	d1 := &models.Design{UserID: owner.ID, ImageURL: "https://x/a.jpg"}
	require.NoError(t, db.Create(d1).Error)
	d2 := &models.Design{UserID: owner.ID, ImageURL: "https://x/b.jpg"}
	require.NoError(t, db.Create(d2).Error)

	status, result := postJSON(t, app, "/api/ai/generate-metadata", map[string]string{
		"userId": owner.ID, "designIds": d1.ID + "," + d2.ID,
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, result["success"])
	assert.EqualValues(t, 2, result["count"])

	var after models.Design
	require.NoError(t, db.First(&after, "id = ?", d1.ID).Error)
	assert.Equal(t, "Koi Sleeve", after.Title)
	assert.Equal(t, models.GenderMale, after.Gender)
}
