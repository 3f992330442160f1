package main

import (
	"context"
	"fmt"
	"log"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Wanderboy007/inksesh-app/ai"
	"github.com/Wanderboy007/inksesh-app/auth"
	"github.com/Wanderboy007/inksesh-app/config"
	"github.com/Wanderboy007/inksesh-app/database"
	handler "github.com/Wanderboy007/inksesh-app/handlers"
	"github.com/Wanderboy007/inksesh-app/instagram"
	"github.com/Wanderboy007/inksesh-app/models"
	"github.com/Wanderboy007/inksesh-app/router"
	"github.com/Wanderboy007/inksesh-app/services"
	"github.com/Wanderboy007/inksesh-app/storage"
)

func main() {
	ctx := context.Background()

	db := database.GetDB()
	if err := database.MigrateModels(&models.User{}, &models.Design{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	defer func() {
		if err := database.CloseDB(); err != nil {
			log.Printf("Error closing the database connection: %v", err)
		}
	}()

	auth.SetupAuthService()

	uploader, err := storage.NewClientUploader(ctx, config.Config("GCS_BUCKET_NAME"))
	if err != nil {
		log.Fatalf("Failed to create storage uploader: %v", err)
	}

	analyzer, err := ai.NewGeminiAnalyzer(ctx, config.ConfigDefault("GEMINI_MODEL", "gemini-2.0-flash"))
	if err != nil {
		log.Fatalf("Failed to create analyzer: %v", err)
	}

	scraper := instagram.NewApifyScraper(
		config.ConfigDefault("APIFY_ACTOR_ID", "nH2AHrwxeTRJoN5hX"),
		config.Config("APIFY_API_TOKEN"),
	)

	ingest := &services.IngestService{DB: db, Uploader: uploader}
	inference := &services.InferenceService{DB: db, Analyzer: analyzer}
	gallery := &services.GalleryService{DB: db}

	app := fiber.New()
	app.Use(recover.New())

	prometheus := fiberprometheus.New("inksesh")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	router.SetupRoutes(app, router.Handlers{
		Auth:      &handler.AuthHandler{DB: db},
		User:      &handler.UserHandler{DB: db},
		Instagram: &handler.InstagramHandler{Scraper: scraper},
		Design:    &handler.DesignHandler{DB: db, Uploader: uploader, Ingest: ingest, Inference: inference},
		Metadata:  &handler.MetadataHandler{Inference: inference},
		Discover:  &handler.DiscoverHandler{Gallery: gallery},
	})

	port := config.ConfigDefault("PORT", "3000")
	fmt.Printf("Server is listening at the port %s\n", port)
	log.Fatal(app.Listen(":" + port))
}
