package router

import (
	"github.com/Wanderboy007/inksesh-app/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	handler "github.com/Wanderboy007/inksesh-app/handlers"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	User      *handler.UserHandler
	Instagram *handler.InstagramHandler
	Design    *handler.DesignHandler
	Metadata  *handler.MetadataHandler
	Discover  *handler.DiscoverHandler
}

func SetupRoutes(app *fiber.App, h Handlers) {
	api := app.Group("/api", logger.New())
	api.Get("/hello", handler.Hello)

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/logout", h.Auth.Logout)

	// User
	user := api.Group("/user")
	user.Get("/:id", h.User.GetUser)
	user.Put("/:id", middleware.AuthMiddleware(), h.User.UpdateUser)

	// Instagram scrape trigger
	api.Post("/instagram/fetch-media", h.Instagram.FetchMedia)

	// Designs (owner only)
	designs := api.Group("/designs", middleware.AuthMiddleware())
	designs.Post("/import", h.Design.ImportDesigns)
	designs.Put("/:id", h.Design.UpdateDesign)
	designs.Delete("/:id", h.Design.DeleteDesign)

	// Inference trigger
	api.Post("/ai/generate-metadata", h.Metadata.GenerateMetadata)

	// Public gallery
	api.Get("/discover", h.Discover.Discover)
	api.Get("/discover/filter/:type/:value", h.Discover.Filtered)
	api.Get("/artist/:username", h.Discover.Artist)
}
