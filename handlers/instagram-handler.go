package handler

import (
	"log"

	"github.com/Wanderboy007/inksesh-app/instagram"
	"github.com/gofiber/fiber/v2"
)

type InstagramHandler struct {
	Scraper instagram.Scraper
}

// FetchMedia runs the scraper actor for a username or profile URL and
// returns the normalized candidate posts.
func (h *InstagramHandler) FetchMedia(c *fiber.Ctx) error {
	type fetchRequest struct {
		InputURL string `json:"inputUrl"`
	}

	var input fetchRequest
	if err := c.BodyParser(&input); err != nil || input.InputURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Instagram Username or URL is required",
		})
	}

	items, err := h.Scraper.FetchPosts(c.Context(), input.InputURL)
	if err != nil {
		log.Printf("scraper failed for %q: %v", input.InputURL, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to fetch Instagram posts",
			"details": err.Error(),
		})
	}

	if len(items) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No posts found or profile is private.",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"posts": instagram.Normalize(items),
	})
}
