package handler

import (
	"errors"

	"github.com/Wanderboy007/inksesh-app/services"
	"github.com/gofiber/fiber/v2"
)

type DiscoverHandler struct {
	Gallery *services.GalleryService
}

// Discover serves the public gallery: optional category and search facets,
// newest first, with the category universe for the filter bar.
func (h *DiscoverHandler) Discover(c *fiber.Ctx) error {
	opts := services.DiscoverOptions{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Limit:    c.QueryInt("limit"),
		Offset:   c.QueryInt("offset"),
	}

	designs, total, categories, err := h.Gallery.Discover(c.Context(), opts)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to load designs",
			"data":    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Designs loaded",
		"data": fiber.Map{
			"designs":    designs,
			"total":      total,
			"categories": categories,
		},
	})
}

// Filtered serves a single-facet view (gender, size, or body part).
func (h *DiscoverHandler) Filtered(c *fiber.Ctx) error {
	filterType := services.FilterType(c.Params("type"))
	value := c.Params("value")

	designs, total, options, err := h.Gallery.Filtered(c.Context(), filterType, value, c.QueryInt("limit"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "Unknown filter type",
				"data":    nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to load designs",
			"data":    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Designs loaded",
		"data": fiber.Map{
			"designs":       designs,
			"total":         total,
			"filterOptions": options,
		},
	})
}

// Artist serves an artist's public profile with their newest designs.
func (h *DiscoverHandler) Artist(c *fiber.Ctx) error {
	profile, err := h.Gallery.ArtistByUsername(c.Context(), c.Params("username"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "Artist not found",
				"data":    nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to load artist",
			"data":    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Artist found",
		"data":    profile,
	})
}
