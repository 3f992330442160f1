package handler

import (
	"errors"

	"github.com/Wanderboy007/inksesh-app/services"
	"github.com/gofiber/fiber/v2"
)

type MetadataHandler struct {
	Inference *services.InferenceService
}

// GenerateMetadata triggers the inference pipeline for a batch of designs.
// The contract mirrors the UI's trigger: userId plus a comma-delimited
// designIds string in the body.
func (h *MetadataHandler) GenerateMetadata(c *fiber.Ctx) error {
	type generateRequest struct {
		UserID    string `json:"userId"`
		DesignIDs string `json:"designIds"`
	}

	var input generateRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing inputs"})
	}

	count, err := h.Inference.GenerateMetadata(c.Context(), input.UserID, input.DesignIDs)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing inputs"})
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No designs found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "count": count})
}
