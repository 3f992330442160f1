package handler

import (
	"errors"
	"log"
	"strings"

	"github.com/Wanderboy007/inksesh-app/instagram"
	"github.com/Wanderboy007/inksesh-app/middleware"
	"github.com/Wanderboy007/inksesh-app/models"
	"github.com/Wanderboy007/inksesh-app/services"
	"github.com/Wanderboy007/inksesh-app/storage"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DesignHandler struct {
	DB        *gorm.DB
	Uploader  storage.Uploader
	Ingest    *services.IngestService
	Inference *services.InferenceService
}

type importRequest struct {
	Images  []instagram.Post `json:"images" validate:"required,min=1,dive"`
	Analyze bool             `json:"analyze"`
}

// ImportDesigns ingests the selected external media as owned designs. With
// analyze set, metadata inference runs afterwards; an inference failure is
// tolerated and the designs stay in their placeholder state.
func (h *DesignHandler) ImportDesigns(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Authentication required",
			"data":    nil,
		})
	}

	var input importRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
			"data":    nil,
		})
	}

	if err := validate.Struct(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "At least one image is required",
			"data":    nil,
		})
	}

	ids, err := h.Ingest.ImportSelected(c.Context(), userID, input.Images)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, services.ErrInvalidInput) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
			"data":    nil,
		})
	}

	designIDs := strings.Join(ids, ",")

	analyzed := 0
	if input.Analyze {
		count, err := h.Inference.GenerateMetadata(c.Context(), userID, designIDs)
		if err != nil {
			// Designs are already saved; leaving them untagged is fine.
			log.Printf("metadata inference failed after import: %v", err)
		}
		analyzed = count
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Successfully imported designs",
		"data": fiber.Map{
			"designIds": designIDs,
			"analyzed":  analyzed,
		},
	})
}

// UpdateDesign applies a manual metadata edit from the design editor. The
// same truncation caps as the inference pipeline apply.
func (h *DesignHandler) UpdateDesign(c *fiber.Ctx) error {
	type updateRequest struct {
		Title    string `json:"title"`
		Caption  string `json:"caption"`
		Gender   string `json:"gender"`
		Size     string `json:"size"`
		BodyPart string `json:"bodyPart"`
		Styles   string `json:"styles"`
		Themes   string `json:"themes"`
	}

	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Authentication required",
			"data":    nil,
		})
	}

	var input updateRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
			"data":    nil,
		})
	}

	design, fail := h.ownedDesign(c, userID)
	if design == nil {
		return fail
	}

	res := h.DB.Model(design).Updates(map[string]interface{}{
		"title":     models.Truncate(input.Title, models.MaxTitleLen),
		"caption":   models.Truncate(input.Caption, models.MaxCaptionLen),
		"gender":    input.Gender,
		"size":      input.Size,
		"body_part": input.BodyPart,
		"styles":    splitTags(input.Styles),
		"themes":    splitTags(input.Themes),
	})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update design",
			"data":    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Design updated",
		"data":    nil,
	})
}

// DeleteDesign removes a design row after a best-effort delete of its stored
// file. A storage failure never blocks deleting the record.
func (h *DesignHandler) DeleteDesign(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Authentication required",
			"data":    nil,
		})
	}

	design, fail := h.ownedDesign(c, userID)
	if design == nil {
		return fail
	}

	if design.ImageURL != "" {
		if err := h.Uploader.Delete(c.Context(), design.ImageURL); err != nil {
			log.Printf("failed to delete stored file for design %s: %v", design.ID, err)
		}
	}

	if err := h.DB.Delete(design).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to delete design",
			"data":    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Design deleted",
		"data":    nil,
	})
}

// ownedDesign loads the :id design scoped to the owner. A design owned by
// another user reads as not found. On failure the response has already been
// written and the returned design is nil.
func (h *DesignHandler) ownedDesign(c *fiber.Ctx, userID string) (*models.Design, error) {
	id := c.Params("id")
	if id == "" {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Design ID is required",
			"data":    nil,
		})
	}

	var design models.Design
	if err := h.DB.First(&design, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "Design not found",
				"data":    nil,
			})
		}
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"data":    nil,
		})
	}

	return &design, nil
}

// splitTags turns the editor's comma-separated tag field into a stored list.
func splitTags(raw string) models.StringList {
	parts := strings.Split(raw, ",")
	tags := models.StringList{}
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
