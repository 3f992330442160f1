package handler

import (
	"errors"

	"github.com/Wanderboy007/inksesh-app/middleware"
	"github.com/Wanderboy007/inksesh-app/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserHandler struct {
	DB *gorm.DB
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id := c.Params("id")

	var user models.User
	if err := h.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "No user found with ID",
				"data":    nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"data":    nil,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "User found",
		"data": userResponse{
			ID:         user.ID,
			Email:      user.Email,
			Username:   user.Username,
			ProfileURL: user.ProfileURL,
		},
	})
}

// UpdateUser lets the authenticated user change their username and profile
// link.
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	type updateRequest struct {
		Username   string `json:"username"`
		ProfileURL string `json:"profileUrl"`
	}

	currentID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Authentication required",
			"data":    nil,
		})
	}

	id := c.Params("id")
	if id != currentID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "error",
			"message": "You can only update your own profile",
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

	if input.Username == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Username is required",
			"data":    nil,
		})
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "User not found",
				"data":    nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"data":    nil,
		})
	}

	var existing models.User
	if err := h.DB.Where("username = ? AND id <> ?", input.Username, id).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "error",
			"message": "Username already taken",
			"data":    nil,
		})
	}

	user.Username = input.Username
	user.ProfileURL = input.ProfileURL

	if err := h.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update user",
			"data":    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Profile updated",
		"data": userResponse{
			ID:         user.ID,
			Email:      user.Email,
			Username:   user.Username,
			ProfileURL: user.ProfileURL,
		},
	})
}
