package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/Wanderboy007/inksesh-app/auth"
	"github.com/Wanderboy007/inksesh-app/models"
	"github.com/go-pkgz/auth/v2/token"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB *gorm.DB
}

type registerRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Username   string `json:"username"`
	ProfileURL string `json:"profileUrl"`
	Password   string `json:"password" validate:"required,min=8"`
}

type userResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	ProfileURL string `json:"profileUrl,omitempty"`
}

// Register creates an artist account. Email and username are unique; a
// missing username defaults to the email's local part.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input registerRequest
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
			"message": "Email and a password of at least 8 characters are required",
			"data":    nil,
		})
	}

	var existing models.User
	if err := h.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "error",
			"message": fmt.Sprintf("User with email %q already exists", input.Email),
			"data":    fiber.Map{"userExists": true, "userId": existing.ID},
		})
	}

	if input.Username != "" {
		if err := h.DB.Where("username = ?", input.Username).First(&existing).Error; err == nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"status":  "error",
				"message": fmt.Sprintf("Username %q is already taken", input.Username),
				"data":    nil,
			})
		}
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to hash password",
			"data":    nil,
		})
	}

	username := input.Username
	if username == "" {
		username = strings.SplitN(input.Email, "@", 2)[0]
	}

	user := models.User{
		Email:      input.Email,
		Username:   username,
		ProfileURL: input.ProfileURL,
		Password:   hash,
	}

	if err := h.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create user",
			"data":    nil,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Profile created successfully",
		"data": userResponse{
			ID:         user.ID,
			Email:      user.Email,
			Username:   user.Username,
			ProfileURL: user.ProfileURL,
		},
	})
}

// Login validates credentials and issues a JWT, set both as a cookie and
// returned for bearer use.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	type loginRequest struct {
		Identity string `json:"identity"`
		Password string `json:"password"`
	}

	var input loginRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
			"data":    nil,
		})
	}

	userModel, err := auth.LookupUser(input.Identity)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error",
			"data":    nil,
		})
	}

	if userModel == nil || !auth.CheckPasswordHash(input.Password, userModel.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid identity or password",
			"data":    nil,
		})
	}

	user := token.User{
		ID:    userModel.ID,
		Name:  userModel.Username,
		Email: userModel.Email,
		Attributes: map[string]interface{}{
			"username": userModel.Username,
		},
	}

	claims := token.Claims{
		User: &user,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    auth.GetAuthService().TokenService().Issuer,
			Audience:  []string{"inksesh"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	tokenStr, err := auth.GetAuthService().TokenService().Token(claims)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to generate token",
			"data":    nil,
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "JWT",
		Value:    tokenStr,
		Expires:  time.Now().Add(time.Hour * 24 * 7),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Login successful",
		"data": fiber.Map{
			"id":       userModel.ID,
			"email":    userModel.Email,
			"username": userModel.Username,
			"token":    tokenStr,
		},
	})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "JWT",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Logout successful",
		"data":    nil,
	})
}
