package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func Hello(c *fiber.Ctx) error {
	return c.SendString("Hello, InkSesh!")
}
