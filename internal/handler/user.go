package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Ak1Gupta/Socket-Backend/internal/model"
	"github.com/Ak1Gupta/Socket-Backend/internal/service"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register creates a user profile. Identity verification (OTP) is owned by
// the external identity provider.
// POST /api/users/register
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req model.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}

	user, err := h.users.Register(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUsername), errors.Is(err, service.ErrMissingName):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrUserExists):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "failed to register user"})
		}
	}

	return c.Status(201).JSON(user)
}

// Get returns a user profile by username.
// GET /api/users/:username
func (h *UserHandler) Get(c *fiber.Ctx) error {
	username := c.Params("username")

	user, err := h.users.Get(c.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "failed to get user"})
	}

	return c.JSON(user)
}
