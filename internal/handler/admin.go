package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Ak1Gupta/Socket-Backend/internal/service"
)

type AdminHandler struct {
	users  service.UserStore
	groups service.GroupStore
	hub    *service.Hub
}

func NewAdminHandler(users service.UserStore, groups service.GroupStore, hub *service.Hub) *AdminHandler {
	return &AdminHandler{users: users, groups: groups, hub: hub}
}

// Stats reports store and connection counts.
// GET /api/admin/stats
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	totalUsers, _ := h.users.CountUsers(c.Context())
	totalGroups, _ := h.groups.CountGroups(c.Context())

	return c.JSON(fiber.Map{
		"users_total":        totalUsers,
		"groups_total":       totalGroups,
		"connections_online": h.hub.OnlineCount(),
	})
}

// Announce persists a system message for a group and broadcasts it to the
// group's members.
// POST /api/admin/groups/:id/announce
func (h *AdminHandler) Announce(c *fiber.Ctx) error {
	groupID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || groupID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "invalid group id"})
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Message == "" {
		return c.Status(400).JSON(fiber.Map{"error": "message is required"})
	}

	msg, err := h.hub.SendSystem(c.Context(), groupID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGroupNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidEvent):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "failed to send announcement"})
		}
	}

	return c.JSON(msg.Payload())
}
