package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Ak1Gupta/Socket-Backend/internal/service"
)

type MessageHandler struct {
	history *service.HistoryService
}

func NewMessageHandler(history *service.HistoryService) *MessageHandler {
	return &MessageHandler{history: history}
}

// GetGroupMessages returns one page of a group's history, newest first,
// stitched across the live table and the archived batches.
// GET /api/messages/group/:groupId?username=alice&page=1&limit=20
func (h *MessageHandler) GetGroupMessages(c *fiber.Ctx) error {
	groupID, err := strconv.ParseInt(c.Params("groupId"), 10, 64)
	if err != nil || groupID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "invalid group id"})
	}

	username := c.Query("username")
	if username == "" {
		return c.Status(400).JSON(fiber.Map{"error": "username is required"})
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	result, err := h.history.GetPage(c.Context(), groupID, username, page, limit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGroupNotFound), errors.Is(err, service.ErrUserNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrNotMember):
			return c.Status(403).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "failed to get messages"})
		}
	}

	return c.JSON(result)
}
