package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Ak1Gupta/Socket-Backend/internal/model"
	"github.com/Ak1Gupta/Socket-Backend/internal/service"
)

type GroupHandler struct {
	groups *service.GroupService
}

func NewGroupHandler(groups *service.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// Create makes a new group; the creator becomes its first member.
// POST /api/groups
func (h *GroupHandler) Create(c *fiber.Ctx) error {
	var req model.CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Username == "" {
		return c.Status(400).JSON(fiber.Map{"error": "username is required"})
	}

	group, err := h.groups.Create(c.Context(), req.Name, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidGroupName):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "failed to create group"})
		}
	}

	return c.Status(201).JSON(group)
}

// Get returns a group by id.
// GET /api/groups/:id
func (h *GroupHandler) Get(c *fiber.Ctx) error {
	groupID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || groupID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "invalid group id"})
	}

	group, err := h.groups.ByID(c.Context(), groupID)
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "failed to get group"})
	}

	return c.JSON(group)
}

// GetMembers lists a group's member usernames.
// GET /api/groups/:id/members
func (h *GroupHandler) GetMembers(c *fiber.Ctx) error {
	groupID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || groupID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "invalid group id"})
	}

	members, err := h.groups.Members(c.Context(), groupID)
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "failed to get members"})
	}

	if members == nil {
		members = []string{}
	}
	return c.JSON(fiber.Map{"members": members})
}

// GetUserGroups lists the groups a user belongs to.
// GET /api/groups/user/:username
func (h *GroupHandler) GetUserGroups(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return c.Status(400).JSON(fiber.Map{"error": "username is required"})
	}

	groups, err := h.groups.GroupsFor(c.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "failed to get groups"})
	}

	if groups == nil {
		groups = []model.Group{}
	}
	return c.JSON(fiber.Map{"groups": groups})
}
