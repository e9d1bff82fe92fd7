package handler

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Ak1Gupta/Socket-Backend/internal/metrics"
	"github.com/Ak1Gupta/Socket-Backend/internal/model"
	"github.com/Ak1Gupta/Socket-Backend/internal/service"
)

const readDeadline = 60 * time.Second

type wsError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

type WSHandler struct {
	registry   *service.Registry
	hub        *service.Hub
	messages   *service.MessageService
	groups     service.GroupLookup
	members    service.Membership
	sendBuffer int
	log        zerolog.Logger
}

func NewWSHandler(registry *service.Registry, hub *service.Hub, messages *service.MessageService, groups service.GroupLookup, members service.Membership, sendBuffer int, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		registry:   registry,
		hub:        hub,
		messages:   messages,
		groups:     groups,
		members:    members,
		sendBuffer: sendBuffer,
		log:        log.With().Str("component", "ws").Logger(),
	}
}

// Upgrade validates the connection request before any registration happens.
// A connection needs a username and groupId, and the user must already be a
// member of the group.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	username := c.Query("username")
	groupID, err := strconv.ParseInt(c.Query("groupId"), 10, 64)
	if username == "" || err != nil || groupID <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "username and groupId are required"})
	}

	exists, err := h.groups.GroupExists(c.Context(), groupID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "group lookup failed"})
	}
	if !exists {
		return c.Status(404).JSON(fiber.Map{"error": "group not found"})
	}

	member, err := h.members.IsMember(c.Context(), groupID, username)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "membership check failed"})
	}
	if !member {
		return c.Status(403).JSON(fiber.Map{"error": "not a member of this group"})
	}

	c.Locals("username", username)
	c.Locals("group_id", groupID)
	return websocket.New(h.handleConnection)(c)
}

func (h *WSHandler) handleConnection(c *websocket.Conn) {
	username, _ := c.Locals("username").(string)
	groupID, _ := c.Locals("group_id").(int64)

	conn := service.NewConnection(uuid.NewString(), username, groupID, h.sendBuffer)
	h.registry.Register(conn)
	defer h.registry.Unregister(conn.ID)

	metrics.WSConnections.Inc()
	defer metrics.WSConnections.Dec()
	h.log.Info().Str("username", username).Int64("group_id", groupID).Msg("connected")
	defer h.log.Info().Str("username", username).Int64("group_id", groupID).Msg("disconnected")

	// Writer goroutine: drains the send buffer until Unregister closes it.
	go func() {
		defer c.Close()
		for payload := range conn.Outbound() {
			if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		}
	}()

	_ = c.SetReadDeadline(time.Now().Add(readDeadline))
	for {
		_, raw, err := c.ReadMessage()
		if err != nil {
			return
		}
		_ = c.SetReadDeadline(time.Now().Add(readDeadline))

		var ev model.ChatEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			h.sendError(conn, "invalid message payload")
			continue
		}

		// JOIN is acknowledged by protocol only; membership changes go
		// through the REST group API.
		if ev.Type == model.TypeJoin {
			continue
		}

		saved, err := h.messages.SaveEvent(context.Background(), ev)
		if err != nil {
			h.log.Warn().Err(err).Str("username", username).Int64("group_id", ev.GroupID).Msg("message rejected")
			h.sendError(conn, errorMessage(err))
			continue
		}

		payload, err := json.Marshal(saved.Payload())
		if err != nil {
			h.sendError(conn, "failed to encode message")
			continue
		}
		h.hub.BroadcastToGroup(saved.GroupID, payload)
	}
}

func (h *WSHandler) sendError(conn *service.Connection, msg string) {
	payload, err := json.Marshal(wsError{Type: "ERROR", Error: msg})
	if err != nil {
		return
	}
	conn.TrySend(payload)
}

// errorMessage maps service errors to the text reported back to the sender.
// Store internals stay out of the frame.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrGroupNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrNotMember),
		errors.Is(err, service.ErrInvalidEvent):
		return err.Error()
	case service.IsTransient(err):
		return "message could not be stored, try again"
	default:
		return "failed to process message"
	}
}
