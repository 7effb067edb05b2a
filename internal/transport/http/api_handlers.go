package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/meetspace/signaling-server/internal/auth"
	"github.com/meetspace/signaling-server/internal/core"
)

// APIHandlers provides the read-only diagnostic surface and the
// guest-token endpoint. These are thin wrappers over the hub; none of
// the protocol logic lives here.
type APIHandlers struct {
	hub    *core.Hub
	tokens *auth.Service
	log    *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(hub *core.Hub, tokens *auth.Service, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{hub: hub, tokens: tokens, log: logger}
}

// GuestRequest represents the guest-token request body.
type GuestRequest struct {
	Username string `json:"username" binding:"required"`
}

// AuthResponse represents the token response body.
type AuthResponse struct {
	Token string `json:"token"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RoomUser is one member entry in the rooms listing.
type RoomUser struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// RoomEntry is one room in the rooms listing.
type RoomEntry struct {
	RoomID    string     `json:"roomId"`
	Users     []RoomUser `json:"users"`
	UserCount int        `json:"userCount"`
}

// RoomsResponse represents the rooms listing body.
type RoomsResponse struct {
	Rooms []RoomEntry `json:"rooms"`
}

// Health handles liveness checks.
// GET /healthcheck
func (h *APIHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Server running"})
}

// Rooms enumerates current rooms and members for operational
// visibility.
// GET /rooms
func (h *APIHandlers) Rooms(c *gin.Context) {
	snapshot, err := h.hub.Snapshot(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to snapshot rooms")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	rooms := make([]RoomEntry, 0, len(snapshot))
	for _, info := range snapshot {
		users := make([]RoomUser, 0, len(info.Members))
		for _, m := range info.Members {
			users = append(users, RoomUser{UserID: m.ID, Username: m.Name})
		}
		rooms = append(rooms, RoomEntry{
			RoomID:    info.Name,
			Users:     users,
			UserCount: len(users),
		})
	}
	c.JSON(http.StatusOK, RoomsResponse{Rooms: rooms})
}

// Guest issues a guest token carrying a display name.
// POST /api/guest
func (h *APIHandlers) Guest(c *gin.Context) {
	var req GuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid guest request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	token, err := h.tokens.IssueGuest(req.Username)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidUsername) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid username"})
			return
		}
		h.log.Error().Err(err).Msg("failed to issue guest token")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token})
}
