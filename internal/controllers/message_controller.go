package controllers

import (
	"net/http"

	"github.com/kodipay/kodipay-server/internal/dtos"
	"github.com/kodipay/kodipay-server/internal/realtime"
	"github.com/kodipay/kodipay-server/internal/services"
	"github.com/kodipay/kodipay-server/internal/utils"
)

type MessageController struct {
	messageService services.MessageService
	hub            *realtime.Hub
	jwtService     services.JWTService
}

func NewMessageController(
	messageService services.MessageService,
	hub *realtime.Hub,
	jwtService services.JWTService,
) *MessageController {
	return &MessageController{
		messageService: messageService,
		hub:            hub,
		jwtService:     jwtService,
	}
}

// SendGroup -> POST /api/messages/group
func (c *MessageController) SendGroup(w http.ResponseWriter, r *http.Request) {
	senderID, _, ok := identity(w, r)
	if !ok {
		return
	}

	var req dtos.SendGroupMessageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := c.messageService.SendGroup(r.Context(), req.PropertyID, senderID, req.Content); err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{"message": "Message sent"})
}

// SendDirect -> POST /api/messages/direct
func (c *MessageController) SendDirect(w http.ResponseWriter, r *http.Request) {
	senderID, _, ok := identity(w, r)
	if !ok {
		return
	}

	var req dtos.SendDirectMessageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := c.messageService.SendDirect(r.Context(), senderID, req.RecipientID, req.Content); err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{"message": "Message sent"})
}

// GroupHistory -> GET /api/messages/group/{propertyID}
func (c *MessageController) GroupHistory(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := identity(w, r); !ok {
		return
	}
	propertyID, ok := pathUUID(w, r, "propertyID")
	if !ok {
		return
	}

	messages, err := c.messageService.GroupHistory(r.Context(), propertyID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, messages)
}

// DirectHistory -> GET /api/messages/direct/{userID}
func (c *MessageController) DirectHistory(w http.ResponseWriter, r *http.Request) {
	requesterID, _, ok := identity(w, r)
	if !ok {
		return
	}
	otherID, ok := pathUUID(w, r, "userID")
	if !ok {
		return
	}

	messages, err := c.messageService.DirectHistory(r.Context(), requesterID, otherID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, messages)
}

// ServeWS -> GET /api/ws?token=...
//
// Browsers cannot set headers on websocket dials, so the access token rides
// in the query string.
func (c *MessageController) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized,
			utils.ErrCodeUnauthorized, "Missing token", nil)
		return
	}

	claims, err := c.jwtService.VerifyAccessToken(token)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized,
			utils.ErrCodeUnauthorized, "Invalid or expired token", nil, err)
		return
	}

	realtime.ServeWS(c.hub, c.messageService, w, r, claims.UserID)
}
