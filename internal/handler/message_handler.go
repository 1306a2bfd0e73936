package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ykwizera/studysync/internal/domain"
	"github.com/ykwizera/studysync/internal/service"
	"github.com/ykwizera/studysync/pkg/log"
	"github.com/ykwizera/studysync/pkg/middleware"
	"github.com/ykwizera/studysync/pkg/response"
)

// MessageHandler handles group chat history HTTP requests.
type MessageHandler struct {
	messageService service.MessageService
	chatService    service.ChatService
	authMiddleware *middleware.AuthMiddleware
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(messageService service.MessageService, chatService service.ChatService, authMiddleware *middleware.AuthMiddleware) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		chatService:    chatService,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers message routes.
func (h *MessageHandler) RegisterRoutes(api *gin.RouterGroup) {
	groups := api.Group("/groups", h.authMiddleware.RequireAuth())
	{
		groups.GET("/:id/messages", h.ListMessages)
		groups.POST("/:id/messages", h.PostMessage)
	}
}

// ListMessages returns a group's message history, oldest first.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.BadRequest(c, "invalid limit")
			return
		}
		limit = n
	}

	messages, err := h.messageService.ListByGroup(ctx, userID, groupID, limit)
	if err != nil {
		if writeGateError(c, err) {
			return
		}
		l.Error().Err(err).Int64(log.FieldGroupID, groupID).Msg("failed to list messages")
		response.InternalError(c, "failed to list messages")
		return
	}

	response.Success(c, messages)
}

// PostMessage persists a message and fans it out to online group members.
func (h *MessageHandler) PostMessage(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := middleware.GetUserID(c)
	username := middleware.GetUsername(c)
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req domain.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	msg, err := h.messageService.Post(ctx, userID, username, groupID, req.Content)
	if err != nil {
		if writeGateError(c, err) {
			return
		}
		l.Error().Err(err).Int64(log.FieldGroupID, groupID).Msg("failed to post message")
		response.InternalError(c, "failed to post message")
		return
	}

	if err := h.chatService.BroadcastMessage(ctx, msg); err != nil {
		l.Warn().Err(err).Int64(log.FieldGroupID, groupID).Msg("failed to broadcast posted message")
	}

	response.Created(c, msg)
}
