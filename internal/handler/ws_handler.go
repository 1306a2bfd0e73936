package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ykwizera/studysync/internal/config"
	"github.com/ykwizera/studysync/internal/domain"
	"github.com/ykwizera/studysync/internal/hub"
	"github.com/ykwizera/studysync/internal/service"
	"github.com/ykwizera/studysync/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades HTTP requests to WebSocket connections and routes
// inbound frames to the chat service.
type WSHandler struct {
	hub     *hub.Hub
	service service.ChatService
	wsCfg   config.WebSocketConfig
}

func NewWSHandler(h *hub.Hub, svc service.ChatService, wsCfg config.WebSocketConfig) *WSHandler {
	return &WSHandler{
		hub:     h,
		service: svc,
		wsCfg:   wsCfg,
	}
}

// RegisterRoutes registers the WebSocket endpoint.
func (h *WSHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/ws", h.HandleWebSocket)
}

func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Ctx(c.Request.Context()).Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := hub.NewClient(uuid.New().String(), h.hub, conn, h.wsCfg)

	// The connection outlives the upgrade request; keep its context
	// values (request-id logger) but not its cancellation.
	connCtx := context.WithoutCancel(c.Request.Context())

	h.hub.Register(client)
	log.Ctx(connCtx).Debug().Str(log.FieldClientID, client.ID).Msg("websocket connection established")

	go client.WritePump()
	go client.ReadPump(
		func(cl *hub.Client, message []byte) { h.handleMessage(connCtx, cl, message) },
		func(cl *hub.Client) { h.handleDisconnect(connCtx, cl) },
	)
}

func (h *WSHandler) handleDisconnect(ctx context.Context, client *hub.Client) {
	h.service.HandleDisconnect(ctx, client)
}

func (h *WSHandler) handleMessage(ctx context.Context, client *hub.Client, message []byte) {
	var base domain.BaseMessage
	if err := json.Unmarshal(message, &base); err != nil {
		client.SendMessage(domain.NewErrorMessage("Invalid message format"))
		return
	}

	switch base.Type {
	case domain.MsgTypeAuthenticate:
		var msg domain.AuthenticateMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage("Invalid authenticate message"))
			return
		}
		if err := h.service.HandleAuthenticate(ctx, client, msg.UserID); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str(log.FieldClientID, client.ID).Msg("authenticate failed")
		}

	case domain.MsgTypeGroupMessage:
		var msg domain.GroupMessageIn
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage("Invalid group_message"))
			return
		}
		if _, err := h.service.HandleGroupMessage(ctx, client, msg.GroupID, msg.Content); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str(log.FieldClientID, client.ID).Msg("group message failed")
		}

	default:
		client.SendMessage(domain.NewErrorMessage("Unknown message type"))
	}
}
