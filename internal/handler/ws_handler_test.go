package handler

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ykwizera/studysync/internal/config"
	"github.com/ykwizera/studysync/internal/domain"
	"github.com/ykwizera/studysync/internal/hub"
	"github.com/ykwizera/studysync/pkg/log"
)

// capturingChatService records the context each dispatch runs under.
type capturingChatService struct {
	lastCtx context.Context
}

func (s *capturingChatService) HandleAuthenticate(ctx context.Context, c *hub.Client, userID int64) error {
	s.lastCtx = ctx
	return nil
}

func (s *capturingChatService) HandleGroupMessage(ctx context.Context, c *hub.Client, groupID int64, content string) (*domain.MessageResponse, error) {
	s.lastCtx = ctx
	return &domain.MessageResponse{}, nil
}

func (s *capturingChatService) HandleDisconnect(ctx context.Context, c *hub.Client) {
	s.lastCtx = ctx
}

func (s *capturingChatService) BroadcastMessage(ctx context.Context, msg *domain.MessageResponse) error {
	s.lastCtx = ctx
	return nil
}

func TestWSHandler_DispatchKeepsRequestContextValues(t *testing.T) {
	wsCfg := config.WebSocketConfig{MaxMessageSize: 4096}
	svc := &capturingChatService{}
	h := NewWSHandler(hub.NewHub(wsCfg), svc, wsCfg)
	client := hub.NewClient("c1", nil, nil, wsCfg)

	reqLogger := zerolog.New(nil).Level(zerolog.Disabled).With().Str(log.FieldRequestID, "req-1").Logger()
	reqCtx, cancel := context.WithCancel(log.WithLogger(context.Background(), reqLogger))
	connCtx := context.WithoutCancel(reqCtx)
	cancel()

	h.handleMessage(connCtx, client, []byte(`{"type":"authenticate","userId":1}`))

	if svc.lastCtx == nil {
		t.Fatal("service never dispatched")
	}
	if err := svc.lastCtx.Err(); err != nil {
		t.Fatalf("dispatch context cancelled with request: %v", err)
	}
	if got := log.Ctx(svc.lastCtx); got.GetLevel() != zerolog.Disabled {
		t.Fatal("dispatch context lost its logger")
	}

	h.handleDisconnect(connCtx, client)
	if err := svc.lastCtx.Err(); err != nil {
		t.Fatalf("disconnect context cancelled with request: %v", err)
	}
}
