package hub

import (
	"encoding/json"
	"sync"

	"github.com/ykwizera/studysync/internal/config"
	"github.com/ykwizera/studysync/pkg/log"
)

// Hub is the connection registry: it tracks live connections and the
// authenticated identity attached to each. A single user may hold any
// number of concurrent connections (tabs, devices).
type Hub struct {
	clients map[string]*Client           // clientID -> client
	byUser  map[int64]map[string]*Client // userID -> clientID -> client
	mu      sync.RWMutex
	config  config.WebSocketConfig
}

func NewHub(cfg config.WebSocketConfig) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		byUser:  make(map[int64]map[string]*Client),
		config:  cfg,
	}
}

// Register adds an unauthenticated connection to the registry.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()
	log.L().Debug().Str(log.FieldClientID, client.ID).Msg("client registered")
}

// Authenticate attaches an identity to a registered connection and
// indexes it by user. Re-authenticating moves the connection to the new
// identity (last write wins).
func (h *Hub) Authenticate(client *Client, userID int64, username string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client.Session.IsAuthenticated() {
		prev := client.Session.GetUserID()
		if conns, ok := h.byUser[prev]; ok {
			delete(conns, client.ID)
			if len(conns) == 0 {
				delete(h.byUser, prev)
			}
		}
	}

	client.Session.Authenticate(userID, username)

	if _, ok := h.byUser[userID]; !ok {
		h.byUser[userID] = make(map[string]*Client)
	}
	h.byUser[userID][client.ID] = client

	log.L().Info().
		Str(log.FieldClientID, client.ID).
		Int64(log.FieldUserID, userID).
		Msg("client authenticated")
}

// Remove deletes a connection from the registry. It reports whether the
// connection was still registered with an identity attached, so the
// caller can broadcast a single offline presence notice. Removing an
// already-removed connection is a no-op returning false.
func (h *Hub) Remove(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return false
	}
	delete(h.clients, client.ID)
	client.closeSend()

	hadIdentity := client.Session.IsAuthenticated()
	if hadIdentity {
		userID := client.Session.GetUserID()
		if conns, ok := h.byUser[userID]; ok {
			delete(conns, client.ID)
			if len(conns) == 0 {
				delete(h.byUser, userID)
			}
		}
	}

	log.L().Debug().Str(log.FieldClientID, client.ID).Msg("client unregistered")
	return hadIdentity
}

// FindByUserIDs returns every registered connection whose identity is in
// the given set. All connections of a matching user are returned.
func (h *Hub) FindByUserIDs(userIDs map[int64]struct{}) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var found []*Client
	for userID := range userIDs {
		for _, client := range h.byUser[userID] {
			found = append(found, client)
		}
	}
	return found
}

// ClientCount returns the number of registered connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Deliver serializes the event once and sends it to every recipient.
// A slow or dead recipient is skipped, never blocking the rest.
func (h *Hub) Deliver(recipients []*Client, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	for _, client := range recipients {
		client.SendRaw(data)
	}
	return nil
}
