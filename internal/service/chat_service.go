package service

import (
	"context"
	"errors"
	"time"

	"github.com/ykwizera/studysync/internal/audit"
	"github.com/ykwizera/studysync/internal/domain"
	"github.com/ykwizera/studysync/internal/hub"
	"github.com/ykwizera/studysync/internal/repository"
	"github.com/ykwizera/studysync/pkg/log"
)

// chatServiceImpl implements ChatService: the authentication gate and
// the group-scoped fan-out dispatcher.
type chatServiceImpl struct {
	hub      *hub.Hub
	users    repository.UserRepository
	messages repository.MessageRepository
	index    *MembershipIndex
	groups   repository.GroupRepository
}

// NewChatService creates a new chat service.
func NewChatService(
	h *hub.Hub,
	users repository.UserRepository,
	messages repository.MessageRepository,
	index *MembershipIndex,
	groups repository.GroupRepository,
) ChatService {
	return &chatServiceImpl{
		hub:      h,
		users:    users,
		messages: messages,
		index:    index,
		groups:   groups,
	}
}

// HandleAuthenticate validates a claimed identity against the user store
// and admits the connection into the registry.
func (s *chatServiceImpl) HandleAuthenticate(ctx context.Context, c *hub.Client, userID int64) error {
	l := log.Ctx(ctx)

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.SendMessage(domain.NewErrorMessage("unknown user"))
			return ErrUnknownUser
		}
		l.Error().Err(err).Int64(log.FieldUserID, userID).Msg("failed to look up user for ws auth")
		c.SendMessage(domain.NewErrorMessage("authentication failed"))
		return err
	}

	s.hub.Authenticate(c, user.ID, user.Name)

	if err := c.SendMessage(&domain.AuthSuccessMessage{
		Type:    domain.MsgTypeAuthSuccess,
		Message: "authenticated",
	}); err != nil {
		return err
	}

	audit.Log(ctx, audit.ActionWSAuth, user.ID, "websocket connection authenticated")
	s.broadcastPresence(ctx, user.ID, user.Name, domain.StatusOnline)
	return nil
}

// HandleGroupMessage dispatches a group message from an authenticated,
// member connection to every live connection of current members. The
// member set is snapshotted once per dispatch.
func (s *chatServiceImpl) HandleGroupMessage(ctx context.Context, c *hub.Client, groupID int64, content string) (*domain.MessageResponse, error) {
	l := log.Ctx(ctx)

	if !c.Session.IsAuthenticated() {
		c.SendMessage(domain.NewErrorMessage("authentication required"))
		return nil, ErrUnauthenticated
	}

	senderID := c.Session.GetUserID()
	senderName := c.Session.GetUsername()

	members, err := s.index.MembersOf(ctx, groupID)
	if err != nil {
		l.Error().Err(err).Int64(log.FieldGroupID, groupID).Msg("failed to resolve member set")
		c.SendMessage(domain.NewErrorMessage("failed to send message"))
		return nil, err
	}

	if _, ok := members[senderID]; !ok {
		c.SendMessage(domain.NewErrorMessage("not a member of this group"))
		return nil, ErrNotMember
	}

	message := &domain.Message{
		GroupID:   groupID,
		UserID:    senderID,
		Username:  senderName,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	// Persistence and broadcast fail independently: a store failure is
	// surfaced to the sender but live recipients still get the event.
	if err := s.messages.Create(ctx, message); err != nil {
		l.Error().Err(err).Int64(log.FieldGroupID, groupID).Msg("failed to persist message, broadcasting anyway")
		c.SendMessage(domain.NewErrorMessage("message delivered but not saved"))
	}

	resp := message.ToResponse()
	s.deliverToMembers(members, &resp)

	audit.Log(ctx, audit.ActionWSMessage, senderID, "group message dispatched")
	return &resp, nil
}

// HandleDisconnect removes the connection and, when it carried an
// identity, broadcasts a single offline notice. Safe to call more than
// once per connection.
func (s *chatServiceImpl) HandleDisconnect(ctx context.Context, c *hub.Client) {
	userID := c.Session.GetUserID()
	username := c.Session.GetUsername()

	if !s.hub.Remove(c) {
		return
	}

	s.broadcastPresence(ctx, userID, username, domain.StatusOffline)
}

// BroadcastMessage fans out an already-persisted message, for the HTTP
// post path.
func (s *chatServiceImpl) BroadcastMessage(ctx context.Context, msg *domain.MessageResponse) error {
	members, err := s.index.MembersOf(ctx, msg.GroupID)
	if err != nil {
		return err
	}
	s.deliverToMembers(members, msg)
	return nil
}

func (s *chatServiceImpl) deliverToMembers(members map[int64]struct{}, msg *domain.MessageResponse) {
	recipients := s.hub.FindByUserIDs(members)
	s.hub.Deliver(recipients, &domain.NewMessageEvent{
		Type:    domain.MsgTypeNewMessage,
		Message: *msg,
	})
}

// broadcastPresence notifies connections of users who share at least one
// group with the subject, plus the subject's own connections.
func (s *chatServiceImpl) broadcastPresence(ctx context.Context, userID int64, username, status string) {
	l := log.Ctx(ctx)

	groupIDs, err := s.groups.GroupIDsOf(ctx, userID)
	if err != nil {
		l.Warn().Err(err).Int64(log.FieldUserID, userID).Msg("failed to resolve groups for presence broadcast")
		return
	}

	audience := map[int64]struct{}{userID: {}}
	for _, groupID := range groupIDs {
		members, err := s.index.MembersOf(ctx, groupID)
		if err != nil {
			l.Warn().Err(err).Int64(log.FieldGroupID, groupID).Msg("failed to resolve member set for presence broadcast")
			continue
		}
		for id := range members {
			audience[id] = struct{}{}
		}
	}

	recipients := s.hub.FindByUserIDs(audience)
	s.hub.Deliver(recipients, domain.NewUserStatusMessage(userID, username, status))
}
