package service

import (
	"context"

	"github.com/ykwizera/studysync/internal/domain"
	"github.com/ykwizera/studysync/internal/repository"
	"github.com/ykwizera/studysync/pkg/log"
)

// messageServiceImpl implements MessageService interface.
type messageServiceImpl struct {
	repo   repository.MessageRepository
	groups GroupService
}

// NewMessageService creates a new message service.
func NewMessageService(repo repository.MessageRepository, groups GroupService) MessageService {
	return &messageServiceImpl{
		repo:   repo,
		groups: groups,
	}
}

// ListByGroup lists a group's message history in send order; membership
// gated.
func (s *messageServiceImpl) ListByGroup(ctx context.Context, userID, groupID int64, limit int) ([]domain.MessageResponse, error) {
	if err := s.groups.RequireMember(ctx, userID, groupID); err != nil {
		return nil, err
	}

	messages, err := s.repo.ListByGroup(ctx, groupID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.MessageResponse, len(messages))
	for i, message := range messages {
		responses[i] = message.ToResponse()
	}
	return responses, nil
}

// Post persists a message from the HTTP path; membership gated.
func (s *messageServiceImpl) Post(ctx context.Context, userID int64, username string, groupID int64, content string) (*domain.MessageResponse, error) {
	l := log.Ctx(ctx)

	if err := s.groups.RequireMember(ctx, userID, groupID); err != nil {
		return nil, err
	}

	message := &domain.Message{
		GroupID:  groupID,
		UserID:   userID,
		Username: username,
		Content:  content,
	}
	if err := s.repo.Create(ctx, message); err != nil {
		l.Error().Err(err).Int64(log.FieldGroupID, groupID).Msg("failed to persist message")
		return nil, err
	}

	resp := message.ToResponse()
	return &resp, nil
}
