package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/ykwizera/studysync/internal/audit"
	"github.com/ykwizera/studysync/internal/domain"
	"github.com/ykwizera/studysync/internal/repository"
	"github.com/ykwizera/studysync/pkg/log"
)

// groupServiceImpl implements GroupService interface.
type groupServiceImpl struct {
	repo  repository.GroupRepository
	index *MembershipIndex
}

// NewGroupService creates a new group service.
func NewGroupService(repo repository.GroupRepository, index *MembershipIndex) GroupService {
	return &groupServiceImpl{
		repo:  repo,
		index: index,
	}
}

// Create creates a group; the creator becomes its admin member.
func (s *groupServiceImpl) Create(ctx context.Context, userID int64, req *domain.CreateGroupRequest) (*domain.GroupResponse, error) {
	l := log.Ctx(ctx)

	code, err := newInviteCode()
	if err != nil {
		l.Error().Err(err).Msg("failed to generate invite code")
		return nil, err
	}

	group := &domain.Group{
		Name:        req.Name,
		Description: req.Description,
		Subject:     req.Subject,
		InviteCode:  code,
		CreatedBy:   userID,
	}

	if err := s.repo.Create(ctx, group); err != nil {
		l.Error().Err(err).Msg("failed to create group")
		return nil, err
	}

	audit.LogWithDetail(ctx, audit.ActionCreateGroup, userID, group.Name, "group created")

	resp := group.ToResponse()
	resp.MemberCount = 1
	return &resp, nil
}

// Get retrieves a group; membership gated.
func (s *groupServiceImpl) Get(ctx context.Context, userID, groupID int64) (*domain.GroupResponse, error) {
	if err := s.RequireMember(ctx, userID, groupID); err != nil {
		return nil, err
	}

	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	count, err := s.repo.MemberCount(ctx, groupID)
	if err != nil {
		return nil, err
	}

	resp := group.ToResponse()
	resp.MemberCount = count
	return &resp, nil
}

// ListMine retrieves the caller's groups.
func (s *groupServiceImpl) ListMine(ctx context.Context, userID int64) ([]domain.GroupResponse, error) {
	groups, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.GroupResponse, len(groups))
	for i, group := range groups {
		responses[i] = group.ToResponse()
	}
	return responses, nil
}

// Join adds the caller to the group matching the invite code.
func (s *groupServiceImpl) Join(ctx context.Context, userID int64, inviteCode string) (*domain.GroupResponse, error) {
	l := log.Ctx(ctx)

	group, err := s.repo.GetByInviteCode(ctx, strings.TrimSpace(inviteCode))
	if err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}

	member := &domain.GroupMember{
		GroupID: group.ID,
		UserID:  userID,
	}
	if err := s.repo.AddMember(ctx, member); err != nil {
		if errors.Is(err, repository.ErrDuplicateMember) {
			return nil, ErrAlreadyMember
		}
		l.Error().Err(err).Int64(log.FieldGroupID, group.ID).Msg("failed to join group")
		return nil, err
	}

	s.index.MemberAdded(ctx, group.ID, userID)
	audit.LogWithDetail(ctx, audit.ActionJoinGroup, userID, group.Name, "user joined group")

	resp := group.ToResponse()
	return &resp, nil
}

// Members lists the members of a group; membership gated.
func (s *groupServiceImpl) Members(ctx context.Context, userID, groupID int64) ([]domain.GroupMemberDetail, error) {
	if err := s.RequireMember(ctx, userID, groupID); err != nil {
		return nil, err
	}
	return s.repo.Members(ctx, groupID)
}

// RequireMember fails with ErrGroupNotFound when the group is absent and
// ErrNotMember when the caller does not belong to it.
func (s *groupServiceImpl) RequireMember(ctx context.Context, userID, groupID int64) error {
	if _, err := s.repo.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, repository.ErrGroupNotFound) {
			return ErrGroupNotFound
		}
		return err
	}

	isMember, err := s.repo.IsMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrNotMember
	}
	return nil
}

// newInviteCode generates an unguessable join token.
func newInviteCode() (string, error) {
	var buf [6]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(buf[:])), nil
}
