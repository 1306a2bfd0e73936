package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/ykwizera/studysync/internal/audit"
	"github.com/ykwizera/studysync/internal/domain"
	"github.com/ykwizera/studysync/internal/repository"
	"github.com/ykwizera/studysync/pkg/log"
	"github.com/ykwizera/studysync/pkg/storage"
)

const downloadURLExpiry = 15 * time.Minute

// materialServiceImpl implements MaterialService interface.
type materialServiceImpl struct {
	repo   repository.MaterialRepository
	store  storage.Storage
	groups GroupService
}

// NewMaterialService creates a new material service.
func NewMaterialService(repo repository.MaterialRepository, store storage.Storage, groups GroupService) MaterialService {
	return &materialServiceImpl{
		repo:   repo,
		store:  store,
		groups: groups,
	}
}

// Upload stores the file content and records its metadata; membership
// gated. The content is written before the metadata row so a failed
// write never leaves a dangling record.
func (s *materialServiceImpl) Upload(ctx context.Context, userID, groupID int64, in *domain.UploadMaterialInput, r io.Reader) (*domain.MaterialResponse, error) {
	l := log.Ctx(ctx)

	if err := s.groups.RequireMember(ctx, userID, groupID); err != nil {
		return nil, err
	}

	category := in.Category
	if category == "" {
		category = domain.DefaultMaterialCategory
	}

	key := fmt.Sprintf("groups/%d/%s", groupID, uuid.New().String())
	if err := s.store.Write(ctx, key, r, in.Size, in.ContentType); err != nil {
		l.Error().Err(err).Int64(log.FieldGroupID, groupID).Msg("failed to write material content")
		return nil, err
	}

	material := &domain.StudyMaterial{
		GroupID:     groupID,
		UploaderID:  userID,
		FileName:    in.FileName,
		ContentType: in.ContentType,
		Size:        in.Size,
		Description: in.Description,
		Category:    category,
		StorageKey:  key,
	}
	if err := s.repo.Create(ctx, material); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			l.Warn().Err(delErr).Str("storage_key", key).Msg("failed to clean up orphaned content")
		}
		return nil, err
	}

	audit.LogWithDetail(ctx, audit.ActionUploadFile, userID, in.FileName, "study material uploaded")

	resp := material.ToResponse()
	return &resp, nil
}

// ListByGroup lists a group's materials; membership gated.
func (s *materialServiceImpl) ListByGroup(ctx context.Context, userID, groupID int64) ([]domain.MaterialResponse, error) {
	l := log.Ctx(ctx)

	if err := s.groups.RequireMember(ctx, userID, groupID); err != nil {
		return nil, err
	}

	materials, err := s.repo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.MaterialResponse, len(materials))
	for i, material := range materials {
		responses[i] = material.ToResponse()
		url, err := s.store.GetURL(ctx, material.StorageKey, downloadURLExpiry)
		if err != nil {
			l.Warn().Err(err).Str("storage_key", material.StorageKey).Msg("failed to build material url")
			continue
		}
		responses[i].URL = url
	}
	return responses, nil
}

// Download opens the file content; membership gated. The material must
// belong to the requested group, cross-group access is NotFound.
func (s *materialServiceImpl) Download(ctx context.Context, userID, groupID, materialID int64) (*domain.MaterialResponse, io.ReadCloser, error) {
	if err := s.groups.RequireMember(ctx, userID, groupID); err != nil {
		return nil, nil, err
	}

	material, err := s.repo.GetByID(ctx, materialID)
	if err != nil {
		if errors.Is(err, repository.ErrMaterialNotFound) {
			return nil, nil, ErrMaterialNotFound
		}
		return nil, nil, err
	}
	if material.GroupID != groupID {
		return nil, nil, ErrMaterialNotFound
	}

	rc, err := s.store.Read(ctx, material.StorageKey)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("storage_key", material.StorageKey).Msg("failed to open material content")
		return nil, nil, err
	}

	resp := material.ToResponse()
	return &resp, rc, nil
}

// Delete removes a material's metadata and content; membership gated.
func (s *materialServiceImpl) Delete(ctx context.Context, userID, groupID, materialID int64) error {
	l := log.Ctx(ctx)

	if err := s.groups.RequireMember(ctx, userID, groupID); err != nil {
		return err
	}

	material, err := s.repo.GetByID(ctx, materialID)
	if err != nil {
		if errors.Is(err, repository.ErrMaterialNotFound) {
			return ErrMaterialNotFound
		}
		return err
	}
	if material.GroupID != groupID {
		return ErrMaterialNotFound
	}

	if err := s.repo.Delete(ctx, materialID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, material.StorageKey); err != nil {
		l.Warn().Err(err).Str("storage_key", material.StorageKey).Msg("failed to delete material content")
	}

	audit.LogWithDetail(ctx, audit.ActionDeleteFile, userID, material.FileName, "study material deleted")
	return nil
}
