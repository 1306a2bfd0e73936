package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ykwizera/studysync/internal/domain"
	"github.com/ykwizera/studysync/pkg/storage"
)

type materialFixture struct {
	users     *fakeUserRepo
	groups    *fakeGroupRepo
	materials *fakeMaterialRepo
	svc       MaterialService
}

func newMaterialFixture(t *testing.T) *materialFixture {
	t.Helper()
	users := newFakeUserRepo()
	groupRepo := newFakeGroupRepo()
	materialRepo := newFakeMaterialRepo(users)
	store, err := storage.NewLocalStorage(storage.LocalConfig{BasePath: t.TempDir()})
	if err != nil {
		t.Fatalf("NewLocalStorage error: %v", err)
	}
	groupSvc := NewGroupService(groupRepo, NewMembershipIndex(groupRepo, nil, 0))
	return &materialFixture{
		users:     users,
		groups:    groupRepo,
		materials: materialRepo,
		svc:       NewMaterialService(materialRepo, store, groupSvc),
	}
}

func (f *materialFixture) upload(t *testing.T, userID, groupID int64, in *domain.UploadMaterialInput, content string) *domain.MaterialResponse {
	t.Helper()
	resp, err := f.svc.Upload(context.Background(), userID, groupID, in, strings.NewReader(content))
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	return resp
}

func TestMaterialService_Upload(t *testing.T) {
	f := newMaterialFixture(t)
	f.users.add("alice", "alice@example.com")
	f.groups.addGroup(7, "CODE7", 1, 2)

	t.Run("description and category are recorded", func(t *testing.T) {
		resp := f.upload(t, 1, 7, &domain.UploadMaterialInput{
			FileName:    "notes.pdf",
			ContentType: "application/pdf",
			Size:        5,
			Description: "week 3 lecture notes",
			Category:    "lecture",
		}, "hello")

		if resp.Description != "week 3 lecture notes" || resp.Category != "lecture" {
			t.Fatalf("resp = %+v, want description and category kept", resp)
		}

		stored, err := f.materials.GetByID(context.Background(), resp.ID)
		if err != nil {
			t.Fatalf("GetByID error: %v", err)
		}
		if stored.Description != "week 3 lecture notes" || stored.Category != "lecture" {
			t.Fatalf("stored = %+v, want description and category persisted", stored)
		}
	})

	t.Run("empty category defaults to other", func(t *testing.T) {
		resp := f.upload(t, 1, 7, &domain.UploadMaterialInput{
			FileName: "misc.txt",
			Size:     4,
		}, "misc")
		if resp.Category != domain.DefaultMaterialCategory {
			t.Fatalf("category = %q, want %q", resp.Category, domain.DefaultMaterialCategory)
		}
	})

	t.Run("non-member cannot upload", func(t *testing.T) {
		_, err := f.svc.Upload(context.Background(), 3, 7, &domain.UploadMaterialInput{
			FileName: "sneaky.txt",
			Size:     1,
		}, strings.NewReader("x"))
		if !errors.Is(err, ErrNotMember) {
			t.Fatalf("error = %v, want ErrNotMember", err)
		}
	})
}

func TestMaterialService_ListByGroup(t *testing.T) {
	f := newMaterialFixture(t)
	f.users.add("alice", "alice@example.com")
	f.groups.addGroup(7, "CODE7", 1, 2)

	f.upload(t, 1, 7, &domain.UploadMaterialInput{
		FileName: "notes.pdf",
		Size:     5,
		Category: "lecture",
	}, "hello")

	t.Run("uploader name attached", func(t *testing.T) {
		materials, err := f.svc.ListByGroup(context.Background(), 2, 7)
		if err != nil {
			t.Fatalf("ListByGroup error: %v", err)
		}
		if len(materials) != 1 {
			t.Fatalf("len(materials) = %d, want 1", len(materials))
		}
		m := materials[0]
		if m.UploaderID != 1 || m.UploaderName != "alice" {
			t.Fatalf("material = %+v, want uploader info attached", m)
		}
		if m.Category != "lecture" {
			t.Errorf("category = %q, want lecture", m.Category)
		}
	})

	t.Run("non-member rejected", func(t *testing.T) {
		if _, err := f.svc.ListByGroup(context.Background(), 3, 7); !errors.Is(err, ErrNotMember) {
			t.Fatalf("error = %v, want ErrNotMember", err)
		}
	})
}

func TestMaterialService_DownloadAndDelete(t *testing.T) {
	f := newMaterialFixture(t)
	f.users.add("alice", "alice@example.com")
	f.groups.addGroup(7, "CODE7", 1)
	f.groups.addGroup(8, "CODE8", 1)

	resp := f.upload(t, 1, 7, &domain.UploadMaterialInput{
		FileName: "notes.pdf",
		Size:     5,
	}, "hello")

	t.Run("download streams stored content", func(t *testing.T) {
		material, rc, err := f.svc.Download(context.Background(), 1, 7, resp.ID)
		if err != nil {
			t.Fatalf("Download error: %v", err)
		}
		defer rc.Close()
		body, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("ReadAll error: %v", err)
		}
		if string(body) != "hello" || material.FileName != "notes.pdf" {
			t.Fatalf("body = %q, material = %+v", body, material)
		}
	})

	t.Run("cross-group access is not found", func(t *testing.T) {
		if _, _, err := f.svc.Download(context.Background(), 1, 8, resp.ID); !errors.Is(err, ErrMaterialNotFound) {
			t.Fatalf("error = %v, want ErrMaterialNotFound", err)
		}
	})

	t.Run("delete removes metadata", func(t *testing.T) {
		if err := f.svc.Delete(context.Background(), 1, 7, resp.ID); err != nil {
			t.Fatalf("Delete error: %v", err)
		}
		if _, _, err := f.svc.Download(context.Background(), 1, 7, resp.ID); !errors.Is(err, ErrMaterialNotFound) {
			t.Fatalf("error = %v, want ErrMaterialNotFound after delete", err)
		}
	})
}
