package service

import (
	"context"
	"errors"
	"testing"
)

func newMessageFixture() (*fakeGroupRepo, *fakeMessageRepo, MessageService) {
	groupRepo := newFakeGroupRepo()
	messageRepo := newFakeMessageRepo()
	groups := NewGroupService(groupRepo, NewMembershipIndex(groupRepo, nil, 0))
	return groupRepo, messageRepo, NewMessageService(messageRepo, groups)
}

func TestMessageService_Post(t *testing.T) {
	groupRepo, messageRepo, svc := newMessageFixture()
	groupRepo.addGroup(7, "CODE7", 1)

	t.Run("member posts a message", func(t *testing.T) {
		resp, err := svc.Post(context.Background(), 1, "alice", 7, "hello")
		if err != nil {
			t.Fatalf("Post error: %v", err)
		}
		if resp.ID == 0 || resp.Username != "alice" || resp.CreatedAt.IsZero() {
			t.Fatalf("resp = %+v", resp)
		}
		if messageRepo.count() != 1 {
			t.Fatalf("persisted %d messages, want 1", messageRepo.count())
		}
	})

	t.Run("non-member cannot post", func(t *testing.T) {
		_, err := svc.Post(context.Background(), 2, "bob", 7, "hi")
		if !errors.Is(err, ErrNotMember) {
			t.Fatalf("error = %v, want ErrNotMember", err)
		}
	})
}

func TestMessageService_ListByGroup(t *testing.T) {
	groupRepo, _, svc := newMessageFixture()
	groupRepo.addGroup(7, "CODE7", 1)

	for _, content := range []string{"first", "second", "third"} {
		if _, err := svc.Post(context.Background(), 1, "alice", 7, content); err != nil {
			t.Fatalf("Post error: %v", err)
		}
	}

	t.Run("returns history in send order", func(t *testing.T) {
		messages, err := svc.ListByGroup(context.Background(), 1, 7, 0)
		if err != nil {
			t.Fatalf("ListByGroup error: %v", err)
		}
		if len(messages) != 3 {
			t.Fatalf("len(messages) = %d, want 3", len(messages))
		}
		if messages[0].Content != "first" || messages[2].Content != "third" {
			t.Fatalf("messages out of order: %+v", messages)
		}
	})

	t.Run("honors the limit", func(t *testing.T) {
		messages, err := svc.ListByGroup(context.Background(), 1, 7, 2)
		if err != nil {
			t.Fatalf("ListByGroup error: %v", err)
		}
		if len(messages) != 2 {
			t.Fatalf("len(messages) = %d, want 2", len(messages))
		}
	})

	t.Run("non-member cannot read history", func(t *testing.T) {
		_, err := svc.ListByGroup(context.Background(), 2, 7, 0)
		if !errors.Is(err, ErrNotMember) {
			t.Fatalf("error = %v, want ErrNotMember", err)
		}
	})
}
