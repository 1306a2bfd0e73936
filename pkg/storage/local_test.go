package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newLocalStore(t *testing.T) *LocalStorage {
	t.Helper()
	store, err := NewLocalStorage(LocalConfig{BasePath: t.TempDir()})
	if err != nil {
		t.Fatalf("NewLocalStorage error: %v", err)
	}
	return store
}

func TestLocalStorage_WriteReadDelete(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()
	key := "groups/7/notes.txt"

	if err := store.Write(ctx, key, strings.NewReader("chapter one"), 11, "text/plain"); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	exists, err := store.Exists(ctx, key)
	if err != nil || !exists {
		t.Fatalf("Exists = %v, %v; want true", exists, err)
	}

	rc, err := store.Read(ctx, key)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	content, err := io.ReadAll(rc)
	rc.Close()
	if err != nil || string(content) != "chapter one" {
		t.Fatalf("content = %q, err = %v", content, err)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if exists, _ := store.Exists(ctx, key); exists {
		t.Fatal("file still exists after delete")
	}
}

func TestLocalStorage_WriteOverwrites(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()
	key := "groups/7/notes.txt"

	for _, content := range []string{"first", "second"} {
		if err := store.Write(ctx, key, strings.NewReader(content), int64(len(content)), "text/plain"); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}

	rc, err := store.Read(ctx, key)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	defer rc.Close()
	content, _ := io.ReadAll(rc)
	if string(content) != "second" {
		t.Fatalf("content = %q, want second", content)
	}
}

func TestLocalStorage_DeleteMissingIsNoop(t *testing.T) {
	store := newLocalStore(t)
	if err := store.Delete(context.Background(), "nope.txt"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestLocalStorage_DeletePrefix(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	for _, key := range []string{"groups/7/a.txt", "groups/7/b.txt", "groups/8/c.txt"} {
		if err := store.Write(ctx, key, strings.NewReader("x"), 1, "text/plain"); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}

	if err := store.DeletePrefix(ctx, "groups/7"); err != nil {
		t.Fatalf("DeletePrefix error: %v", err)
	}

	if exists, _ := store.Exists(ctx, "groups/7/a.txt"); exists {
		t.Fatal("groups/7/a.txt survived DeletePrefix")
	}
	if exists, _ := store.Exists(ctx, "groups/8/c.txt"); !exists {
		t.Fatal("groups/8/c.txt deleted by unrelated prefix")
	}
}

func TestLocalStorage_TraversalKeysStayInside(t *testing.T) {
	store := newLocalStore(t)
	ctx := context.Background()

	outside := filepath.Join(filepath.Dir(store.GetBasePath()), "escape.txt")
	os.Remove(outside)

	// The write may fail outright; it must never land outside the base path.
	store.Write(ctx, "../escape.txt", strings.NewReader("x"), 1, "text/plain")

	if _, err := os.Stat(outside); err == nil {
		t.Fatal("traversal key escaped the base path")
	}
}
