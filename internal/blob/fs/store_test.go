package fs

import (
	"context"
	"io"
	"strings"
	"testing"

	"electroplan/internal/blob"
)

func TestPutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	info, err := store.Put(ctx, "exports/p1/summary.json", strings.NewReader(`{"total":55}`), blob.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"project_id": "p1"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != int64(len(`{"total":55}`)) {
		t.Fatalf("Size = %d", info.Size)
	}
	if info.ETag == "" {
		t.Fatalf("missing etag")
	}

	got, rc, err := store.Get(ctx, "exports/p1/summary.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = rc.Close() }()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `{"total":55}` {
		t.Fatalf("payload = %q", data)
	}
	if got.ContentType != "application/json" || got.Metadata["project_id"] != "p1" {
		t.Fatalf("info = %+v", got)
	}
}

func TestPutOverwrites(t *testing.T) {
	ctx := context.Background()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Put(ctx, "a.txt", strings.NewReader("one"), blob.PutOptions{}); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if _, err := store.Put(ctx, "a.txt", strings.NewReader("two"), blob.PutOptions{}); err != nil {
		t.Fatalf("second put: %v", err)
	}
	_, rc, err := store.Get(ctx, "a.txt")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = rc.Close() }()
	data, _ := io.ReadAll(rc)
	if string(data) != "two" {
		t.Fatalf("payload = %q, want overwrite", data)
	}
}

func TestRejectsTraversalKeys(t *testing.T) {
	ctx := context.Background()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for _, key := range []string{"", "  ", "../escape", "/abs/path", "a/../../b"} {
		if _, err := store.Put(ctx, key, strings.NewReader("x"), blob.PutOptions{}); err == nil {
			t.Errorf("key %q accepted", key)
		}
	}
}

func TestListFiltersByPrefix(t *testing.T) {
	ctx := context.Background()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for _, key := range []string{"exports/p1/a.json", "exports/p2/b.json", "audit/log.json"} {
		if _, err := store.Put(ctx, key, strings.NewReader("{}"), blob.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	infos, err := store.List(ctx, "exports/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("list returned %d entries: %+v", len(infos), infos)
	}
	if infos[0].Key != "exports/p1/a.json" || infos[1].Key != "exports/p2/b.json" {
		t.Fatalf("unexpected order: %+v", infos)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Put(ctx, "a.txt", strings.NewReader("x"), blob.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	ok, err := store.Delete(ctx, "a.txt")
	if err != nil || !ok {
		t.Fatalf("delete = %v, %v", ok, err)
	}
	ok, err = store.Delete(ctx, "a.txt")
	if err != nil || ok {
		t.Fatalf("second delete = %v, %v, want false", ok, err)
	}
	if _, _, err := store.Get(ctx, "a.txt"); err == nil {
		t.Fatalf("get after delete succeeded")
	}
}
