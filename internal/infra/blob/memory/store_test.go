package memory

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"coachtrack/internal/blob/core"
)

func TestPutGetDeleteRoundTrip(t *testing.T) {
	store := New()
	ctx := context.Background()

	info, err := store.Put(ctx, "k", strings.NewReader("payload"), core.PutOptions{ContentType: "text/plain"})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if info.Size != 7 || info.ContentType != "text/plain" {
		t.Fatalf("unexpected info: %+v", info)
	}
	if _, err := store.Put(ctx, "k", strings.NewReader("again"), core.PutOptions{}); err == nil {
		t.Fatalf("duplicate key must be rejected")
	}

	_, rc, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	rc.Close()
	if string(body) != "payload" {
		t.Fatalf("unexpected body %q", body)
	}

	if _, err := store.Head(ctx, "k"); err != nil {
		t.Fatalf("Head: %v", err)
	}
	deleted, err := store.Delete(ctx, "k")
	if err != nil || !deleted {
		t.Fatalf("Delete: deleted=%v err=%v", deleted, err)
	}
	if deleted, _ := store.Delete(ctx, "k"); deleted {
		t.Fatalf("second delete must report false")
	}
	if _, _, err := store.Get(ctx, "k"); err == nil {
		t.Fatalf("Get must fail after delete")
	}
}

func TestListByPrefixSortsKeys(t *testing.T) {
	store := New()
	ctx := context.Background()
	for _, key := range []string{"b/2", "a/1", "b/1"} {
		if _, err := store.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err != nil {
			t.Fatalf("Put %s: %v", key, err)
		}
	}
	infos, err := store.List(ctx, "b/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 2 || infos[0].Key != "b/1" || infos[1].Key != "b/2" {
		t.Fatalf("unexpected listing: %+v", infos)
	}
}

func TestMetadataIsolation(t *testing.T) {
	store := New()
	ctx := context.Background()
	md := map[string]string{"a": "1"}
	if _, err := store.Put(ctx, "k", strings.NewReader("x"), core.PutOptions{Metadata: md}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	md["a"] = "mutated"

	info, err := store.Head(ctx, "k")
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if info.Metadata["a"] != "1" {
		t.Fatalf("stored metadata must be isolated from the caller's map, got %q", info.Metadata["a"])
	}
	info.Metadata["a"] = "mutated again"
	again, _ := store.Head(ctx, "k")
	if again.Metadata["a"] != "1" {
		t.Fatalf("returned metadata must be a copy, got %q", again.Metadata["a"])
	}
}

func TestPresignUnsupported(t *testing.T) {
	store := New()
	if _, err := store.PresignURL(context.Background(), "k", core.SignedURLOptions{}); !errors.Is(err, core.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}
