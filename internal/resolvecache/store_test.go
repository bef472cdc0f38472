package resolvecache_test

import (
	"context"
	"path/filepath"
	"testing"

	"boardshelf/internal/collection"
	"boardshelf/internal/resolvecache"
)

func openStore(t *testing.T) *resolvecache.Store {
	t.Helper()
	store, err := resolvecache.Open(filepath.Join(t.TempDir(), "resolutions.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestGetMissReturnsFalse(t *testing.T) {
	store := openStore(t)
	_, ok, err := store.Get(context.Background(), "never seen")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if ok {
		t.Fatal("expected cache miss")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	res := &resolvecache.Resolution{
		OriginalLine: "3. Brass Birmingham # heavy",
		GameName:     "Brass Birmingham",
		BGGID:        "224517",
		MatchedName:  "Brass: Birmingham",
		Year:         "2018",
		Status:       "Found via search",
		Confidence:   collection.ConfidenceMedium,
	}
	if err := store.Put(ctx, res); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, ok, err := store.Get(ctx, res.OriginalLine)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.BGGID != "224517" || got.MatchedName != "Brass: Birmingham" || got.Confidence != collection.ConfidenceMedium {
		t.Fatalf("unexpected resolution %#v", got)
	}
	if got.ResolvedAt.IsZero() {
		t.Fatal("expected resolved_at to be recorded")
	}
}

func TestPutReplacesExisting(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	line := "Some Game"
	if err := store.Put(ctx, &resolvecache.Resolution{OriginalLine: line, Status: "Not found", Confidence: collection.ConfidenceNone}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := store.Put(ctx, &resolvecache.Resolution{OriginalLine: line, BGGID: "42", Status: "Found via search", Confidence: collection.ConfidenceHigh}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, ok, err := store.Get(ctx, line)
	if err != nil || !ok {
		t.Fatalf("Get = (%v, %v)", ok, err)
	}
	if got.BGGID != "42" || got.Confidence != collection.ConfidenceHigh {
		t.Fatalf("expected replacement, got %#v", got)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count returned error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected single row after upsert, got %d", count)
	}
}

func TestPutRequiresOriginalLine(t *testing.T) {
	store := openStore(t)
	if err := store.Put(context.Background(), &resolvecache.Resolution{}); err == nil {
		t.Fatal("expected error for empty original line")
	}
}

func TestOpenReusesExistingDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resolutions.db")
	first, err := resolvecache.Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := first.Put(context.Background(), &resolvecache.Resolution{OriginalLine: "x", Status: "Not found"}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	second, err := resolvecache.Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer second.Close()
	_, ok, err := second.Get(context.Background(), "x")
	if err != nil || !ok {
		t.Fatalf("expected persisted row after reopen, got (%v, %v)", ok, err)
	}
}
