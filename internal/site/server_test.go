package site_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"boardshelf/internal/logging"
	"boardshelf/internal/site"
)

func TestServerServesWorkspaceWithNoCacheHeaders(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "collection.csv"), []byte("original_line\nAzul\n"), 0o644); err != nil {
		t.Fatalf("seed workspace: %v", err)
	}

	srv := site.New("127.0.0.1:0", dir, logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer srv.Stop()

	resp, err := http.Get(fmt.Sprintf("http://%s/collection.csv", srv.Addr()))
	if err != nil {
		t.Fatalf("GET returned error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Cache-Control"); got != "no-cache, no-store, must-revalidate" {
		t.Fatalf("Cache-Control = %q", got)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil || string(body) != "original_line\nAzul\n" {
		t.Fatalf("body = (%q, %v)", body, err)
	}
}

func TestServerMissingFileReturns404(t *testing.T) {
	srv := site.New("127.0.0.1:0", t.TempDir(), logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer srv.Stop()

	resp, err := http.Get(fmt.Sprintf("http://%s/absent.png", srv.Addr()))
	if err != nil {
		t.Fatalf("GET returned error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}
