package resolve_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"boardshelf/internal/bgg"
	"boardshelf/internal/collection"
	"boardshelf/internal/logging"
	"boardshelf/internal/resolve"
	"boardshelf/internal/resolvecache"
)

type fakeAPI struct {
	searchResults []bgg.SearchResult
	searchErr     error
	searchCalls   int
	thing         *bgg.Thing
	thingErr      error
	thingCalls    int
}

func (f *fakeAPI) Search(ctx context.Context, query string) ([]bgg.SearchResult, error) {
	f.searchCalls++
	return f.searchResults, f.searchErr
}

func (f *fakeAPI) Thing(ctx context.Context, id int64) (*bgg.Thing, error) {
	f.thingCalls++
	return f.thing, f.thingErr
}

func (f *fakeAPI) Download(ctx context.Context, rawURL string) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func newCache(t *testing.T) *resolvecache.Store {
	t.Helper()
	store, err := resolvecache.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestResolveURLLineSkipsSearch(t *testing.T) {
	api := &fakeAPI{thing: &bgg.Thing{ID: 174430, PrimaryName: "Gloomhaven", Year: "2017"}}
	resolver := resolve.NewResolver(api, newCache(t), logging.NewNop())

	res, cached, err := resolver.Resolve(context.Background(), "https://boardgamegeek.com/boardgame/174430/gloomhaven")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if cached {
		t.Fatal("first resolution should not be cached")
	}
	if api.searchCalls != 0 {
		t.Fatalf("url line triggered %d search calls", api.searchCalls)
	}
	if res.BGGID != "174430" || res.Status != resolve.StatusFoundFromURL || res.Confidence != collection.ConfidenceHigh {
		t.Fatalf("unexpected resolution %#v", res)
	}
	if res.MatchedName != "Gloomhaven" || res.Year != "2017" {
		t.Fatalf("thing data not carried over: %#v", res)
	}
}

func TestResolveInvalidURLIDRecordedAsData(t *testing.T) {
	api := &fakeAPI{thingErr: bgg.ErrNotFound}
	resolver := resolve.NewResolver(api, newCache(t), logging.NewNop())

	res, _, err := resolver.Resolve(context.Background(), "https://boardgamegeek.com/boardgame/999999999/ghost-game")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if res.BGGID != collection.SentinelInvalidID || res.Status != resolve.StatusInvalidURLID {
		t.Fatalf("unexpected resolution %#v", res)
	}
	if res.Confidence != collection.ConfidenceNone {
		t.Fatalf("confidence = %s, want None", res.Confidence)
	}
	if res.GameName != "ghost game" {
		t.Fatalf("game name = %q, want slug-derived name", res.GameName)
	}
}

func TestResolveSecondCallAnswersFromCache(t *testing.T) {
	api := &fakeAPI{searchResults: []bgg.SearchResult{{ID: 13, Name: "Catan", Year: "1995"}}}
	resolver := resolve.NewResolver(api, newCache(t), logging.NewNop())
	ctx := context.Background()

	first, cached, err := resolver.Resolve(ctx, "Catan")
	if err != nil || cached {
		t.Fatalf("first Resolve = (cached=%v, err=%v)", cached, err)
	}

	second, cached, err := resolver.Resolve(ctx, "Catan")
	if err != nil {
		t.Fatalf("second Resolve returned error: %v", err)
	}
	if !cached {
		t.Fatal("second resolution should come from the cache")
	}
	if api.searchCalls != 1 {
		t.Fatalf("search called %d times, want 1", api.searchCalls)
	}
	if second.BGGID != first.BGGID || second.Status != first.Status {
		t.Fatalf("cached resolution diverged: %#v vs %#v", second, first)
	}
}

func TestResolveSearchFailureRecordedAsData(t *testing.T) {
	api := &fakeAPI{searchErr: errors.New("tls handshake failed")}
	resolver := resolve.NewResolver(api, newCache(t), logging.NewNop())

	res, _, err := resolver.Resolve(context.Background(), "Everdell")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if res.BGGID != collection.SentinelNoBGGID || res.Status != resolve.StatusSearchFailed {
		t.Fatalf("unexpected resolution %#v", res)
	}
}

func TestResolveSearchFailureNotCached(t *testing.T) {
	api := &fakeAPI{searchErr: errors.New("connection refused")}
	resolver := resolve.NewResolver(api, newCache(t), logging.NewNop())
	ctx := context.Background()

	first, _, err := resolver.Resolve(ctx, "Everdell")
	if err != nil || first.Status != resolve.StatusSearchFailed {
		t.Fatalf("first Resolve = (%#v, %v)", first, err)
	}

	// The outage ends; the next run must reach the network again.
	api.searchErr = nil
	api.searchResults = []bgg.SearchResult{{ID: 199792, Name: "Everdell", Year: "2018"}}

	second, cached, err := resolver.Resolve(ctx, "Everdell")
	if err != nil {
		t.Fatalf("second Resolve returned error: %v", err)
	}
	if cached {
		t.Fatal("failed resolution must not be served from the cache")
	}
	if api.searchCalls != 2 {
		t.Fatalf("search called %d times, want 2", api.searchCalls)
	}
	if second.BGGID != "199792" || second.Status != resolve.StatusFoundViaSearch {
		t.Fatalf("recovery resolution %#v", second)
	}
}

func TestResolveNoResults(t *testing.T) {
	api := &fakeAPI{}
	resolver := resolve.NewResolver(api, newCache(t), logging.NewNop())

	res, _, err := resolver.Resolve(context.Background(), "Totally Made Up Game")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if res.Status != resolve.StatusNotFound || res.BGGID != collection.SentinelNoBGGID {
		t.Fatalf("unexpected resolution %#v", res)
	}
}

func TestResolveEmptyNameNeverHitsNetwork(t *testing.T) {
	api := &fakeAPI{}
	resolver := resolve.NewResolver(api, newCache(t), logging.NewNop())

	res, _, err := resolver.Resolve(context.Background(), "7. ???")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if res.Status != resolve.StatusEmptyName || res.BGGID != collection.SentinelNoBGGID {
		t.Fatalf("unexpected resolution %#v", res)
	}
	if api.searchCalls != 0 || api.thingCalls != 0 {
		t.Fatalf("placeholder line hit the network: search=%d thing=%d", api.searchCalls, api.thingCalls)
	}
}
