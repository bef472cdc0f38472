package resolve

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/antzucaro/matchr"

	"boardshelf/internal/bgg"
	"boardshelf/internal/collection"
	"boardshelf/internal/logging"
	"boardshelf/internal/resolvecache"
)

// Resolution status tags. These are row data, surfaced in the CSV for manual
// review, so the wording stays stable.
const (
	StatusFoundFromURL   = "Found from URL"
	StatusInvalidURLID   = "Invalid URL ID"
	StatusFoundViaSearch = "Found via search"
	StatusNotFound       = "Not found"
	StatusSearchFailed   = "Search failed"
	StatusEmptyName      = "Empty game name"
)

// Resolver maps one free-text line to a BGG id, consulting the cache before
// any network call.
type Resolver struct {
	api    bgg.API
	cache  *resolvecache.Store
	logger *slog.Logger
}

// NewResolver creates a resolver. The cache may be nil, in which case every
// call goes to the network.
func NewResolver(api bgg.API, cache *resolvecache.Store, logger *slog.Logger) *Resolver {
	return &Resolver{
		api:    api,
		cache:  cache,
		logger: logging.NewComponentLogger(logger, "resolver"),
	}
}

// Resolve produces the resolution for a single input line. Failures of any
// kind are recorded in the returned resolution's status, never raised; the
// only errors returned are context cancellations. The cached return reports
// whether the answer came from the cache without touching the network.
func (r *Resolver) Resolve(ctx context.Context, line string) (res *resolvecache.Resolution, cached bool, err error) {
	logger := logging.WithContext(ctx, r.logger)
	line = strings.TrimSpace(line)

	if r.cache != nil {
		hit, ok, cacheErr := r.cache.Get(ctx, line)
		if cacheErr != nil {
			logger.Warn("cache lookup failed", logging.Error(cacheErr))
		} else if ok {
			logger.Debug("cache hit", logging.String("line", line), logging.String("status", hit.Status))
			return hit, true, nil
		}
	}

	res = r.resolveLive(ctx, logger, line)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, false, ctxErr
	}

	// Transient failures stay out of the durable cache so the next run
	// retries them instead of replaying the outage.
	if r.cache != nil && res.Status != StatusSearchFailed {
		if cacheErr := r.cache.Put(ctx, res); cacheErr != nil {
			logger.Warn("cache store failed", logging.Error(cacheErr))
		}
	}
	return res, false, nil
}

func (r *Resolver) resolveLive(ctx context.Context, logger *slog.Logger, line string) *resolvecache.Resolution {
	res := &resolvecache.Resolution{OriginalLine: line, ResolvedAt: time.Now()}

	if id, ok := ExtractIDFromURL(line); ok {
		r.resolveFromURL(ctx, logger, res, id)
		return res
	}

	name := CleanName(line)
	res.GameName = name
	if name == "" {
		res.BGGID = collection.SentinelNoBGGID
		res.Status = StatusEmptyName
		res.Confidence = collection.ConfidenceNone
		logger.Info("no usable name in line", logging.String("line", line))
		return res
	}

	results, err := r.api.Search(ctx, name)
	if err != nil {
		// A run-level cancellation surfaces through Resolve; a per-request
		// timeout is just a failed search.
		if ctx.Err() != nil {
			return res
		}
		res.BGGID = collection.SentinelNoBGGID
		res.Status = StatusSearchFailed
		res.Confidence = collection.ConfidenceNone
		logger.Warn("search failed", logging.String("name", name), logging.Error(err))
		return res
	}

	match, confidence, ok := selectMatch(name, results)
	if !ok {
		res.BGGID = collection.SentinelNoBGGID
		res.Status = StatusNotFound
		res.Confidence = collection.ConfidenceNone
		logger.Info("no search results", logging.String("name", name))
		return res
	}

	res.BGGID = strconv.FormatInt(match.ID, 10)
	res.MatchedName = match.Name
	res.Year = match.Year
	res.Status = StatusFoundViaSearch
	res.Confidence = confidence

	// Similarity is logged for review only; it never influences selection.
	similarity := matchr.JaroWinkler(strings.ToLower(name), strings.ToLower(match.Name), false)
	logger.Info("match selected",
		logging.String("name", name),
		logging.String("matched_name", match.Name),
		logging.Int64("bgg_id", match.ID),
		logging.String("confidence", string(confidence)),
		logging.Float64("similarity", similarity),
		logging.Int("candidates", len(results)))

	return res
}

// resolveFromURL verifies a URL-embedded id against the thing endpoint and
// fills the resolution from the item's primary name.
func (r *Resolver) resolveFromURL(ctx context.Context, logger *slog.Logger, res *resolvecache.Resolution, id int64) {
	thing, err := r.api.Thing(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		res.GameName = CleanName(lastPathSegment(res.OriginalLine))
		res.BGGID = collection.SentinelInvalidID
		res.Status = StatusInvalidURLID
		res.Confidence = collection.ConfidenceNone
		if errors.Is(err, bgg.ErrNotFound) {
			logger.Info("url id has no item", logging.Int64("bgg_id", id))
		} else {
			logger.Warn("url id verification failed", logging.Int64("bgg_id", id), logging.Error(err))
		}
		return
	}

	name := CleanName(lastPathSegment(res.OriginalLine))
	if name == "" {
		name = thing.PrimaryName
	}
	res.GameName = name
	res.BGGID = strconv.FormatInt(id, 10)
	res.MatchedName = thing.PrimaryName
	res.Year = thing.Year
	res.Status = StatusFoundFromURL
	res.Confidence = collection.ConfidenceHigh
	logger.Info("id extracted from url",
		logging.Int64("bgg_id", id),
		logging.String("matched_name", thing.PrimaryName))
}

// lastPathSegment returns the text after the final slash, which for BGG URLs
// is the slugged game name.
func lastPathSegment(line string) string {
	if idx := strings.LastIndex(line, "/"); idx >= 0 {
		return strings.ReplaceAll(line[idx+1:], "-", " ")
	}
	return line
}

// Apply copies a resolution into its collection row.
func Apply(res *resolvecache.Resolution, row *collection.Row) {
	row.GameName = res.GameName
	row.BGGID = res.BGGID
	row.MatchedName = res.MatchedName
	row.Year = res.Year
	row.Status = res.Status
	row.Confidence = res.Confidence
}
