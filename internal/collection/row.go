package collection

import "strconv"

// Confidence labels how certain a resolution is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
	ConfidenceNone   Confidence = "None"
)

// Sentinel values recorded inside data columns to encode known failure modes.
// They are reserved strings that can never collide with a real id or a real
// image filename.
const (
	SentinelNoBGGID        = "NO_BGG_ID"
	SentinelInvalidID      = "INVALID_ID"
	SentinelNoImage        = "NO_IMAGE"
	SentinelDownloadFailed = "DOWNLOAD_FAILED"
)

// RankUnranked is the rank recorded for games absent from the bulk ranking
// table. A large value keeps unranked games at the bottom of numeric sorts
// without null handling.
const RankUnranked = "999999"

// Row is the single entity flowing through all pipeline stages. Joined and
// enriched attributes are kept in their display encoding; the CSV file is the
// persisted state layout, so every field round-trips as written.
type Row struct {
	OriginalLine string
	GameName     string
	BGGID        string
	MatchedName  string
	Year         string
	Status       string
	Confidence   Confidence

	// Ranking attributes, set by the joiner.
	Name         string
	Rank         string
	BayesAverage string
	Average      string
	UsersRated   string
	IsExpansion  string

	// Image attribute, set by the image fetcher.
	ImageFilename string

	// Enrichment attributes, set by the detail enricher.
	MinPlayers             string
	MaxPlayers             string
	BestPlayerCount        string
	RecommendedPlayerCount string
	PlayingTime            string
	ComplexityWeight       string
	Mechanics              string
	Categories             string
}

// ID parses the resolved BGG identifier. It reports false for empty values
// and sentinels.
func (r *Row) ID() (int64, bool) {
	id, err := strconv.ParseInt(r.BGGID, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// Resolved reports whether the row carries a usable BGG id.
func (r *Row) Resolved() bool {
	_, ok := r.ID()
	return ok
}

// Enriched reports whether the row already carries detail data. Rows with a
// non-empty complexity weight are skipped on re-entry, which is what makes
// long enrichment runs resumable.
func (r *Row) Enriched() bool {
	return r.ComplexityWeight != ""
}

// HasImage reports whether image_filename names a real cached file rather
// than a sentinel.
func (r *Row) HasImage() bool {
	return r.ImageFilename != "" && !IsImageSentinel(r.ImageFilename)
}

// DisplayName returns the best name available for user-facing output and
// image filenames: the API-matched name when present, the cleaned input name
// otherwise.
func (r *Row) DisplayName() string {
	if r.MatchedName != "" {
		return r.MatchedName
	}
	return r.GameName
}

// IsImageSentinel reports whether the value is one of the reserved
// image_filename failure markers.
func IsImageSentinel(value string) bool {
	switch value {
	case SentinelNoImage, SentinelDownloadFailed, SentinelNoBGGID, SentinelInvalidID:
		return true
	}
	return false
}
