package images

import (
	"fmt"
	"net/url"
	"strings"

	"boardshelf/internal/textutil"
)

const fallbackBase = "game"

// FileName builds the deterministic on-disk name for a game's box art:
// sanitized name, publication year, and BGG id, with the extension taken from
// the source URL. The same inputs always produce the same name, which is what
// makes the cache check a plain file existence test.
func FileName(name, year string, id int64, imageURL string) string {
	base := textutil.SanitizeFileName(name)
	if base == "" {
		base = fallbackBase
	}
	if year == "" {
		year = "0000"
	}
	return fmt.Sprintf("%s_%s_%d%s", base, year, id, Extension(imageURL))
}

// Extension picks the stored file extension from the source URL. BGG serves
// box art as JPEG except for a minority of PNG uploads, so anything that is
// not recognizably PNG is stored as .jpg.
func Extension(imageURL string) string {
	path := imageURL
	if parsed, err := url.Parse(imageURL); err == nil {
		path = parsed.Path
	}
	if strings.HasSuffix(strings.ToLower(path), ".png") {
		return ".png"
	}
	return ".jpg"
}
