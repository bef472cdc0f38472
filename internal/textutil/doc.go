// Package textutil provides text processing utilities for filename
// sanitization and name normalization.
//
// SanitizeFileName reduces arbitrary game titles to a filesystem-safe ASCII
// base name: Unicode is decomposed and stripped of combining marks, control
// characters are removed, and only letters, digits, spaces, hyphens, and
// underscores survive. The function is idempotent.
package textutil
