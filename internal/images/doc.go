// Package images downloads box art for resolved rows into a local directory.
// Filenames are deterministic functions of the game name, year, and id, so a
// rerun recognizes previously fetched art and skips the download. Rows that
// cannot produce an image carry a sentinel in the image column instead.
package images
