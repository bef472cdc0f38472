package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to path, creating parent directories as needed.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteGameList fills the list file with one entry per line.
func WriteGameList(t testing.TB, path string, lines ...string) {
	t.Helper()

	content := ""
	for _, line := range lines {
		content += line + "\n"
	}
	WriteFile(t, path, content)
}

// WriteRanksExport writes a minimal bulk ranking export with the standard
// header and the provided data rows.
func WriteRanksExport(t testing.TB, path string, rows ...string) {
	t.Helper()

	content := "id,name,yearpublished,rank,bayesaverage,average,usersrated,is_expansion,abstracts_rank\n"
	for _, row := range rows {
		content += row + "\n"
	}
	WriteFile(t, path, content)
}
