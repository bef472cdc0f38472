package collection_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"boardshelf/internal/collection"
)

func sampleTable() *collection.Table {
	return &collection.Table{Rows: []*collection.Row{
		{
			OriginalLine: "1. Catan # family favourite",
			GameName:     "Catan",
			BGGID:        "13",
			MatchedName:  "CATAN",
			Year:         "1995",
			Status:       "Found via search",
			Confidence:   collection.ConfidenceHigh,
			Rank:         "429",
			BayesAverage: "6.91",
		},
		{
			OriginalLine: "???",
			GameName:     "",
			BGGID:        collection.SentinelNoBGGID,
			Status:       "Empty game name",
			Confidence:   collection.ConfidenceNone,
		},
	}}
}

func TestWriteLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.csv")
	table := sampleTable()
	table.Rows[0].ImageFilename = "CATAN_1995_13.jpg"
	table.Rows[0].ComplexityWeight = "2.29"
	table.Rows[0].Mechanics = "Dice Rolling; Trading"

	if err := table.Write(path); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	loaded, err := collection.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(loaded.Rows) != len(table.Rows) {
		t.Fatalf("row count changed: %d != %d", len(loaded.Rows), len(table.Rows))
	}
	for i := range table.Rows {
		if !reflect.DeepEqual(table.Rows[i], loaded.Rows[i]) {
			t.Fatalf("row %d did not round-trip:\nwrote %#v\nread  %#v", i, table.Rows[i], loaded.Rows[i])
		}
	}
}

func TestWriteHeaderMatchesColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.csv")
	if err := sampleTable().Write(path); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	header := strings.SplitN(string(data), "\n", 2)[0]
	want := strings.Join(collection.Columns(), ",")
	if header != want {
		t.Fatalf("header %q, want %q", header, want)
	}
}

func TestLoadToleratesReorderedColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collection.csv")
	contents := "bgg_id,original_line,game_name,confidence\n13,Catan,Catan,High\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	table, err := collection.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}
	row := table.Rows[0]
	if row.BGGID != "13" || row.GameName != "Catan" || row.Confidence != collection.ConfidenceHigh {
		t.Fatalf("unexpected row %#v", row)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := collection.Load(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResolvedRowsFiltersSentinels(t *testing.T) {
	table := sampleTable()
	resolved := table.ResolvedRows()
	if len(resolved.Rows) != 1 {
		t.Fatalf("expected 1 resolved row, got %d", len(resolved.Rows))
	}
	if resolved.Rows[0].BGGID != "13" {
		t.Fatalf("unexpected resolved row %#v", resolved.Rows[0])
	}
	// The filtered view shares row pointers so stage mutations persist.
	resolved.Rows[0].Rank = "1"
	if table.Rows[0].Rank != "1" {
		t.Fatal("expected filtered table to alias original rows")
	}
}
