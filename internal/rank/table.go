package rank

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Entry is one game's row from the ranking export, kept in its source string
// encoding.
type Entry struct {
	Name          string
	YearPublished string
	Rank          string
	BayesAverage  string
	Average       string
	UsersRated    string
	IsExpansion   string
}

// Table holds the ranking export keyed by BGG id.
type Table struct {
	entries map[int64]Entry
}

// LoadTable parses the ranking export CSV. Columns are located by header name,
// so extra columns in newer exports are ignored. Rows without a parseable id
// are skipped.
func LoadTable(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ranking export: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse ranking export %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("ranking export %s is empty", path)
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[name] = i
	}
	if _, ok := index["id"]; !ok {
		return nil, fmt.Errorf("ranking export %s has no id column", path)
	}

	table := &Table{entries: make(map[int64]Entry, len(records)-1)}
	for _, record := range records[1:] {
		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}
		id, err := strconv.ParseInt(field("id"), 10, 64)
		if err != nil || id < 1 {
			continue
		}
		table.entries[id] = Entry{
			Name:          field("name"),
			YearPublished: field("yearpublished"),
			Rank:          field("rank"),
			BayesAverage:  field("bayesaverage"),
			Average:       field("average"),
			UsersRated:    field("usersrated"),
			IsExpansion:   field("is_expansion"),
		}
	}
	return table, nil
}

// Lookup returns the export entry for a BGG id.
func (t *Table) Lookup(id int64) (Entry, bool) {
	entry, ok := t.entries[id]
	return entry, ok
}

// Len reports how many games the export carries.
func (t *Table) Len() int {
	return len(t.entries)
}
