package domain

import (
	"fmt"
	"strings"
)

type TableKind string

func (k TableKind) String() string {
	return string(k)
}

const (
	TableKindVideos       TableKind = "videos"
	TableKindInstructions TableKind = "instructions"
	TableKindCatalog      TableKind = "catalog"
)

var TableKinds = []TableKind{
	TableKindVideos,
	TableKindInstructions,
	TableKindCatalog,
}

// ParseTableKind maps a config value onto a TableKind.
func ParseTableKind(s string) (TableKind, error) {
	kind := TableKind(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range TableKinds {
		if k == kind {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown table kind %q", s)
}

// TableConfig describes one logical table in the external data source.
type TableConfig struct {
	Name          string    `mapstructure:"name"`
	SpreadsheetID string    `mapstructure:"spreadsheet_id"` // Empty means the table is skipped
	Range         string    `mapstructure:"range"`          // A1 notation, e.g. "Videos!A2:C"
	Kind          TableKind `mapstructure:"kind"`
}

// Configured reports whether the table names a source to fetch from.
func (t TableConfig) Configured() bool {
	return strings.TrimSpace(t.SpreadsheetID) != ""
}

// Row is one raw row as returned by the data source. Trailing empty cells may be
// missing entirely.
type Row []string

// Cell returns the trimmed cell at index i, or "" when the cell is absent.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i])
}
