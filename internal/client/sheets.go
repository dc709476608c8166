package client

import (
	"context"
	"fmt"

	"productbot/assistant/internal/domain"
)

// SheetsClient fetches the raw rows of one range of a spreadsheet in a single call.
type SheetsClient interface {
	FetchRows(ctx context.Context, spreadsheetID, readRange string) ([]domain.Row, error)
}

// toRows converts the loosely typed value grid returned by the Sheets API.
// Nil cells become empty strings so positional indexing stays intact.
func toRows(values [][]any) []domain.Row {
	rows := make([]domain.Row, 0, len(values))
	for _, raw := range values {
		row := make(domain.Row, len(raw))
		for i, cell := range raw {
			switch v := cell.(type) {
			case nil:
				row[i] = ""
			case string:
				row[i] = v
			default:
				row[i] = fmt.Sprint(v)
			}
		}
		rows = append(rows, row)
	}
	return rows
}
