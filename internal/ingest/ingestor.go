package ingest

import (
	"context"
	"fmt"

	"productbot/assistant/internal/client"
	"productbot/assistant/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Ingestor builds one table's product index from a single fetch of its range.
type Ingestor struct {
	client client.SheetsClient
}

func NewIngestor(client client.SheetsClient) *Ingestor {
	return &Ingestor{client: client}
}

// Ingest fetches the table and returns its complete index. Invalid rows are logged
// and skipped; only a failed fetch fails the table.
func (i *Ingestor) Ingest(ctx context.Context, table domain.TableConfig) (*domain.TableData, error) {
	rows, err := i.client.FetchRows(ctx, table.SpreadsheetID, table.Range)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch table %s: %w", table.Name, err)
	}

	switch table.Kind {
	case domain.TableKindVideos, domain.TableKindInstructions:
		return &domain.TableData{
			Kind:    table.Kind,
			Lessons: buildLessonIndex(table, rows),
		}, nil
	case domain.TableKindCatalog:
		return &domain.TableData{
			Kind:    table.Kind,
			Catalog: buildCatalogIndex(table, rows),
		}, nil
	default:
		return nil, fmt.Errorf("table %s: %w: %s", table.Name, ErrUnknownKind, table.Kind)
	}
}

func buildLessonIndex(table domain.TableConfig, rows []domain.Row) domain.LessonIndex {
	grouped := make(map[string][]domain.LessonEntry)
	for n, row := range rows {
		product, entry, err := ValidateLessonRow(table.Kind, row)
		if err != nil {
			log.Warnf("⚠️ Skipping row %d of %s: %v", n+1, table.Name, err)
			continue
		}
		grouped[product] = append(grouped[product], entry)
	}

	index := make(domain.LessonIndex, len(grouped))
	for product, entries := range grouped {
		if len(entries) == 0 {
			continue
		}
		index[product] = entries
	}
	return index
}

func buildCatalogIndex(table domain.TableConfig, rows []domain.Row) domain.CatalogIndex {
	index := make(domain.CatalogIndex)
	for n, row := range rows {
		product, entry, err := ValidateCatalogRow(row)
		if err != nil {
			log.Warnf("⚠️ Skipping row %d of %s: %v", n+1, table.Name, err)
			continue
		}
		if _, dup := index[product]; dup {
			log.Warnf("⚠️ Duplicate product %q in %s, row %d replaces the earlier row", product, table.Name, n+1)
		}
		index[product] = entry
	}
	return index
}
