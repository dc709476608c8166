package ingest

import (
	"errors"
	"fmt"

	"productbot/assistant/internal/domain"
)

// InstructionLabel is the label given to every instruction entry.
const InstructionLabel = "Instruction"

// marketplacePairs lists the (name, link) cell positions of a catalog row.
var marketplacePairs = [][2]int{{2, 3}, {4, 5}, {6, 7}}

var (
	ErrRowRejected = errors.New("row rejected")
	ErrUnknownKind = errors.New("unknown table kind")
)

func reject(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrRowRejected, fmt.Sprintf(format, args...))
}

// ValidateLessonRow turns a videos or instructions row into a product key and its
// entry. Rows with a missing field or a malformed link are rejected.
func ValidateLessonRow(kind domain.TableKind, row domain.Row) (string, domain.LessonEntry, error) {
	var product, label, link string

	switch kind {
	case domain.TableKindVideos:
		product, label, link = row.Cell(0), row.Cell(1), row.Cell(2)
		if label == "" {
			return "", domain.LessonEntry{}, reject("empty lesson label")
		}
	case domain.TableKindInstructions:
		product, label, link = row.Cell(0), InstructionLabel, row.Cell(1)
	default:
		return "", domain.LessonEntry{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	if product == "" {
		return "", domain.LessonEntry{}, reject("empty product")
	}
	if link == "" {
		return "", domain.LessonEntry{}, reject("empty link")
	}
	if !domain.IsValidURL(link) {
		return "", domain.LessonEntry{}, reject("invalid link %q", link)
	}

	return product, domain.LessonEntry{Label: label, URL: link}, nil
}

// ValidateCatalogRow turns a catalog row into a product key and its entry.
// Links are not checked here; lookups re-validate them before use. Marketplace
// pairs missing either half are dropped.
func ValidateCatalogRow(row domain.Row) (string, domain.CatalogEntry, error) {
	product := row.Cell(0)
	if product == "" {
		return "", domain.CatalogEntry{}, reject("empty product")
	}

	entry := domain.CatalogEntry{
		DefaultURL:   row.Cell(1),
		Marketplaces: make([]domain.MarketplaceLink, 0, len(marketplacePairs)),
	}
	for _, pair := range marketplacePairs {
		name, link := row.Cell(pair[0]), row.Cell(pair[1])
		if name == "" || link == "" {
			continue
		}
		entry.Marketplaces = append(entry.Marketplaces, domain.MarketplaceLink{Name: name, URL: link})
	}

	return product, entry, nil
}
