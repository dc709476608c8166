package domain

// LessonEntry is a named link shown for a product: a video lesson or an instruction.
type LessonEntry struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// MarketplaceLink is a named purchase link of a catalog product.
type MarketplaceLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type CatalogEntry struct {
	DefaultURL   string            `json:"default_url,omitempty"` // Empty when the row has no default link
	Marketplaces []MarketplaceLink `json:"marketplaces"`          // Up to three complete (name, link) pairs
}

// LessonIndex maps a product key to its ordered lesson list.
type LessonIndex map[string][]LessonEntry

// CatalogIndex maps a product key to its catalog entry.
type CatalogIndex map[string]CatalogEntry

// Snapshot is one published set of the three product indexes.
// A published Snapshot is never mutated; the store swaps in a new one instead.
type Snapshot struct {
	Videos       LessonIndex  `json:"videos"`
	Instructions LessonIndex  `json:"instructions"`
	Catalog      CatalogIndex `json:"catalog"`
}

// EmptySnapshot returns a snapshot with all three indexes empty but non-nil.
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		Videos:       LessonIndex{},
		Instructions: LessonIndex{},
		Catalog:      CatalogIndex{},
	}
}

// Products returns the product keys known for the given section, unsorted.
func (s *Snapshot) Products(section Section) []string {
	var keys []string
	switch section {
	case SectionVideos:
		keys = make([]string, 0, len(s.Videos))
		for k := range s.Videos {
			keys = append(keys, k)
		}
	case SectionInstructions:
		keys = make([]string, 0, len(s.Instructions))
		for k := range s.Instructions {
			keys = append(keys, k)
		}
	case SectionCatalog:
		keys = make([]string, 0, len(s.Catalog))
		for k := range s.Catalog {
			keys = append(keys, k)
		}
	}
	return keys
}

// TableData is the result of ingesting one table. Exactly one of Lessons and
// Catalog is set, depending on Kind.
type TableData struct {
	Kind    TableKind    `json:"kind"`
	Lessons LessonIndex  `json:"lessons,omitempty"`
	Catalog CatalogIndex `json:"catalog,omitempty"`
}

// Len returns the number of product keys in the table.
func (t *TableData) Len() int {
	if t.Kind == TableKindCatalog {
		return len(t.Catalog)
	}
	return len(t.Lessons)
}
