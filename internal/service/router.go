package service

import (
	"sort"
	"strings"

	"productbot/assistant/internal/domain"
	"productbot/assistant/internal/repository"
	"productbot/assistant/internal/state"

	log "github.com/sirupsen/logrus"
)

// Router resolves user input against the catalog, scoped by the user's section.
type Router struct {
	catalog repository.CatalogRepository
	states  state.UserStateStore
}

func NewRouter(catalog repository.CatalogRepository, states state.UserStateStore) *Router {
	return &Router{
		catalog: catalog,
		states:  states,
	}
}

// HandleMenuSelection moves the user into section and returns the section's
// product keys, sorted, from the live snapshot.
func (r *Router) HandleMenuSelection(userID int64, section domain.Section) []string {
	if _, ok := section.TableKind(); !ok {
		r.states.Clear(userID)
		return nil
	}
	r.states.Set(userID, section)

	products := r.catalog.Snapshot().Products(section)
	sort.Strings(products)
	return products
}

func (r *Router) HandleBack(userID int64) {
	r.states.Clear(userID)
}

// HandleFreeText resolves text as a product key in the user's current section.
// It returns false when no reply should be sent.
func (r *Router) HandleFreeText(userID int64, text string) (*domain.Response, bool) {
	section := r.states.Get(userID)
	if section == domain.SectionNone {
		return nil, false
	}

	product := strings.TrimSpace(text)
	snap := r.catalog.Snapshot()

	var resp *domain.Response
	switch section {
	case domain.SectionVideos:
		resp = lessonResponse(section, product, snap.Videos)
	case domain.SectionInstructions:
		resp = lessonResponse(section, product, snap.Instructions)
	case domain.SectionCatalog:
		if entry, ok := snap.Catalog[product]; ok {
			resp = catalogResponse(product, entry)
		}
	}

	if resp == nil {
		log.Debugf("No %s entry for %q (user %d)", section, product, userID)
		return nil, false
	}
	return resp, true
}

func (r *Router) Snapshot() *domain.Snapshot {
	return r.catalog.Snapshot()
}

func lessonResponse(section domain.Section, product string, index domain.LessonIndex) *domain.Response {
	entries, ok := index[product]
	if !ok {
		return nil
	}
	return &domain.Response{
		Section: section,
		Product: product,
		Kind:    domain.ResponseLinks,
		Links:   entries,
	}
}

// catalogResponse prefers valid marketplace links, then a valid default link,
// and otherwise reports the product as unavailable. Links are checked here
// because catalog ingestion keeps them unvalidated.
func catalogResponse(product string, entry domain.CatalogEntry) *domain.Response {
	resp := &domain.Response{
		Section: domain.SectionCatalog,
		Product: product,
	}

	links := make([]domain.LessonEntry, 0, len(entry.Marketplaces))
	for _, m := range entry.Marketplaces {
		if m.Name == "" || !domain.IsValidURL(m.URL) {
			continue
		}
		links = append(links, domain.LessonEntry{Label: m.Name, URL: m.URL})
	}

	switch {
	case len(links) > 0:
		resp.Kind = domain.ResponseLinks
		resp.Links = links
	case domain.IsValidURL(entry.DefaultURL):
		resp.Kind = domain.ResponseSingleLink
		resp.URL = entry.DefaultURL
	default:
		resp.Kind = domain.ResponseUnavailable
	}
	return resp
}
