package repository

import (
	"sync"
	"sync/atomic"

	"productbot/assistant/internal/domain"

	log "github.com/sirupsen/logrus"
)

// CatalogRepository holds the currently published catalog snapshot.
type CatalogRepository interface {
	// Publish replaces the index of every given table in one atomic swap.
	// Tables that are not passed keep their previously published data.
	Publish(updates ...*domain.TableData)
	// Snapshot returns the current snapshot. Callers must not modify it.
	Snapshot() *domain.Snapshot
	// Published reports whether the kind has been published at least once.
	Published(kind domain.TableKind) bool
}

type catalogRepository struct {
	current atomic.Pointer[domain.Snapshot]

	mutex     sync.Mutex
	published map[domain.TableKind]bool
}

func NewCatalogRepository() CatalogRepository {
	r := &catalogRepository{
		published: make(map[domain.TableKind]bool, len(domain.TableKinds)),
	}
	r.current.Store(domain.EmptySnapshot())
	return r
}

func (r *catalogRepository) Publish(updates ...*domain.TableData) {
	if len(updates) == 0 {
		return
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	next := *r.current.Load()
	for _, update := range updates {
		if update == nil {
			continue
		}
		switch update.Kind {
		case domain.TableKindVideos:
			next.Videos = orEmptyLessons(update.Lessons)
		case domain.TableKindInstructions:
			next.Instructions = orEmptyLessons(update.Lessons)
		case domain.TableKindCatalog:
			next.Catalog = orEmptyCatalog(update.Catalog)
		default:
			log.Warnf("⚠️ Ignoring update for unknown table kind %q", update.Kind)
			continue
		}
		r.published[update.Kind] = true
	}

	r.current.Store(&next)
}

func (r *catalogRepository) Snapshot() *domain.Snapshot {
	return r.current.Load()
}

func (r *catalogRepository) Published(kind domain.TableKind) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.published[kind]
}

func orEmptyLessons(index domain.LessonIndex) domain.LessonIndex {
	if index == nil {
		return domain.LessonIndex{}
	}
	return index
}

func orEmptyCatalog(index domain.CatalogIndex) domain.CatalogIndex {
	if index == nil {
		return domain.CatalogIndex{}
	}
	return index
}
