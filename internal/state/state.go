package state

import (
	"sync"

	"productbot/assistant/internal/domain"
)

// UserStateStore tracks which menu section each user is in. State lives for the
// process lifetime only.
type UserStateStore interface {
	Get(userID int64) domain.Section
	Set(userID int64, section domain.Section)
	Clear(userID int64)
}

type memoryStateStore struct {
	mutex    sync.RWMutex
	sections map[int64]domain.Section
}

func NewMemoryStateStore() UserStateStore {
	return &memoryStateStore{
		sections: make(map[int64]domain.Section),
	}
}

// Get returns SectionNone for users that never selected a section.
func (s *memoryStateStore) Get(userID int64) domain.Section {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.sections[userID]
}

func (s *memoryStateStore) Set(userID int64, section domain.Section) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if section == domain.SectionNone {
		delete(s.sections, userID)
		return
	}
	s.sections[userID] = section
}

func (s *memoryStateStore) Clear(userID int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.sections, userID)
}
