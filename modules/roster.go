package modules

import (
	"sort"
	"sync"

	"main/modules/db"
)

// idSet is a mutable set of user ids shared between handlers. The persisted
// copy in bbolt trails the in-memory one; a failed save is logged and the
// in-memory set stays authoritative for the rest of the process lifetime.
type idSet struct {
	mu  sync.RWMutex
	ids map[int64]struct{}
}

func newIDSet() *idSet {
	return &idSet{ids: make(map[int64]struct{})}
}

func (s *idSet) Has(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// Add reports whether the id was not already present.
func (s *idSet) Add(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Remove reports whether the id was present.
func (s *idSet) Remove(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; !ok {
		return false
	}
	delete(s.ids, id)
	return true
}

func (s *idSet) Snapshot() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *idSet) replaceAll(ids []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

var (
	subscribers = newIDSet()
	admins      = newIDSet()
)

func loadRoster() {
	if ids, err := db.LoadSubscribers(); err != nil {
		logWarn("could not load subscribers: " + err.Error())
	} else {
		subscribers.replaceAll(ids)
	}
	if ids, err := db.LoadAdmins(); err != nil {
		logWarn("could not load admins: " + err.Error())
	} else {
		admins.replaceAll(ids)
	}
}

func saveSubscribers() {
	if err := db.SaveSubscribers(subscribers.Snapshot()); err != nil {
		logWarn("could not save subscribers: " + err.Error())
	}
}

func saveAdmins() {
	if err := db.SaveAdmins(admins.Snapshot()); err != nil {
		logWarn("could not save admins: " + err.Error())
	}
}
