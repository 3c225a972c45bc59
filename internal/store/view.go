package store

import (
	"fmt"
	"sort"
	"strings"

	"vidstash/models"
)

// Tab selects which projection of the collection the UI sees. It is
// process-wide state on the store, not per-video state.
type Tab string

const (
	TabRecent Tab = "recent"
	TabPinned Tab = "pinned"
	TabNotes  Tab = "notes"
	TabBoards Tab = "boards"
)

// ParseTab maps a request string onto a Tab.
func ParseTab(s string) (Tab, bool) {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case TabRecent:
		return TabRecent, true
	case TabPinned:
		return TabPinned, true
	case TabNotes:
		return TabNotes, true
	case TabBoards:
		return TabBoards, true
	}
	return "", false
}

// SetActiveTab switches the active projection. Pure state transition,
// nothing is persisted.
func (s *Store) SetActiveTab(tab Tab) error {
	if _, ok := ParseTab(string(tab)); !ok {
		return fmt.Errorf("unknown tab %q", tab)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tab = tab
	return nil
}

// ActiveTab returns the current projection selector.
func (s *Store) ActiveTab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab
}

// Videos returns a snapshot of the collection in memory order.
func (s *Store) Videos() []models.Video {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Video, len(s.videos))
	for i := range s.videos {
		out[i] = s.videos[i].Clone()
	}
	return out
}

// Boards returns a snapshot of the board list.
func (s *Store) Boards() []models.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Board(nil), s.boards...)
}

// FilteredView is the derived projection the UI renders: free-text
// search first, then newest-first ordering, then the active tab's
// predicate. It is recomputed on demand from a snapshot and never
// touches the underlying collection.
func (s *Store) FilteredView(query string) []models.Video {
	snapshot := s.Videos()
	tab := s.ActiveTab()

	query = strings.ToLower(strings.TrimSpace(query))
	if query != "" {
		matched := snapshot[:0]
		for _, v := range snapshot {
			if matchesQuery(v, query) {
				matched = append(matched, v)
			}
		}
		snapshot = matched
	}

	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].AddedAt.After(snapshot[j].AddedAt)
	})

	out := make([]models.Video, 0, len(snapshot))
	for _, v := range snapshot {
		if tabMatches(tab, v) {
			out = append(out, v)
		}
	}
	return out
}

// matchesQuery does a case-insensitive substring match across title,
// tags and notes.
func matchesQuery(v models.Video, query string) bool {
	if strings.Contains(strings.ToLower(v.Title), query) {
		return true
	}
	for _, tag := range v.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	for _, note := range v.Notes {
		if strings.Contains(strings.ToLower(note), query) {
			return true
		}
	}
	return false
}

func tabMatches(tab Tab, v models.Video) bool {
	switch tab {
	case TabPinned:
		return v.IsPinned
	case TabNotes:
		return len(v.Notes) > 0
	case TabBoards:
		return len(v.BoardIDs) > 0
	default:
		return true
	}
}
