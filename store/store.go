// CLAUDE:SUMMARY Session state store — ordered element list plus a nullable selection, swapped atomically.
// Package store holds the state of one editing session: the ordered element
// list and the identifier of the selected element, if any.
//
// The store lives for the duration of the process. It performs no validation:
// any id may be selected, including one absent from the list.
package store

import (
	"sync"

	"github.com/hazyhaar/protoboard/element"
)

// Store is the single owner of a session's element list and selection.
type Store struct {
	mu        sync.RWMutex
	elements  []element.Element
	selection string
	selected  bool
}

// New creates a store holding a copy of initial, with no selection.
func New(initial []element.Element) *Store {
	return &Store{elements: element.Clone(initial)}
}

// Elements returns a copy of the current ordered list.
func (s *Store) Elements() []element.Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return element.Clone(s.elements)
}

// Selection returns the selected id and whether a selection is set.
func (s *Store) Selection() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection, s.selected
}

// Select sets the selection to id. The id is not checked against the list.
func (s *Store) Select(id string) {
	s.mu.Lock()
	s.selection, s.selected = id, true
	s.mu.Unlock()
}

// ClearSelection unsets the selection.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	s.selection, s.selected = "", false
	s.mu.Unlock()
}

// Replace swaps the whole element list. The caller's slice is copied and its
// order kept.
func (s *Store) Replace(list []element.Element) {
	next := element.Clone(list)
	s.mu.Lock()
	s.elements = next
	s.mu.Unlock()
}

// Snapshot is a consistent view of the store.
type Snapshot struct {
	Elements  []element.Element
	Selection string
	Selected  bool
}

// Snapshot returns the list and selection read under one lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Elements:  element.Clone(s.elements),
		Selection: s.selection,
		Selected:  s.selected,
	}
}
