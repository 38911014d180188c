// Package selection tracks row selection for bulk actions.
package selection

import (
	"context"
	"sort"
)

// Set is a set of selected row identifiers. The zero value is empty and
// ready to use. It is not safe for concurrent use.
type Set struct {
	ids map[string]struct{}
}

// New returns a set holding ids.
func New(ids ...string) *Set {
	s := &Set{}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

func (s *Set) add(id string) {
	if s.ids == nil {
		s.ids = make(map[string]struct{})
	}
	s.ids[id] = struct{}{}
}

// Toggle adds id when absent and removes it when present.
func (s *Set) Toggle(id string) {
	if s.Has(id) {
		delete(s.ids, id)
		return
	}
	s.add(id)
}

// SelectAll clears the selection when its size equals len(visible),
// otherwise replaces it with every visible id.
func (s *Set) SelectAll(visible []string) {
	if s.Len() == len(visible) {
		s.Clear()
		return
	}
	s.Clear()
	for _, id := range visible {
		s.add(id)
	}
}

// Has reports whether id is selected.
func (s *Set) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len is the number of selected ids.
func (s *Set) Len() int {
	return len(s.ids)
}

// Clear empties the selection.
func (s *Set) Clear() {
	s.ids = nil
}

// IDs returns the selected ids sorted.
func (s *Set) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DeleteFunc deletes one row.
type DeleteFunc func(ctx context.Context, id string) error

// BulkResult reports a bulk delete. Deleted rows stay deleted even when a
// later call fails.
type BulkResult struct {
	Deleted []string `json:"deleted"`
	Failed  string   `json:"failed,omitempty"`
	Err     error    `json:"-"`
}

// BulkDelete calls del for each id in order and stops at the first error.
func BulkDelete(ctx context.Context, ids []string, del DeleteFunc) BulkResult {
	result := BulkResult{Deleted: make([]string, 0, len(ids))}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			result.Failed = id
			result.Err = err
			return result
		}
		if err := del(ctx, id); err != nil {
			result.Failed = id
			result.Err = err
			return result
		}
		result.Deleted = append(result.Deleted, id)
	}
	return result
}
