// Package sortedlist provides a generic comparator-ordered list with
// binary-search insertion and optional uniqueness-key deduplication.
//
// It backs the per-security operation ledgers (ordered by date, deduplicated
// by content checksum) and the cash-flow sequences fed to the rate solver.
package sortedlist

import "errors"

// ErrNilCompare is returned when a list is constructed without a comparator.
// There is no implicit identity ordering.
var ErrNilCompare = errors.New("sortedlist: a comparison function must be provided")

// CompareFunc defines the sort order: negative when a sorts before b,
// zero when they compare equal, positive when a sorts after b.
type CompareFunc[T any] func(a, b T) int

// KeyFunc extracts a unique string identifier from an item. When provided,
// the list silently rejects items whose key is already present.
type KeyFunc[T any] func(item T) string

// List keeps its items permanently ordered under a CompareFunc.
// Items comparing equal keep their insertion order.
type List[T any] struct {
	items   []T
	compare CompareFunc[T]
	keyOf   KeyFunc[T]
	keys    map[string]struct{}
}

// New creates an empty list ordered by compare.
func New[T any](compare CompareFunc[T]) (*List[T], error) {
	return NewWithKey[T](compare, nil)
}

// NewWithKey creates an empty list ordered by compare, deduplicating on the
// key extracted by keyOf. A nil keyOf disables deduplication.
func NewWithKey[T any](compare CompareFunc[T], keyOf KeyFunc[T]) (*List[T], error) {
	if compare == nil {
		return nil, ErrNilCompare
	}
	l := &List[T]{compare: compare, keyOf: keyOf}
	if keyOf != nil {
		l.keys = make(map[string]struct{})
	}
	return l, nil
}

// FromSlice creates a list from an existing slice, inserting each element in
// order. The input slice is not modified.
func FromSlice[T any](items []T, compare CompareFunc[T], keyOf KeyFunc[T]) (*List[T], error) {
	l, err := NewWithKey(compare, keyOf)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		l.Add(item)
	}
	return l, nil
}

// Add inserts item at its sorted position and reports whether insertion
// happened. It returns false when the item's uniqueness key is already
// present; the duplicate is rejected, not overwritten.
func (l *List[T]) Add(item T) bool {
	if l.keyOf != nil {
		key := l.keyOf(item)
		if _, exists := l.keys[key]; exists {
			return false
		}
		l.keys[key] = struct{}{}
	}

	// Binary search for the insertion point. Items comparing equal to an
	// existing element are placed after it, keeping insertion order stable.
	low, high := 0, len(l.items)-1
	insertIndex := len(l.items)
	for low <= high {
		mid := (low + high) / 2
		if l.compare(item, l.items[mid]) < 0 {
			insertIndex = mid
			high = mid - 1
		} else {
			low = mid + 1
		}
	}

	l.items = append(l.items, item)
	copy(l.items[insertIndex+1:], l.items[insertIndex:])
	l.items[insertIndex] = item
	return true
}

// Get returns the item at index, with ok=false when out of bounds.
func (l *List[T]) Get(index int) (T, bool) {
	var zero T
	if index < 0 || index >= len(l.items) {
		return zero, false
	}
	return l.items[index], true
}

// IndexOf returns the index of the first element comparing equal to item
// under the list's comparator, or -1. For lists without a uniqueness key the
// lowest-index match is returned.
func (l *List[T]) IndexOf(item T) int {
	low, high := 0, len(l.items)-1
	result := -1
	for low <= high {
		mid := (low + high) / 2
		cmp := l.compare(item, l.items[mid])
		switch {
		case cmp == 0:
			// Candidate found; keep searching left for the first match.
			result = mid
			high = mid - 1
		case cmp < 0:
			high = mid - 1
		default:
			low = mid + 1
		}
	}
	return result
}

// Remove removes the first element comparing equal to item and reports
// whether anything was removed.
func (l *List[T]) Remove(item T) bool {
	index := l.IndexOf(item)
	if index == -1 {
		return false
	}
	l.RemoveAt(index)
	return true
}

// RemoveAt removes and returns the item at index, with ok=false when out of
// bounds. The item's uniqueness key is released, so an equal item can be
// re-added afterwards.
func (l *List[T]) RemoveAt(index int) (T, bool) {
	var zero T
	if index < 0 || index >= len(l.items) {
		return zero, false
	}
	item := l.items[index]
	l.items = append(l.items[:index], l.items[index+1:]...)
	if l.keyOf != nil {
		delete(l.keys, l.keyOf(item))
	}
	return item, true
}

// Clear removes all items.
func (l *List[T]) Clear() {
	l.items = l.items[:0]
	if l.keyOf != nil {
		l.keys = make(map[string]struct{})
	}
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Items returns an ordered snapshot of the list, not a live view.
func (l *List[T]) Items() []T {
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}
