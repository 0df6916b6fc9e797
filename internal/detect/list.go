// Package detect holds the compute-once detection machinery shared by every
// domain: the append-only record list, the cached per-domain result and the
// ordered probe chain that fills it.
package detect

// List is an append-only, insertion-ordered sequence of domain records.
// Records are neither deduplicated nor sorted.
type List[T any] struct {
	items []T
}

// Append adds v to the end of the list.
func (l *List[T]) Append(v T) {
	l.items = append(l.items, v)
}

// Len returns the number of records in the list.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Last returns a pointer to the most recently appended record, or nil when
// the list is empty. Only the probe that appended the record may use it to
// fill in fields while its pass is still running.
func (l *List[T]) Last() *T {
	if len(l.items) == 0 {
		return nil
	}

	return &l.items[len(l.items)-1]
}

// truncate drops every record at index n and beyond.
func (l *List[T]) truncate(n int) {
	if n < 0 || n >= len(l.items) {
		return
	}

	var zero T
	for i := n; i < len(l.items); i++ {
		l.items[i] = zero
	}
	l.items = l.items[:n]
}
