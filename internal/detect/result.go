package detect

// Result is the cached outcome of one domain's probe chain: the records that
// were gathered and the error that ended the chain, if any. A Result is
// never modified once Get has returned it.
type Result[T any] struct {
	list List[T]
	err  error
}

// Len returns the number of records.
func (r *Result[T]) Len() int {
	return r.list.Len()
}

// At returns a copy of the i-th record.
func (r *Result[T]) At(i int) T {
	return r.list.items[i]
}

// Items returns a copy of all records in discovery order.
func (r *Result[T]) Items() []T {
	items := make([]T, len(r.list.items))
	copy(items, r.list.items)

	return items
}

// Err returns the error recorded for the domain, or nil.
func (r *Result[T]) Err() error {
	return r.err
}

// ErrorText returns the recorded error message, or "" when the chain
// succeeded.
func (r *Result[T]) ErrorText() string {
	if r.err == nil {
		return ""
	}

	return r.err.Error()
}

// OK reports whether some probe in the chain succeeded.
func (r *Result[T]) OK() bool {
	return r.err == nil
}
