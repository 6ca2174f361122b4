package memory

// QuickList is a growable list whose storage is a pool buffer.
type QuickList[T any] struct {
	Span  Buffer[T]
	Count int
}

// NewQuickList returns a list with room for initialCapacity elements.
func NewQuickList[T any](initialCapacity int, pool Pool) QuickList[T] {
	if initialCapacity < 1 {
		initialCapacity = 1
	}
	return QuickList[T]{Span: Take[T](pool, initialCapacity)}
}

// EnsureCapacity grows the backing buffer to hold at least count elements.
func (l *QuickList[T]) EnsureCapacity(count int, pool Pool) error {
	if count <= l.Span.Len() {
		return nil
	}
	newCount := l.Span.Len() * 2
	if newCount < count {
		newCount = count
	}
	return Resize(pool, &l.Span, newCount, l.Count)
}

// Allocate appends a zero element, growing if needed, and returns a pointer to it.
// The pointer is valid until the next growth.
func (l *QuickList[T]) Allocate(pool Pool) (*T, error) {
	if err := l.EnsureCapacity(l.Count+1, pool); err != nil {
		return nil, err
	}
	return l.AllocateUnsafely(), nil
}

// AllocateUnsafely appends a zero element without checking capacity.
func (l *QuickList[T]) AllocateUnsafely() *T {
	slot := &l.Span.Memory[l.Count]
	var zero T
	*slot = zero
	l.Count++
	return slot
}

// Add appends value, growing if needed.
func (l *QuickList[T]) Add(value T, pool Pool) error {
	slot, err := l.Allocate(pool)
	if err != nil {
		return err
	}
	*slot = value
	return nil
}

// Items returns the live elements.
func (l *QuickList[T]) Items() []T {
	return l.Span.Memory[:l.Count]
}

// Dispose returns the backing buffer to pool.
func (l *QuickList[T]) Dispose(pool Pool) error {
	l.Count = 0
	if !l.Span.Allocated() {
		return nil
	}
	return Return(pool, &l.Span)
}
