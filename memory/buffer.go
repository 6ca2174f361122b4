package memory

import (
	"github.com/pkg/errors"
)

// Buffer is a fixed length span of T whose ownership is tracked by a Pool.
type Buffer[T any] struct {
	Memory []T
	ID     int
}

// Take acquires a buffer of count elements from pool.
func Take[T any](pool Pool, count int) Buffer[T] {
	if count < 0 {
		count = 0
	}
	return Buffer[T]{Memory: make([]T, count), ID: pool.Acquire(count)}
}

// TakeFrom acquires a buffer from pool holding a copy of values.
func TakeFrom[T any](pool Pool, values []T) Buffer[T] {
	buf := Take[T](pool, len(values))
	copy(buf.Memory, values)
	return buf
}

// Return releases buf to pool and clears it so it cannot be used again.
func Return[T any](pool Pool, buf *Buffer[T]) error {
	if !buf.Allocated() {
		return errors.Wrap(ErrBufferNotOwned, "buffer was never allocated")
	}
	err := pool.Release(buf.ID)
	*buf = Buffer[T]{}
	return err
}

// Resize replaces buf with a buffer of newCount elements, keeping the first copyCount elements.
func Resize[T any](pool Pool, buf *Buffer[T], newCount, copyCount int) error {
	next := Take[T](pool, newCount)
	if copyCount > newCount {
		copyCount = newCount
	}
	if buf.Allocated() {
		copy(next.Memory[:copyCount], buf.Memory)
		if err := Return(pool, buf); err != nil {
			return err
		}
	}
	*buf = next
	return nil
}

// Len returns the number of elements in the buffer.
func (b Buffer[T]) Len() int {
	return len(b.Memory)
}

// Allocated reports whether the buffer came from a pool and has not been returned.
func (b Buffer[T]) Allocated() bool {
	return b.ID != 0
}

// Get returns a pointer to element i.
func (b Buffer[T]) Get(i int) *T {
	return &b.Memory[i]
}
