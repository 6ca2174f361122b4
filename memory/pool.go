// Package memory provides the accounting allocator that owns every long lived buffer of a mesh
// shape and its spatial index, along with typed buffer helpers built on it.
package memory

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

// ErrBufferNotOwned is returned when a buffer is released to a pool that did not hand it out, or is
// released twice.
var ErrBufferNotOwned = errors.New("buffer is not outstanding in this pool")

// Pool hands out buffer ids and takes them back. The typed helpers Take, Return and Resize create
// the backing storage; the pool tracks ownership so leaks and double releases surface as errors.
type Pool interface {
	// Acquire registers a new buffer of count elements and returns its id.
	Acquire(count int) int
	// Release unregisters the buffer with the given id.
	Release(id int) error
}

// BufferPool is a Pool safe for concurrent use.
type BufferPool struct {
	mu          sync.Mutex
	nextID      int
	outstanding map[int]int

	acquired atomic.Int64
	released atomic.Int64
	elements atomic.Int64
}

// NewBufferPool returns an empty pool.
func NewBufferPool() *BufferPool {
	return &BufferPool{outstanding: map[int]int{}}
}

// Acquire registers a new buffer of count elements and returns its id. Ids start at 1 so the zero
// Buffer is recognizably unallocated.
func (p *BufferPool) Acquire(count int) int {
	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.outstanding[id] = count
	p.mu.Unlock()

	p.acquired.Inc()
	p.elements.Add(int64(count))
	return id
}

// Release unregisters the buffer with the given id.
func (p *BufferPool) Release(id int) error {
	p.mu.Lock()
	count, ok := p.outstanding[id]
	if ok {
		delete(p.outstanding, id)
	}
	p.mu.Unlock()

	if !ok {
		return errors.Wrapf(ErrBufferNotOwned, "buffer id %d", id)
	}
	p.released.Inc()
	p.elements.Sub(int64(count))
	return nil
}

// Acquired returns the number of buffers ever handed out.
func (p *BufferPool) Acquired() int {
	return int(p.acquired.Load())
}

// Released returns the number of buffers ever returned.
func (p *BufferPool) Released() int {
	return int(p.released.Load())
}

// Outstanding returns the number of buffers handed out and not yet returned.
func (p *BufferPool) Outstanding() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.outstanding)
}

// OutstandingElements returns the total element count of outstanding buffers.
func (p *BufferPool) OutstandingElements() int {
	return int(p.elements.Load())
}

// Clear forgets every outstanding buffer and returns how many there were.
func (p *BufferPool) Clear() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	leaked := len(p.outstanding)
	p.outstanding = map[int]int{}
	p.elements.Store(0)
	return leaked
}
