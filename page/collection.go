package page

import "sync"

// Collection is one fetched list held for the duration of a page visit.
// Mutations patch it in place (append, replace by id, remove by id) instead
// of refetching; the version counter moves on every patch so derived views
// can memoize against it.
type Collection[T any] struct {
	mu      sync.RWMutex
	items   []T
	idOf    func(T) int64
	version uint64
}

func NewCollection[T any](idOf func(T) int64) *Collection[T] {
	return &Collection[T]{idOf: idOf, items: []T{}}
}

// Reset replaces the whole collection, as a fresh page load does.
func (c *Collection[T]) Reset(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]T{}, items...)
	c.version++
}

// Items returns a copy; callers project over it freely.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T{}, c.items...)
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T]) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

func (c *Collection[T]) Find(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if c.idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) append(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
	c.version++
}

func (c *Collection[T]) replace(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.idOf(item)
	for i := range c.items {
		if c.idOf(c.items[i]) == id {
			c.items[i] = item
			break
		}
	}
	c.version++
}

func (c *Collection[T]) remove(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.items[:0]
	for _, item := range c.items {
		if c.idOf(item) != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
	c.version++
}
