// Package ordered holds the client side of the position-ordered list
// protocol used for evidence and counterarguments. The server owns the
// authoritative adjacent swap; the collection mirrors it optimistically.
package ordered

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

var (
	// ErrAtBoundary means the item cannot move further in that direction.
	// Rejected locally, before any request goes out.
	ErrAtBoundary = errors.New("item already at list boundary")

	// ErrReorderInFlight means another reorder for this list has not
	// finished yet. Concurrent reorders are rejected, not queued.
	ErrReorderInFlight = errors.New("reorder already in flight for this list")

	// ErrItemNotFound means the named item is not in the local mirror.
	ErrItemNotFound = errors.New("item not in collection")
)

// Reorderer issues the reorder intent to the authoritative store. The intent
// names only the item and a direction; the server performs the swap.
type Reorderer interface {
	Reorder(ctx context.Context, itemID string, dir Direction) error
}

// Collection mirrors one server-ordered list. At most one reorder may be in
// flight per collection; the guard is released on success and failure alike.
type Collection[T any] struct {
	mu     sync.Mutex
	client Reorderer
	idOf   func(T) string

	items        []T
	reorderingID string
}

func NewCollection[T any](client Reorderer, idOf func(T) string, items []T) *Collection[T] {
	c := &Collection[T]{client: client, idOf: idOf}
	c.items = append(c.items, items...)
	return c
}

// Items returns a snapshot of the current local order.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Replace swaps in a freshly fetched order, e.g. after a view re-mount.
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items[:0:0], items...)
}

// Append mirrors a server-side create, which always lands at the end of the
// position sequence.
func (c *Collection[T]) Append(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

// Reorder moves itemID one step up or down. The two adjacent local entries
// are swapped immediately, assuming the server performs the identical swap.
// A rejected request deliberately leaves the optimistic order in place; the
// caller gets the error and decides whether to re-fetch.
func (c *Collection[T]) Reorder(ctx context.Context, itemID string, dir Direction) error {
	c.mu.Lock()
	if c.reorderingID != "" {
		c.mu.Unlock()
		return ErrReorderInFlight
	}

	idx := -1
	for i := range c.items {
		if c.idOf(c.items[i]) == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return ErrItemNotFound
	}

	var j int
	switch dir {
	case DirectionUp:
		j = idx - 1
	case DirectionDown:
		j = idx + 1
	default:
		c.mu.Unlock()
		return fmt.Errorf("unknown direction %q", dir)
	}
	if j < 0 || j >= len(c.items) {
		c.mu.Unlock()
		return ErrAtBoundary
	}

	c.items[idx], c.items[j] = c.items[j], c.items[idx]
	c.reorderingID = itemID
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.reorderingID = ""
		c.mu.Unlock()
	}()
	return c.client.Reorder(ctx, itemID, dir)
}
