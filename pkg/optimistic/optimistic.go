// Package optimistic runs client-side edits that are applied to a local view
// immediately and rolled back if the server rejects them.
package optimistic

import (
	"context"
	"sync"
)

// List is the view state a command works on.
type List[T any] struct {
	Items   []T
	Pending bool
}

// Command mutates the view, persists, and can undo its own mutation.
type Command interface {
	Apply()
	Commit(ctx context.Context) error
	Rollback()
}

// Controller serializes commands per key so two edits of the same list never
// interleave their apply/rollback steps. A key's lock is dropped once no
// command holds or waits for it.
type Controller struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	sync.Mutex
	refs int
}

func NewController() *Controller {
	return &Controller{locks: make(map[string]*keyLock)}
}

func (c *Controller) acquire(key string) *keyLock {
	c.mu.Lock()
	l, ok := c.locks[key]
	if !ok {
		l = &keyLock{}
		c.locks[key] = l
	}
	l.refs++
	c.mu.Unlock()

	l.Lock()
	return l
}

func (c *Controller) release(key string, l *keyLock) {
	l.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(c.locks, key)
	}
}

// Len reports how many keys currently have a command running or waiting.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.locks)
}

// Execute applies cmd, commits it, and rolls it back when commit fails.
// The commit error is returned unchanged.
func (c *Controller) Execute(ctx context.Context, key string, cmd Command) error {
	l := c.acquire(key)
	defer c.release(key, l)

	cmd.Apply()
	if err := cmd.Commit(ctx); err != nil {
		cmd.Rollback()
		return err
	}
	return nil
}

// ReorderCommand moves one item and persists the resulting order.
type ReorderCommand[T any] struct {
	View    *List[T]
	From    int
	To      int
	Persist func(ctx context.Context, ordered []T) error

	snapshot []T
}

func (r *ReorderCommand[T]) Apply() {
	r.snapshot = append([]T(nil), r.View.Items...)
	r.View.Items = Move(r.View.Items, r.From, r.To)
	r.View.Pending = true
}

func (r *ReorderCommand[T]) Commit(ctx context.Context) error {
	defer func() { r.View.Pending = false }()
	return r.Persist(ctx, append([]T(nil), r.View.Items...))
}

func (r *ReorderCommand[T]) Rollback() {
	r.View.Items = r.snapshot
	r.View.Pending = false
}

// RemoveCommand drops one item and persists the removal.
type RemoveCommand[T any] struct {
	View    *List[T]
	Index   int
	Persist func(ctx context.Context, removed T) error

	snapshot []T
	removed  T
}

func (r *RemoveCommand[T]) Apply() {
	r.snapshot = append([]T(nil), r.View.Items...)
	if r.Index < 0 || r.Index >= len(r.View.Items) {
		return
	}
	r.removed = r.View.Items[r.Index]
	items := append([]T(nil), r.View.Items[:r.Index]...)
	r.View.Items = append(items, r.View.Items[r.Index+1:]...)
	r.View.Pending = true
}

func (r *RemoveCommand[T]) Commit(ctx context.Context) error {
	defer func() { r.View.Pending = false }()
	if len(r.snapshot) == len(r.View.Items) {
		return nil
	}
	return r.Persist(ctx, r.removed)
}

func (r *RemoveCommand[T]) Rollback() {
	r.View.Items = r.snapshot
	r.View.Pending = false
}

// Move returns a copy of items with the element at from placed at to.
// Out of range indexes return an unchanged copy.
func Move[T any](items []T, from, to int) []T {
	out := append([]T(nil), items...)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	item := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]T{item}, out[to:]...)...)
	return out
}
