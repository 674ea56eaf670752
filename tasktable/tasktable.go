// Package tasktable implements the per-resource task queue and the one-shot
// move latch every TaskItem carries. The latch is an atomic
// compare-and-swap, not a mutex: contention is the normal case (multiple
// policies racing to claim the same item) and the losing side must never
// block.
package tasktable

import (
	"sync"
	"sync/atomic"

	"github.com/NeatNerdPrime/milvus/task"
)

// TaskItem is the routable handle to a Task, equipped with a one-shot move
// latch. Move returns true exactly once over the item's lifetime; any
// number of concurrent callers may attempt it, but only the first observes
// true.
type TaskItem struct {
	Task  *task.Task
	moved atomic.Bool
}

// NewItem wraps t in a fresh, unclaimed TaskItem.
func NewItem(t *task.Task) *TaskItem {
	return &TaskItem{Task: t}
}

// Move attempts to claim ownership of placing this item onto its next
// resource. It returns true for exactly one caller across the item's
// lifetime.
func (i *TaskItem) Move() bool {
	return i.moved.CompareAndSwap(false, true)
}

// Moved reports whether this item has already been claimed, without
// attempting to claim it.
func (i *TaskItem) Moved() bool {
	return i.moved.Load()
}

// TaskTable is a thread-safe, insertion-ordered collection of TaskItems
// belonging to a single resource. Put is idempotent per item: inserting the
// same item twice is a no-op the second time.
type TaskTable struct {
	mu    sync.Mutex
	items []*TaskItem
	seen  map[*TaskItem]struct{}
}

// NewTable constructs an empty TaskTable.
func NewTable() *TaskTable {
	return &TaskTable{seen: make(map[*TaskItem]struct{})}
}

// Put appends item to the table, preserving arrival order. Putting the same
// item a second time is a no-op.
func (t *TaskTable) Put(item *TaskItem) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.seen[item]; ok {
		return
	}
	t.seen[item] = struct{}{}
	t.items = append(t.items, item)
}

// Items returns a snapshot of the table's contents in arrival order.
func (t *TaskTable) Items() []*TaskItem {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*TaskItem, len(t.items))
	copy(out, t.items)
	return out
}

// Len reports the number of items currently in the table.
func (t *TaskTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.items)
}

// Contains reports whether item has already been put into this table.
func (t *TaskTable) Contains(item *TaskItem) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.seen[item]
	return ok
}
