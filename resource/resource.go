// Package resource implements the resource graph (C1) and the resource
// manager (C7): the set of compute/storage endpoints a task can be routed
// across, their weighted connections, and lookup by name or by (type,
// ordinal).
package resource

import (
	"sync"

	"github.com/NeatNerdPrime/milvus/tasktable"
)

// Type discriminates the kind of endpoint a Resource represents.
type Type int

const (
	// Disk is the origin of every task; it always has a local executor.
	Disk Type = iota
	// CPU dispatches to GPUs or runs a task directly.
	CPU
	// GPU executes search/build work and caches artifacts.
	GPU
)

func (t Type) String() string {
	switch t {
	case Disk:
		return "disk"
	case CPU:
		return "cpu"
	case GPU:
		return "gpu"
	default:
		return "unknown"
	}
}

// Neighbour pairs an adjacent Resource with the Connection speed used to
// reach it.
type Neighbour struct {
	Resource   *Resource
	Connection Connection
}

// Connection is a directed, weighted edge between two resources. Speed is a
// relative bandwidth figure; only its ratio to sibling speeds matters.
type Connection struct {
	Speed uint64
}

// Resource is a named compute or storage endpoint. Identity (name, type,
// ordinal) is immutable once constructed; neighbours are added only during
// graph construction at boot and never mutated afterwards; Neighbours still
// copies them under a short lock.
type Resource struct {
	name        string
	typ         Type
	ordinal     int
	hasExecutor bool

	table *tasktable.TaskTable

	mu         sync.Mutex
	neighbours []Neighbour

	wakeMu   sync.Mutex
	wakeups  int
	onWakeup func()
}

// New constructs a Resource. ordinal is meaningful only for GPU resources;
// pass 0 for Disk and CPU.
func New(name string, typ Type, ordinal int, hasExecutor bool) *Resource {
	return &Resource{
		name:        name,
		typ:         typ,
		ordinal:     ordinal,
		hasExecutor: hasExecutor,
		table:       tasktable.NewTable(),
	}
}

// Name returns the resource's unique name.
func (r *Resource) Name() string { return r.name }

// Type returns the resource's kind.
func (r *Resource) Type() Type { return r.typ }

// Ordinal returns the GPU device ordinal. Meaningless for non-GPU
// resources.
func (r *Resource) Ordinal() int { return r.ordinal }

// HasExecutor reports whether a local executor drains this resource's task
// table directly, without further routing.
func (r *Resource) HasExecutor() bool { return r.hasExecutor }

// TaskTable returns this resource's task queue.
func (r *Resource) TaskTable() *tasktable.TaskTable { return r.table }

// AddNeighbour records a directed edge to n with the given connection
// speed. Called only during graph construction.
func (r *Resource) AddNeighbour(n *Resource, conn Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.neighbours = append(r.neighbours, Neighbour{Resource: n, Connection: conn})
}

// Neighbours returns this resource's out-edges in stable insertion order.
func (r *Resource) Neighbours() []Neighbour {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Neighbour, len(r.neighbours))
	copy(out, r.neighbours)
	return out
}

// OnWakeup installs the callback WakeupExecutor invokes. Out of scope
// collaborators (the real executor) register it; tests may install a
// counting fake.
func (r *Resource) OnWakeup(fn func()) {
	r.wakeMu.Lock()
	defer r.wakeMu.Unlock()
	r.onWakeup = fn
}

// WakeupExecutor notifies the local executor that a task has arrived at its
// final destination. Every call increments the wakeup count; the callback
// is invoked only if one was installed.
func (r *Resource) WakeupExecutor() {
	r.wakeMu.Lock()
	defer r.wakeMu.Unlock()
	r.wakeups++
	if r.onWakeup != nil {
		r.onWakeup()
	}
}

// WakeupCount returns how many times WakeupExecutor has fired, mainly for
// tests asserting exactly-once arrival semantics.
func (r *Resource) WakeupCount() int {
	r.wakeMu.Lock()
	defer r.wakeMu.Unlock()
	return r.wakeups
}
