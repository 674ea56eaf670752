// Package cache defines the read-only contract the router uses to ask
// whether a GPU already holds a task's index data in its cache. The router
// never populates or evicts cache entries itself — that is the executor's
// job — it only probes.
package cache

import "context"

// ArtifactKey identifies a piece of index data a task needs resident on a
// GPU before it can run there. Two tasks that need the same underlying
// index share the same ArtifactKey.
type ArtifactKey string

// IndexHandle is an opaque reference to cached index data returned by a
// successful probe. The router never dereferences it; it only forwards it
// to whichever resource ultimately runs the task.
type IndexHandle struct {
	Key      ArtifactKey
	Location string
}

// Probe is the injected capability a scheduler uses to ask a single GPU
// resource whether it already has key cached. Implementations must be safe
// for concurrent use and must never block on executor state — a probe is
// expected to answer from an in-memory index, not from storage.
type Probe interface {
	// GetIndex reports whether ordinal's cache currently holds key, and if
	// so returns a handle to it.
	GetIndex(ctx context.Context, ordinal int, key ArtifactKey) (IndexHandle, bool)
}

// ProbeFunc adapts a plain function to a Probe, mirroring the pattern used
// throughout this module for injecting fakes into tests.
type ProbeFunc func(ctx context.Context, ordinal int, key ArtifactKey) (IndexHandle, bool)

// GetIndex implements Probe.
func (f ProbeFunc) GetIndex(ctx context.Context, ordinal int, key ArtifactKey) (IndexHandle, bool) {
	return f(ctx, ordinal, key)
}

// Probes indexes a Probe per GPU ordinal, matching the per-device cache
// manager instances in the original engine (one cache per physical GPU).
type Probes map[int]Probe

// Lookup probes the cache for ordinal, returning (IndexHandle{}, false) if no
// probe is registered for that ordinal.
func (p Probes) Lookup(ctx context.Context, ordinal int, key ArtifactKey) (IndexHandle, bool) {
	probe, ok := p[ordinal]
	if !ok {
		return IndexHandle{}, false
	}
	return probe.GetIndex(ctx, ordinal, key)
}
