// Package task defines the routable task and the labels that select which
// scheduler policy governs it.
package task

import (
	"time"

	"github.com/NeatNerdPrime/milvus/cache"
	"github.com/NeatNerdPrime/milvus/internal/clock"
	"github.com/NeatNerdPrime/milvus/internal/idgen"
	"github.com/NeatNerdPrime/milvus/path"
)

// JobType distinguishes the two kinds of work a Job can carry.
type JobType int

const (
	// Search runs a similarity query against an already-built index.
	Search JobType = iota
	// Build constructs an index from raw vectors.
	Build
)

func (t JobType) String() string {
	switch t {
	case Search:
		return "search"
	case Build:
		return "build"
	default:
		return "unknown"
	}
}

// Label selects which scheduler policy governs a task's placement.
type Label int

const (
	// DefaultLabel routes via cache-aware GPU selection with a weighted
	// random fallback.
	DefaultLabel Label = iota
	// SpecifiedResourceLabel routes by walking a pre-planned Path.
	SpecifiedResourceLabel
)

func (l Label) String() string {
	switch l {
	case DefaultLabel:
		return "default"
	case SpecifiedResourceLabel:
		return "specified-resource"
	default:
		return "unknown"
	}
}

// Job is the unit of work a Task belongs to: a search or a build request
// submitted by a caller outside this module.
type Job struct {
	ID   string
	Type JobType
}

// IndexEngine exposes the location of a task's working set so the
// DefaultLabel policy can probe for a warm GPU cache before falling back to
// random placement. A Task with no IndexEngine always falls through to
// random placement.
type IndexEngine interface {
	// GetLocation returns the artifact key identifying the cached working
	// set this task would run against, if any.
	GetLocation() cache.ArtifactKey
}

// StaticIndexEngine is the common IndexEngine implementation: a fixed
// artifact key known at task-build time.
type StaticIndexEngine cache.ArtifactKey

// GetLocation implements IndexEngine.
func (s StaticIndexEngine) GetLocation() cache.ArtifactKey { return cache.ArtifactKey(s) }

// Task is the handle routed across the resource graph.
type Task struct {
	ID        string
	CreatedAt time.Time
	Job       *Job
	Label     Label
	Path      *path.Path
	Index     IndexEngine
}

// New builds a Task with a generated ID and CreatedAt timestamp, per the
// module's injectable clock and id generator.
func New(job *Job, label Label, p *path.Path, index IndexEngine) *Task {
	return &Task{
		ID:        idgen.New(),
		CreatedAt: clock.Now(),
		Job:       job,
		Label:     label,
		Path:      p,
		Index:     index,
	}
}
