// Package scheduler implements the two load-completion policies that
// decide where a task goes next: DefaultLabel (cache-aware GPU routing with
// a weighted-random fallback) and SpecifiedResourceLabel (path-driven
// forwarding). Both are triggered by a LoadCompletedEvent on the resource
// that just finished loading the task's data.
package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/NeatNerdPrime/milvus/cache"
	"github.com/NeatNerdPrime/milvus/path"
	"github.com/NeatNerdPrime/milvus/resource"
	"github.com/NeatNerdPrime/milvus/router"
	"github.com/NeatNerdPrime/milvus/task"
	"github.com/NeatNerdPrime/milvus/tasktable"
	"github.com/NeatNerdPrime/milvus/telemetry"
)

// ErrUnknownResource is returned when SpecifiedResourceLabel's path names a
// resource absent from the manager. It is a fatal, non-retriable error.
var ErrUnknownResource = errors.New("scheduler: unknown resource")

// ErrPathInconsistent is returned when the path exhausts its hops before
// the cursor reaches a name matching self. It indicates a planner bug, not
// a transient condition.
var ErrPathInconsistent = errors.New("scheduler: path inconsistent")

// LoadCompletedEvent carries the TaskItem whose data is now resident on the
// emitting resource.
type LoadCompletedEvent struct {
	Item *tasktable.TaskItem
}

// OnLoadCompleted dispatches event to the policy matching its task's
// label. self is the resource that emitted the event; mgr resolves
// resource names for path-driven forwarding; probes answers GPU cache
// lookups for cache-aware routing. pub may be nil.
func OnLoadCompleted(ctx context.Context, mgr *resource.Manager, probes cache.Probes, self *resource.Resource, event LoadCompletedEvent, pub *telemetry.Publisher) error {
	t := event.Item.Task
	switch t.Label {
	case task.DefaultLabel:
		return DefaultLabelScheduler(ctx, mgr, probes, self, event.Item, pub)
	case task.SpecifiedResourceLabel:
		return SpecifiedResourceLabelScheduler(ctx, mgr, self, event.Item, pub)
	default:
		return fmt.Errorf("scheduler: unknown label %v", t.Label)
	}
}

// DefaultLabelScheduler implements the DefaultLabel policy (4.4.1): claim
// the item, then prefer a GPU whose cache already holds the task's working
// set over a weighted-random neighbour.
func DefaultLabelScheduler(ctx context.Context, mgr *resource.Manager, probes cache.Probes, self *resource.Resource, item *tasktable.TaskItem, pub *telemetry.Publisher) (err error) {
	ctx, span := telemetry.StartSpan(ctx, "scheduler.default_label")
	span.WithAttributes(map[string]string{"resource": self.Name()})
	defer func() { telemetry.EndSpan(span, err) }()

	if self.HasExecutor() {
		return nil
	}
	if !item.Move() {
		return nil
	}

	if self.Type() == resource.CPU && item.Task.Index != nil {
		key := item.Task.Index.GetLocation()
		if key != "" {
			for i := 0; i < mgr.GetNumGpuResource(); i++ {
				if _, hit := probes.Lookup(ctx, i, key); hit {
					gpu, ok := mgr.GetGPU(i)
					if !ok {
						continue
					}
					router.PushTaskToResource(item, gpu)
					publish(ctx, pub, item, self.Name(), gpu.Name(), "cache-hit")
					return nil
				}
			}
		}
	}

	router.PushTaskToNeighbourRandomly(item, self)
	publish(ctx, pub, item, self.Name(), "", "random-fallback")
	return nil
}

// SpecifiedResourceLabelScheduler wakes the local executor on arrival,
// otherwise advances the path and forwards. It assumes the path already
// arrived pre-planned on the task; building that plan — e.g. picking a
// build GPU by shortest path from disk — belongs to a planner this package
// does not implement.
func SpecifiedResourceLabelScheduler(ctx context.Context, mgr *resource.Manager, self *resource.Resource, item *tasktable.TaskItem, pub *telemetry.Publisher) (err error) {
	ctx, span := telemetry.StartSpan(ctx, "scheduler.specified_resource_label")
	span.WithAttributes(map[string]string{"resource": self.Name()})
	defer func() { telemetry.EndSpan(span, err) }()

	p := item.Task.Path
	if self.Name() == p.Last() {
		self.WakeupExecutor()
		publish(ctx, pub, item, self.Name(), self.Name(), "arrived")
		return nil
	}

	// Path routing is deterministic and self-clamping: re-forwarding a
	// claimed item is safe because Put is idempotent. The return value is
	// intentionally discarded.
	item.Move()

	nextName, err := p.Next()
	if err != nil {
		if errors.Is(err, path.ErrPathExhausted) {
			return fmt.Errorf("%w: path exhausted before reaching %q", ErrPathInconsistent, p.Last())
		}
		return err
	}
	next, ok := mgr.GetResource(nextName)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownResource, nextName)
	}
	router.PushTaskToResource(item, next)
	publish(ctx, pub, item, self.Name(), next.Name(), "forwarded")
	return nil
}

func publish(ctx context.Context, pub *telemetry.Publisher, item *tasktable.TaskItem, from, to, reason string) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, telemetry.PlacementEvent{
		TaskID:       item.Task.ID,
		FromResource: from,
		ToResource:   to,
		Reason:       reason,
	})
}
