// Command routersim wires a small resource graph together and drives it
// through both scheduler policies, printing the resulting placements. It
// exists to exercise the router end to end outside of the test suite.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/NeatNerdPrime/milvus/cache"
	"github.com/NeatNerdPrime/milvus/config"
	"github.com/NeatNerdPrime/milvus/path"
	"github.com/NeatNerdPrime/milvus/resource"
	"github.com/NeatNerdPrime/milvus/scheduler"
	"github.com/NeatNerdPrime/milvus/task"
	"github.com/NeatNerdPrime/milvus/tasktable"
	"github.com/NeatNerdPrime/milvus/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "routersim:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	if err := telemetry.Init("routersim", "dev", ""); err != nil {
		return fmt.Errorf("telemetry init: %w", err)
	}

	cfg := &config.ResourceConfig{
		SearchResources:  "cpu,gpu0,gpu1",
		IndexBuildDevice: "gpu1",
		Resources: []config.ResourceEntry{
			{Name: "disk", Type: "disk", HasExecutor: true},
			{Name: "cpu", Type: "cpu"},
			{Name: "gpu0", Type: "gpu", Ordinal: 0, HasExecutor: true},
			{Name: "gpu1", Type: "gpu", Ordinal: 1, HasExecutor: true},
		},
		Connections: []config.ConnectionConfig{
			{From: "disk", To: "cpu", Speed: 1},
			{From: "cpu", To: "gpu0", Speed: 1},
			{From: "cpu", To: "gpu1", Speed: 3},
		},
	}

	mgr, err := resource.NewManagerFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("building resource graph: %w", err)
	}

	for _, gpu := range []string{"gpu0", "gpu1"} {
		r, _ := mgr.GetResource(gpu)
		r.OnWakeup(func(name string) func() {
			return func() { fmt.Printf("%s: executor woken\n", name) }
		}(gpu))
	}

	events := telemetry.NewMemQueue[telemetry.PlacementEvent](16)
	pub := telemetry.NewPublisher(events)
	printed := make(chan struct{}, 16)
	telemetry.Listen(ctx, events, func(ev telemetry.PlacementEvent) {
		fmt.Printf("placement: task=%s from=%s to=%s reason=%s\n", ev.TaskID, ev.FromResource, ev.ToResource, ev.Reason)
		printed <- struct{}{}
	})

	probes := cache.Probes{
		1: cache.ProbeFunc(func(ctx context.Context, ordinal int, key cache.ArtifactKey) (cache.IndexHandle, bool) {
			if key == "loc-A" {
				return cache.IndexHandle{Key: key, Location: "gpu1:loc-A"}, true
			}
			return cache.IndexHandle{}, false
		}),
	}

	cpu, _ := mgr.GetResource("cpu")
	searchTask := task.New(&task.Job{ID: "job-1", Type: task.Search}, task.DefaultLabel, nil, task.StaticIndexEngine("loc-A"))
	searchItem := tasktable.NewItem(searchTask)
	if err := scheduler.DefaultLabelScheduler(ctx, mgr, probes, cpu, searchItem, pub); err != nil {
		return fmt.Errorf("default-label scheduling: %w", err)
	}

	buildPath := path.New("disk", "cpu", "gpu1")
	_, _ = buildPath.Next() // dispatch assumed the task already landed on cpu
	buildTask := task.New(&task.Job{ID: "job-2", Type: task.Build}, task.SpecifiedResourceLabel, buildPath, nil)
	buildItem := tasktable.NewItem(buildTask)
	if err := scheduler.SpecifiedResourceLabelScheduler(ctx, mgr, cpu, buildItem, pub); err != nil {
		return fmt.Errorf("specified-resource scheduling: %w", err)
	}
	gpu1, _ := mgr.GetResource("gpu1")
	if err := scheduler.SpecifiedResourceLabelScheduler(ctx, mgr, gpu1, buildItem, pub); err != nil {
		return fmt.Errorf("specified-resource arrival: %w", err)
	}

	// Three events were published (cache-hit, forwarded, arrived); wait until
	// the listener has printed them all.
	for i := 0; i < 3; i++ {
		<-printed
	}
	return nil
}
