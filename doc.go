// Package milvus implements a heterogeneous-resource task router for a
// similarity-search engine: it decides, for each task that has just become
// loadable, which compute resource (CPU or one of several GPUs) should run
// it, and moves the task across a graph of resources until it reaches an
// executor that can run it.
//
// The router is split into small, composable packages:
//
//   - resource   – the resource graph and resource manager (C1, C7)
//   - tasktable  – per-resource task queues and the one-shot move latch (C2)
//   - path       – a task's pre-planned multi-hop itinerary (C4)
//   - task       – the routable task and its labels (Task, Job, IndexEngine)
//   - cache      – the read-only GPU cache probe contract (C3)
//   - router     – placement primitives: push-to, push-all, push-random (C5)
//   - scheduler  – the DefaultLabel and SpecifiedResourceLabel policies (C6)
//   - config     – YAML resource_config.* loading and validation
//   - telemetry  – tracing spans and a placement-event bus
//
// A host service wires these together by constructing a resource.Manager at
// boot from config.ResourceConfig, then calling scheduler.OnLoadCompleted
// every time a resource finishes loading a task's data:
//
//	cfg, _ := config.Load(ctx, "resource.yaml")
//	mgr, _ := resource.NewManagerFromConfig(cfg)
//	scheduler.OnLoadCompleted(ctx, mgr, probes, self, event, pub) // pub may be nil
//
// Everything else — executing search/build tasks, populating the GPU cache,
// persisting jobs — is a collaborator reached through an interface and is
// out of scope for this module.
package milvus
