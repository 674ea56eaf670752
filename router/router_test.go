package router

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NeatNerdPrime/milvus/resource"
	"github.com/NeatNerdPrime/milvus/task"
	"github.com/NeatNerdPrime/milvus/tasktable"
)

func newCPUWithGPUs(speeds ...uint64) (*resource.Resource, []*resource.Resource) {
	cpu := resource.New("cpu", resource.CPU, 0, false)
	gpus := make([]*resource.Resource, len(speeds))
	for i, s := range speeds {
		gpu := resource.New("gpu"+string(rune('0'+i)), resource.GPU, i, true)
		cpu.AddNeighbour(gpu, resource.Connection{Speed: s})
		gpus[i] = gpu
	}
	return cpu, gpus
}

func TestPushTaskToResource_PlacesItemInDestinationTable(t *testing.T) {
	dest := resource.New("gpu0", resource.GPU, 0, true)
	item := tasktable.NewItem(&task.Task{ID: "t1"})

	PushTaskToResource(item, dest)

	assert.Equal(t, 1, dest.TaskTable().Len())
	assert.Same(t, item, dest.TaskTable().Items()[0])
}

func TestPushTaskToAllNeighbour_BroadcastsToEveryNeighbour(t *testing.T) {
	cpu, gpus := newCPUWithGPUs(1, 1, 1)
	item := tasktable.NewItem(&task.Task{ID: "t1"})

	PushTaskToAllNeighbour(item, cpu)

	for _, gpu := range gpus {
		assert.Equal(t, 1, gpu.TaskTable().Len())
	}
}

func TestPushTaskToNeighbourRandomly_LeafResourceIsNoop(t *testing.T) {
	leaf := resource.New("gpu0", resource.GPU, 0, true)
	item := tasktable.NewItem(&task.Task{ID: "t1"})

	assert.NotPanics(t, func() { PushTaskToNeighbourRandomly(item, leaf) })
	assert.False(t, item.Moved())
}

func TestPushTaskToNeighbourRandomly_WeightedDistributionWithinTolerance(t *testing.T) {
	cpu, gpus := newCPUWithGPUs(1, 3)
	rnd := rand.New(rand.NewSource(42))

	const trials = 10000
	for i := 0; i < trials; i++ {
		item := tasktable.NewItem(&task.Task{ID: "t"})
		pushTaskToNeighbourRandomly(item, cpu, rnd)
	}

	share := float64(gpus[1].TaskTable().Len()) / float64(trials)
	assert.True(t, share >= 0.72 && share <= 0.78, "gpu1 share %.3f outside [0.72,0.78]", share)
}

func TestPushTaskToNeighbourRandomly_AllZeroSpeedPicksFirstNeighbour(t *testing.T) {
	cpu, gpus := newCPUWithGPUs(0, 0)
	item := tasktable.NewItem(&task.Task{ID: "t1"})
	rnd := rand.New(rand.NewSource(1))

	pushTaskToNeighbourRandomly(item, cpu, rnd)

	require.Equal(t, 1, gpus[0].TaskTable().Len())
	assert.Equal(t, 0, gpus[1].TaskTable().Len())
}
