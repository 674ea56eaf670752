package tasktable

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NeatNerdPrime/milvus/task"
)

func TestTaskItem_MoveIsOneShot(t *testing.T) {
	item := NewItem(&task.Task{})
	assert.True(t, item.Move())
	assert.False(t, item.Move())
	assert.True(t, item.Moved())
}

func TestTaskItem_MoveExclusiveUnderConcurrency(t *testing.T) {
	item := NewItem(&task.Task{})

	var wg sync.WaitGroup
	var successes int32
	var mu sync.Mutex

	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if item.Move() {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes)
}

func TestTaskTable_PutPreservesOrderAndIsIdempotent(t *testing.T) {
	table := NewTable()
	a := NewItem(&task.Task{ID: "a"})
	b := NewItem(&task.Task{ID: "b"})

	table.Put(a)
	table.Put(b)
	table.Put(a) // idempotent re-put

	items := table.Items()
	assert.Len(t, items, 2)
	assert.Same(t, a, items[0])
	assert.Same(t, b, items[1])
	assert.Equal(t, 2, table.Len())
	assert.True(t, table.Contains(a))
}

func TestTaskTable_ConcurrentPutsNeverDuplicate(t *testing.T) {
	table := NewTable()
	item := NewItem(&task.Task{ID: "shared"})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			table.Put(item)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, table.Len())
}
