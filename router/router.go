// Package router implements the three placement primitives scheduler
// policies build on: push to a specific resource, broadcast to every
// neighbour, and weighted-random selection among neighbours.
package router

import (
	"log"
	"math/rand"

	"github.com/NeatNerdPrime/milvus/resource"
	"github.com/NeatNerdPrime/milvus/tasktable"
)

// Rand is the injectable randomness source PushTaskToNeighbourRandomly
// draws from. Tests substitute a seeded *rand.Rand to make weighted
// selection deterministic.
type Rand interface {
	// Intn returns a pseudo-random int in [0, n).
	Intn(n int) int
}

// DefaultRand is the package-level RNG used when callers don't inject one.
var DefaultRand Rand = rand.New(rand.NewSource(rand.Int63()))

// PushTaskToResource places item onto dest's task table. The table handles
// its own concurrency; this call never fails.
func PushTaskToResource(item *tasktable.TaskItem, dest *resource.Resource) {
	dest.TaskTable().Put(item)
}

// PushTaskToAllNeighbour places item on every out-neighbour of self. The
// item's Move latch ensures only one neighbour's scheduler successfully
// claims execution responsibility even though the item now appears in
// multiple tables.
func PushTaskToAllNeighbour(item *tasktable.TaskItem, self *resource.Resource) {
	for _, n := range self.Neighbours() {
		PushTaskToResource(item, n.Resource)
	}
}

// PushTaskToNeighbourRandomly draws a neighbour of self with probability
// proportional to connection speed and places item there. If self has no
// neighbours it logs a warning and leaves item untouched.
//
// The draw is uniform over the inclusive integer range [0, S] where S is
// the sum of neighbour speeds, matching uniform_int_distribution<int>(0, S)
// semantics: S itself carries the same single-step probability mass as any
// other value. Neighbours are walked in stable order, subtracting speed
// from the draw until the remainder is <= 0; an all-zero-speed draw of 0
// picks the first neighbour.
func PushTaskToNeighbourRandomly(item *tasktable.TaskItem, self *resource.Resource) {
	pushTaskToNeighbourRandomly(item, self, DefaultRand)
}

// pushTaskToNeighbourRandomly is the testable, RNG-injected core of
// PushTaskToNeighbourRandomly.
func pushTaskToNeighbourRandomly(item *tasktable.TaskItem, self *resource.Resource, rnd Rand) {
	neighbours := self.Neighbours()
	if len(neighbours) == 0 {
		log.Printf("router: no neighbours to push task onto from resource %q", self.Name())
		return
	}

	var total uint64
	for _, n := range neighbours {
		total += n.Connection.Speed
	}

	// Draw r uniformly from [0, total] inclusive: Intn(total+1).
	r := int64(rnd.Intn(int(total) + 1))

	chosen := neighbours[0].Resource
	for _, n := range neighbours {
		chosen = n.Resource
		r -= int64(n.Connection.Speed)
		if r <= 0 {
			break
		}
	}
	PushTaskToResource(item, chosen)
}
