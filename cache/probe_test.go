package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProbes_LookupMissingOrdinalIsMiss(t *testing.T) {
	probes := Probes{}
	_, ok := probes.Lookup(context.Background(), 0, "loc-A")
	assert.False(t, ok)
}

func TestProbes_LookupDelegatesToRegisteredProbe(t *testing.T) {
	probes := Probes{
		1: ProbeFunc(func(ctx context.Context, ordinal int, key ArtifactKey) (IndexHandle, bool) {
			if key == "loc-A" {
				return IndexHandle{Key: key, Location: "gpu1:loc-A"}, true
			}
			return IndexHandle{}, false
		}),
	}

	handle, ok := probes.Lookup(context.Background(), 1, "loc-A")
	assert.True(t, ok)
	assert.Equal(t, ArtifactKey("loc-A"), handle.Key)

	_, ok = probes.Lookup(context.Background(), 1, "loc-B")
	assert.False(t, ok)
}
