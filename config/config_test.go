package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *ResourceConfig {
	return &ResourceConfig{
		Mode:             ModeSimple,
		SearchResources:  "cpu, gpu0 , gpu1",
		IndexBuildDevice: "gpu1",
		Resources: []ResourceEntry{
			{Name: "disk", Type: "disk", HasExecutor: true},
			{Name: "cpu", Type: "cpu"},
			{Name: "gpu0", Type: "gpu", Ordinal: 0, HasExecutor: true},
			{Name: "gpu1", Type: "gpu", Ordinal: 1, HasExecutor: true},
		},
		Connections: []ConnectionConfig{
			{From: "disk", To: "cpu", Speed: 1},
			{From: "cpu", To: "gpu0", Speed: 1},
			{From: "cpu", To: "gpu1", Speed: 3},
		},
	}
}

func TestResourceConfig_ValidateAccepts(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestResourceConfig_SearchResourceNamesTrimsAndSplits(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, []string{"cpu", "gpu0", "gpu1"}, cfg.SearchResourceNames())
}

func TestResourceConfig_IndexBuildOrdinal(t *testing.T) {
	cfg := validConfig()
	ordinal, err := cfg.IndexBuildOrdinal()
	require.NoError(t, err)
	assert.Equal(t, 1, ordinal)
}

func TestResourceConfig_IndexBuildOrdinalRejectsBadForm(t *testing.T) {
	cfg := validConfig()
	cfg.IndexBuildDevice = "device1"
	assert.Error(t, cfg.Validate())
}

func TestResourceConfig_ValidateRejectsDuplicateNames(t *testing.T) {
	cfg := validConfig()
	cfg.Resources = append(cfg.Resources, ResourceEntry{Name: "cpu", Type: "cpu"})
	assert.Error(t, cfg.Validate())
}

func TestResourceConfig_ValidateRejectsUnknownConnectionEndpoint(t *testing.T) {
	cfg := validConfig()
	cfg.Connections = append(cfg.Connections, ConnectionConfig{From: "cpu", To: "gpu9", Speed: 1})
	assert.Error(t, cfg.Validate())
}

func TestResourceConfig_ValidateRejectsUnknownSearchResource(t *testing.T) {
	cfg := validConfig()
	cfg.SearchResources = "cpu,ghost"
	assert.Error(t, cfg.Validate())
}

func TestResourceConfig_ValidateRejectsUnknownType(t *testing.T) {
	cfg := validConfig()
	cfg.Resources[1].Type = "tpu"
	assert.Error(t, cfg.Validate())
}

func TestResourceConfig_ValidateDefaultsMode(t *testing.T) {
	cfg := validConfig()
	cfg.Mode = ""
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ModeSimple, cfg.Mode)
}
