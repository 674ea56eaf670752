// Package config loads and validates the resource_config.* settings the
// router reads once at boot: the graph topology, connection speeds, the
// search-resource list and the index-build device. Everything else the
// enclosing server configures is out of scope here.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/structology/conv"
	"gopkg.in/yaml.v3"
)

// Mode is the resource_config.mode key. Only "simple" is defined; Validate
// fills it in when empty and accepts any other value unchanged, and
// resource.NewManagerFromConfig builds the graph the same way whatever the
// mode.
type Mode string

const (
	ModeSimple Mode = "simple"
)

// ConnectionConfig describes one directed edge in the resource graph.
type ConnectionConfig struct {
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Speed uint64 `yaml:"speed"`
}

// ResourceEntry describes one node in the resource graph as read from YAML.
type ResourceEntry struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"` // "disk", "cpu", "gpu"
	Ordinal     int    `yaml:"ordinal"`
	HasExecutor bool   `yaml:"hasExecutor"`
}

// ResourceConfig is the root of resource_config.* as loaded from YAML.
type ResourceConfig struct {
	Mode             Mode               `yaml:"mode"`
	SearchResources  string             `yaml:"searchResources"`  // comma-separated resource names
	IndexBuildDevice string             `yaml:"indexBuildDevice"` // e.g. "gpu0"
	Resources        []ResourceEntry    `yaml:"resources"`
	Connections      []ConnectionConfig `yaml:"connections"`
}

// Load reads and decodes a ResourceConfig from URL using afs, so the same
// code path works for local paths, embed:// and any other afs-backed
// scheme the host wires in.
func Load(ctx context.Context, url string) (*ResourceConfig, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("config: failed to download %s: %w", url, err)
	}
	cfg := &ResourceConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", url, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", url, err)
	}
	return cfg, nil
}

// SearchResourceNames splits SearchResources on commas, trimming whitespace
// and dropping empty entries.
func (c *ResourceConfig) SearchResourceNames() []string {
	var out []string
	for _, name := range strings.Split(c.SearchResources, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// IndexBuildOrdinal parses the trailing digits of IndexBuildDevice (e.g.
// "gpu0" -> 0). It mirrors the original engine's convention of encoding the
// build device as a GPU-prefixed ordinal string.
func (c *ResourceConfig) IndexBuildOrdinal() (int, error) {
	converter := conv.NewConverter(conv.DefaultOptions())
	digits := strings.TrimPrefix(strings.ToLower(c.IndexBuildDevice), "gpu")
	if digits == c.IndexBuildDevice || digits == "" {
		return 0, fmt.Errorf("config: invalid indexBuildDevice %q, expected form gpuN", c.IndexBuildDevice)
	}
	var ordinal int
	if err := converter.Convert(digits, &ordinal); err != nil {
		return 0, fmt.Errorf("config: invalid indexBuildDevice %q: %w", c.IndexBuildDevice, err)
	}
	return ordinal, nil
}

// Validate checks the structural invariants a resource graph builder
// depends on: every connection references a declared resource, GPU entries
// carry non-negative ordinals, and names are unique.
func (c *ResourceConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = ModeSimple
	}
	seen := make(map[string]ResourceEntry, len(c.Resources))
	for _, r := range c.Resources {
		if r.Name == "" {
			return fmt.Errorf("resource entry with empty name")
		}
		if _, dup := seen[r.Name]; dup {
			return fmt.Errorf("duplicate resource name %q", r.Name)
		}
		switch strings.ToLower(r.Type) {
		case "disk", "cpu", "gpu":
		default:
			return fmt.Errorf("resource %q: unknown type %q", r.Name, r.Type)
		}
		if strings.ToLower(r.Type) == "gpu" && r.Ordinal < 0 {
			return fmt.Errorf("resource %q: gpu ordinal must be >= 0, got %d", r.Name, r.Ordinal)
		}
		seen[r.Name] = r
	}
	for _, conn := range c.Connections {
		if _, ok := seen[conn.From]; !ok {
			return fmt.Errorf("connection from unknown resource %q", conn.From)
		}
		if _, ok := seen[conn.To]; !ok {
			return fmt.Errorf("connection to unknown resource %q", conn.To)
		}
	}
	if c.IndexBuildDevice != "" {
		if _, err := c.IndexBuildOrdinal(); err != nil {
			return err
		}
	}
	for _, name := range c.SearchResourceNames() {
		if _, ok := seen[name]; !ok {
			return fmt.Errorf("searchResources names unknown resource %q", name)
		}
	}
	return nil
}
