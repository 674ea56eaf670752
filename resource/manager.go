package resource

import (
	"fmt"
	"strings"
	"sync"

	"github.com/NeatNerdPrime/milvus/config"
)

// Manager is the registry of all resources built from configuration at
// boot. Resource identity and topology are immutable after construction;
// lookups take only a read lock.
type Manager struct {
	byName  map[string]*Resource
	gpus    []*Resource // indexed by ordinal, gaps are nil
	compute []*Resource // CPU + all GPUs, in registration order
	mu      sync.RWMutex
}

// NewManager builds an empty Manager. Resources are added with AddResource
// and wired with AddConnection before the graph is used for routing.
func NewManager() *Manager {
	return &Manager{byName: make(map[string]*Resource)}
}

// AddResource registers r. Registering a name twice is an error.
func (m *Manager) AddResource(r *Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.byName[r.Name()]; dup {
		return fmt.Errorf("resource: duplicate resource name %q", r.Name())
	}
	m.byName[r.Name()] = r
	if r.Type() == GPU {
		for len(m.gpus) <= r.Ordinal() {
			m.gpus = append(m.gpus, nil)
		}
		m.gpus[r.Ordinal()] = r
	}
	if r.Type() == CPU || r.Type() == GPU {
		m.compute = append(m.compute, r)
	}
	return nil
}

// AddConnection wires a directed edge fromName -> toName with the given
// speed. Both endpoints must already be registered.
func (m *Manager) AddConnection(fromName, toName string, speed uint64) error {
	from, ok := m.GetResource(fromName)
	if !ok {
		return fmt.Errorf("resource: unknown source resource %q", fromName)
	}
	to, ok := m.GetResource(toName)
	if !ok {
		return fmt.Errorf("resource: unknown destination resource %q", toName)
	}
	from.AddNeighbour(to, Connection{Speed: speed})
	return nil
}

// GetResource looks up a resource by its unique name.
func (m *Manager) GetResource(name string) (*Resource, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.byName[name]
	return r, ok
}

// GetGPU looks up a GPU resource by its ordinal.
func (m *Manager) GetGPU(ordinal int) (*Resource, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if ordinal < 0 || ordinal >= len(m.gpus) || m.gpus[ordinal] == nil {
		return nil, false
	}
	return m.gpus[ordinal], true
}

// GetNumGpuResource returns how many GPU ordinal slots are registered,
// including any unfilled gaps — callers iterate 0..n-1 and treat a gap as a
// cache/probe miss.
func (m *Manager) GetNumGpuResource() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.gpus)
}

// GetComputeResources returns CPU and GPU resources in registration order.
func (m *Manager) GetComputeResources() []*Resource {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Resource, len(m.compute))
	copy(out, m.compute)
	return out
}

// NewManagerFromConfig builds a fully-wired Manager from a ResourceConfig,
// as read by config.Load at boot.
func NewManagerFromConfig(cfg *config.ResourceConfig) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("resource: invalid config: %w", err)
	}
	m := NewManager()
	for _, entry := range cfg.Resources {
		var typ Type
		switch strings.ToLower(entry.Type) {
		case "disk":
			typ = Disk
		case "cpu":
			typ = CPU
		case "gpu":
			typ = GPU
		default:
			return nil, fmt.Errorf("resource: unknown type %q for %q", entry.Type, entry.Name)
		}
		if err := m.AddResource(New(entry.Name, typ, entry.Ordinal, entry.HasExecutor)); err != nil {
			return nil, err
		}
	}
	for _, conn := range cfg.Connections {
		if err := m.AddConnection(conn.From, conn.To, conn.Speed); err != nil {
			return nil, err
		}
	}
	return m, nil
}
