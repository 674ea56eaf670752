// Package path implements a task's pre-planned multi-hop itinerary across
// the resource graph: an ordered list of resource names with a cursor that
// only ever advances.
package path

import "errors"

// ErrPathExhausted is returned by Next when the cursor is already at the
// last element and cannot advance further.
var ErrPathExhausted = errors.New("path: exhausted")

// Path is an ordered, immutable sequence of resource names with an internal
// cursor that always points at the resource the task currently occupies.
// Next() advances the cursor to the following hop and returns its name;
// Current() peeks at where the task is right now without moving the cursor.
type Path struct {
	resources []string
	cursor    int
}

// New builds a Path over resources with the cursor positioned at the first
// element — the resource the task originates on.
func New(resources ...string) *Path {
	return &Path{resources: append([]string(nil), resources...)}
}

// NewAt builds a Path with the cursor pre-positioned at cursor, used when a
// planner hands off a partially-walked path.
func NewAt(resources []string, cursor int) *Path {
	return &Path{resources: append([]string(nil), resources...), cursor: cursor}
}

// Last returns the final resource name without moving the cursor.
func (p *Path) Last() string {
	if len(p.resources) == 0 {
		return ""
	}
	return p.resources[len(p.resources)-1]
}

// Current peeks at the resource name the cursor currently points to.
func (p *Path) Current() string {
	if p.cursor < 0 || p.cursor >= len(p.resources) {
		return ""
	}
	return p.resources[p.cursor]
}

// Next advances the cursor by one hop and returns the resource name it now
// points to. It returns ErrPathExhausted if the cursor was already at the
// last element.
func (p *Path) Next() (string, error) {
	if p.cursor+1 >= len(p.resources) {
		return "", ErrPathExhausted
	}
	p.cursor++
	return p.resources[p.cursor], nil
}

// Len returns the number of hops in the path.
func (p *Path) Len() int { return len(p.resources) }

// Cursor returns the current cursor position, mainly for tests and
// diagnostics.
func (p *Path) Cursor() int { return p.cursor }
