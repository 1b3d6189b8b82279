// Package adapters
// Author: momentics <momentics@gmail.com>
//
// Control adapter implementing api.Control on top of control.DebugProbes.

package adapters

import (
	"github.com/momentics/hioload-conc/api"
	"github.com/momentics/hioload-conc/control"
	"github.com/momentics/hioload-conc/internal/concurrency"
	"github.com/momentics/hioload-conc/pool"
)

// ControlAdapter aggregates probes of every attached component.
type ControlAdapter struct {
	debug *control.DebugProbes
}

var _ api.Control = (*ControlAdapter)(nil)

// NewControlAdapter wraps probes, creating a registry when nil, and adds the
// platform probes.
func NewControlAdapter(probes *control.DebugProbes) *ControlAdapter {
	if probes == nil {
		probes = control.NewDebugProbes()
	}
	control.RegisterPlatformProbes(probes)
	return &ControlAdapter{debug: probes}
}

// AttachPool publishes the pool counters under pool.<id>.
func (c *ControlAdapter) AttachPool(p *concurrency.ThreadPool) {
	c.debug.RegisterProbe("pool."+p.ID(), func() any {
		return p.Stats().Map()
	})
}

// AttachBlockPool publishes allocator counters under blocks.<name>.
func (c *ControlAdapter) AttachBlockPool(name string, bp *pool.BlockPool) {
	c.debug.RegisterProbe("blocks."+name, func() any {
		st := bp.Stats()
		return map[string]any{
			"capacity":   bp.Capacity(),
			"block_size": bp.BlockSize(),
			"available":  bp.Available(),
			"allocated":  st.Allocated,
			"released":   st.Released,
			"exhausted":  st.Exhausted,
			"in_use":     st.InUse,
		}
	})
}

// Stats returns every probe output, keyed debug.<probe>.
func (c *ControlAdapter) Stats() map[string]any {
	state := c.debug.DumpState()
	combined := make(map[string]any, len(state))
	for k, v := range state {
		combined["debug."+k] = v
	}
	return combined
}

// RegisterDebugProbe adds a custom probe.
func (c *ControlAdapter) RegisterDebugProbe(name string, fn func() any) {
	c.debug.RegisterProbe(name, fn)
}

// Probes returns the underlying registry, e.g. for control.NewRouter.
func (c *ControlAdapter) Probes() *control.DebugProbes {
	return c.debug
}
