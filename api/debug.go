// Package api
// Author: momentics
//
// Live debug support for production workloads.

package api

// Debug is a registry of named probes. Pools, block pools and the platform
// publish their counters through it; the debug HTTP endpoint and Control.Stats
// read the snapshot.
type Debug interface {
	// DumpState calls every probe and returns the results keyed by probe
	// name. Probes run outside the registry lock and may register others.
	DumpState() map[string]any

	// RegisterProbe adds or replaces a probe. A nil fn removes it.
	RegisterProbe(name string, fn func() any)
}
