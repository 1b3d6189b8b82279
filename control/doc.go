// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics, configuration and debug introspection layer of the
// concurrency toolkit.
//
// Provides:
//   - Prometheus collectors fed by ThreadPool lifecycle hooks
//   - Named debug probes and platform probes
//   - YAML configuration with defaults and validation
//   - zerolog logger construction
//   - An HTTP router exposing metrics, probe state and health
package control
