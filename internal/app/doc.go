// Package app wires the zapdeck runtime together: configuration,
// stored credentials, the gateway client, the sync engine (registry,
// conversation store, poller, hub, stream), file logging, and finally
// the TUI. Run blocks until the interface exits or the context is
// cancelled.
package app
