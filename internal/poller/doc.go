// Package poller fetches pairing artifacts for the selected session
// while it is in the pairing window. Polling is scoped to the current
// selection, stops on its own when the session connects, and disables
// itself after repeated failures until the operator retries.
package poller
