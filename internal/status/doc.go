// Package status exposes the monitor's current view over a small HTTP API.
//
// The endpoint is optional and off by default; when enabled it serves the
// last confirmed state, the offline streak, and a short ring of recent
// notifications. The backing view is updated once per poll cycle by the
// monitor and guarded by a mutex, keeping the poll loop itself single-
// threaded.
package status
