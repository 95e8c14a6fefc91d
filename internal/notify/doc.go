// Package notify delivers rendered notification text to a chat webhook, or
// to stdout with a timestamp prefix when no webhook is configured.
//
// Delivery is best-effort: failures are reported to the caller for logging
// and never retried.
package notify
