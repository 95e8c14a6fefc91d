// Package mcwatch monitors a Minecraft server's public status and posts
// human-readable notifications to a chat webhook when meaningful state
// changes occur: the server going online or offline, version or gamemode
// changes, and players joining or leaving.
//
// mcwatch is designed as an SDK-first library. The core of the package is
// [Evaluate], a pure state-diffing engine that turns noisy, periodically
// sampled API snapshots into a minimal set of trustworthy change events,
// debouncing offline detection so a transient API or network failure never
// produces a false OFFLINE alert.
//
// # Quick Start
//
// Create a monitor and run it with graceful shutdown:
//
//	m, _ := mcwatch.New(
//	    mcwatch.WithServer("play.example.com:19132"),
//	    mcwatch.WithWebhookURL(os.Getenv("DISCORD_WEBHOOK_URL")),
//	)
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	m.Start(ctx) // blocks until context is cancelled
//
// # Configuration
//
// mcwatch uses the functional options pattern:
//
//	m, err := mcwatch.New(
//	    mcwatch.WithServer("mc.example.com"),
//	    mcwatch.WithServerType(mcwatch.ServerTypeJava),
//	    mcwatch.WithCheckInterval(time.Minute),
//	    mcwatch.WithOfflineThreshold(3),
//	    mcwatch.WithStatePath("/var/lib/mcwatch/state.json"),
//	)
//
// # Offline Debounce
//
// A single failed or offline poll is never trusted on its own. Fetch
// failures and API-reported offline results advance a shared streak
// counter; only when the streak reaches the configured threshold is the
// server confirmed offline and a notification sent. Any successful online
// poll resets the streak. The confirmed state survives restarts via an
// atomically written JSON state file.
//
// # Architecture
//
// The package consists of several internal packages (under internal/):
//
//   - internal/fetcher: status API client with failure classification
//   - internal/statestore: atomic JSON persistence of the confirmed state
//   - internal/notify: webhook and stdout notification sinks
//   - internal/status: optional HTTP endpoint exposing the current view
//
// The internal packages are not part of the public API and may change
// without notice.
package mcwatch
