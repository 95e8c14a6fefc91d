package mcwatch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/philipovic/mcwatch/internal/fetcher"
	"github.com/philipovic/mcwatch/internal/notify"
	"github.com/philipovic/mcwatch/internal/statestore"
	"github.com/philipovic/mcwatch/internal/status"
)

const (
	defaultCheckInterval    = 5 * time.Minute
	defaultOfflineThreshold = 2
	defaultRequestTimeout   = 10 * time.Second
	defaultAPIBaseURL       = "https://api.mcsrvstat.us"
	defaultStatePath        = "mcwatch_state.json"
)

// errConfigServerRequired is returned by [New] when no server address was
// configured. This is the only fatal configuration error; everything else
// has a default.
var errConfigServerRequired = errors.New("a server address is required (use WithServer)")

// Monitor polls a game server's status API on a fixed interval and emits
// chat notifications when meaningful state changes occur.
//
// Monitor is created with [New] using functional options and started with
// [Monitor.Start]. One poll cycle runs to completion (fetch, diff, notify,
// persist) before the next begins; there are never concurrent cycles. The
// caller controls the lifecycle via the context:
//
//	m, err := mcwatch.New(
//	    mcwatch.WithServer("play.example.com:19132"),
//	    mcwatch.WithWebhookURL(os.Getenv("DISCORD_WEBHOOK_URL")),
//	)
//	if err != nil {
//	    slog.Error("failed to create monitor", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	m.Start(ctx) // blocks until context cancelled
type Monitor struct {
	server           string
	serverType       ServerType
	interval         time.Duration
	offlineThreshold int
	requestTimeout   time.Duration
	apiBaseURL       string
	webhookURL       string
	statePath        string
	statusPort       int
	logger           *slog.Logger
	sink             Sink
	eventCallbacks   []func(ChangeEvent)
}

// New creates a [Monitor] with the given options.
//
// A server address ([WithServer]) is required; everything else has
// defaults: Bedrock edition, 5 minute interval, offline threshold 2,
// 10 second request timeout, stdout notifications, state persisted to
// "mcwatch_state.json".
func New(opts ...Option) (*Monitor, error) {
	cfg := &monitorConfig{
		serverType:       ServerTypeBedrock,
		interval:         defaultCheckInterval,
		offlineThreshold: defaultOfflineThreshold,
		requestTimeout:   defaultRequestTimeout,
		apiBaseURL:       defaultAPIBaseURL,
		statePath:        defaultStatePath,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.server == "" {
		return nil, errConfigServerRequired
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	sink := cfg.sink
	if sink == nil {
		if cfg.webhookURL != "" {
			sink = notify.NewWebhookSink(cfg.webhookURL, cfg.requestTimeout)
		} else {
			sink = notify.NewStdoutSink(os.Stdout, nil)
		}
	}

	return &Monitor{
		server:           cfg.server,
		serverType:       cfg.serverType,
		interval:         cfg.interval,
		offlineThreshold: cfg.offlineThreshold,
		requestTimeout:   cfg.requestTimeout,
		apiBaseURL:       cfg.apiBaseURL,
		webhookURL:       cfg.webhookURL,
		statePath:        cfg.statePath,
		statusPort:       cfg.statusPort,
		logger:           logger,
		sink:             sink,
		eventCallbacks:   cfg.eventCallbacks,
	}, nil
}

// Server returns the monitored server address.
func (m *Monitor) Server() string {
	return m.server
}

// CheckInterval returns the configured interval between poll cycles.
func (m *Monitor) CheckInterval() time.Duration {
	return m.interval
}

// OfflineThreshold returns the configured offline debounce threshold.
func (m *Monitor) OfflineThreshold() int {
	return m.offlineThreshold
}

// Start runs the monitor until the context is cancelled.
//
// Start is blocking. It loads the persisted state (treating an unreadable
// or missing file as a first run), polls immediately, then once per
// configured interval. Cancelling the context stops the loop; a cycle in
// flight finishes or aborts before its snapshot is committed, so the state
// file is never left torn.
//
// Returns nil on graceful shutdown. Returns an error only if the optional
// status endpoint fails to bind.
func (m *Monitor) Start(ctx context.Context) error {
	m.logger.Info("mcwatch starting",
		"server", m.server,
		"server_type", m.serverType.String(),
		"check_interval", m.interval.String(),
		"offline_threshold", m.offlineThreshold,
	)

	if ctx.Err() != nil {
		return nil
	}

	store := statestore.NewFileStore(m.statePath)
	state := m.loadState(store)

	client := fetcher.NewClient(fetcher.StatusURL(m.apiBaseURL, m.serverType == ServerTypeBedrock, m.server))
	defer client.Close()

	var tracker *status.Tracker
	if m.statusPort > 0 {
		tracker = status.NewTracker(m.server, m.serverType.String())
		statusServer := status.NewServer(tracker, m.statusPort, m.logger)
		if err := statusServer.Start(ctx); err != nil {
			return err
		}
		m.logger.Info("status endpoint listening", "port", m.statusPort)
	}

	state = m.runCycle(ctx, client, store, tracker, state)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("mcwatch stopped")
			return nil
		case <-ticker.C:
			state = m.runCycle(ctx, client, store, tracker, state)
		}
	}
}

// loadState reads the persisted state. Read failures are logged and treated
// as a first run, never as fatal. A stored server type that differs from the
// configured one gets a warning (the stored snapshot likely describes the
// other edition).
func (m *Monitor) loadState(store *statestore.FileStore) PersistedState {
	rec, err := store.Load()
	if err != nil {
		m.logger.Warn("failed to load persisted state, treating as first run",
			"path", store.Path(),
			"error", err,
		)
	}
	state := stateFromRecord(rec)

	if state.ServerType != "" && state.ServerType != m.serverType {
		m.logger.Warn("server type changed since last run",
			"stored", state.ServerType.String(),
			"configured", m.serverType.String(),
		)
	}
	state.ServerType = m.serverType
	return state
}

// runCycle executes one fetch → diff → notify → persist cycle and returns
// the next confirmed state. If the context is cancelled mid-fetch the cycle
// aborts without evaluating or committing anything.
func (m *Monitor) runCycle(ctx context.Context, client *fetcher.Client, store *statestore.FileStore, tracker *status.Tracker, state PersistedState) PersistedState {
	res := client.Fetch(ctx, m.requestTimeout)
	if ctx.Err() != nil {
		// shutdown raced the fetch; don't mistake cancellation for an outage
		return state
	}

	result := resultFromFetcher(res)
	if result.Failure != nil {
		m.logger.Debug("poll failed",
			"kind", string(result.Failure.Kind),
			"error", result.Failure.Error(),
			"latency_ms", res.Latency.Milliseconds(),
		)
	} else {
		m.logger.Debug("poll completed",
			"online", result.Snapshot.Online,
			"players", result.Snapshot.PlayerCount,
			"latency_ms", res.Latency.Milliseconds(),
		)
	}

	events, next := Evaluate(state, result, m.offlineThreshold)
	next.ServerType = m.serverType

	messages := RenderEvents(events)
	for _, msg := range messages {
		if err := m.sink.Deliver(ctx, msg); err != nil {
			m.logger.Error("failed to deliver notification", "error", err)
			continue
		}
		m.logger.Info("notification delivered", "message", msg)
	}

	for _, ev := range events {
		for _, cb := range m.eventCallbacks {
			m.invokeCallbackSafe(cb, ev)
		}
	}

	// Notifications already went out; durability failures only cost us
	// restart continuity, so log and carry on with the in-memory state.
	if err := store.Save(recordFromState(next)); err != nil {
		m.logger.Error("failed to persist state", "path", store.Path(), "error", err)
	}

	if tracker != nil {
		tracker.Update(status.View{
			Known:         next.Known,
			Online:        next.LastSnapshot.Online,
			PlayerCount:   next.LastSnapshot.PlayerCount,
			PlayerMax:     next.LastSnapshot.PlayerMax,
			Version:       next.LastSnapshot.Version,
			OfflineStreak: next.OfflineStreak,
			CheckedAt:     time.Now(),
		}, messages)
	}

	return next
}

// invokeCallbackSafe calls an event callback with panic recovery.
// Panics are logged with a correlation ID but do not propagate.
func (m *Monitor) invokeCallbackSafe(cb func(ChangeEvent), ev ChangeEvent) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("event callback panicked",
				"correlation_id", uuid.NewString(),
				"panic", r,
				"event", ev.Type.String(),
			)
		}
	}()
	cb(ev)
}

// resultFromFetcher converts the fetcher's internal result to the public
// FetchResult.
func resultFromFetcher(res fetcher.Result) FetchResult {
	if res.Failure != nil {
		return FetchResult{Failure: &FetchFailure{
			Kind:       failureKindFromFetcher(res.Failure.Kind),
			StatusCode: res.Failure.StatusCode,
			Err:        res.Failure.Err,
		}}
	}
	s := res.Snapshot
	return FetchResult{Snapshot: Snapshot{
		Online:      s.Online,
		PlayerCount: s.PlayerCount,
		PlayerMax:   s.PlayerMax,
		Version:     s.Version,
		Mode:        s.Mode,
		Software:    s.Software,
		MOTD:        s.MOTD,
		PluginCount: s.PluginCount,
		ModCount:    s.ModCount,
		PlayerNames: s.PlayerNames,
	}}
}

// failureKindFromFetcher maps the fetcher's classification to the public one.
func failureKindFromFetcher(kind fetcher.FailureKind) FailureKind {
	switch kind {
	case fetcher.KindTimeout:
		return FailureTimeout
	case fetcher.KindHTTP:
		return FailureHTTP
	case fetcher.KindParse:
		return FailureParse
	default:
		return FailureConnection
	}
}

// stateFromRecord converts the storage record to the in-memory state.
func stateFromRecord(rec statestore.Record) PersistedState {
	return PersistedState{
		Known:         rec.Known,
		OfflineStreak: rec.ConsecutiveOfflineFailures,
		ServerType:    ServerType(rec.ServerType),
		LastSnapshot: Snapshot{
			Online:      rec.LastSnapshot.Online,
			PlayerCount: rec.LastSnapshot.PlayerCount,
			PlayerMax:   rec.LastSnapshot.PlayerMax,
			Version:     rec.LastSnapshot.Version,
			Mode:        rec.LastSnapshot.Mode,
			Software:    rec.LastSnapshot.Software,
			MOTD:        rec.LastSnapshot.MOTD,
			PluginCount: rec.LastSnapshot.PluginCount,
			ModCount:    rec.LastSnapshot.ModCount,
			PlayerNames: rec.LastSnapshot.PlayerNames,
		},
	}
}

// recordFromState converts the in-memory state to the storage record.
func recordFromState(state PersistedState) statestore.Record {
	return statestore.Record{
		Known:                      state.Known,
		ConsecutiveOfflineFailures: state.OfflineStreak,
		ServerType:                 state.ServerType.String(),
		LastSnapshot: statestore.SnapshotRecord{
			Online:      state.LastSnapshot.Online,
			PlayerCount: state.LastSnapshot.PlayerCount,
			PlayerMax:   state.LastSnapshot.PlayerMax,
			Version:     state.LastSnapshot.Version,
			Mode:        state.LastSnapshot.Mode,
			Software:    state.LastSnapshot.Software,
			MOTD:        state.LastSnapshot.MOTD,
			PluginCount: state.LastSnapshot.PluginCount,
			ModCount:    state.LastSnapshot.ModCount,
			PlayerNames: state.LastSnapshot.PlayerNames,
		},
	}
}
