package mcwatch

import (
	"fmt"
	"slices"
)

// ServerType identifies which edition of the game server is being monitored.
//
// The status API exposes different fields for each edition: Bedrock servers
// report a gamemode but no player name list, while Java servers report
// software, MOTD, plugin/mod lists and (usually) individual player names.
type ServerType string

const (
	// ServerTypeBedrock monitors a Bedrock edition server.
	ServerTypeBedrock ServerType = "bedrock"

	// ServerTypeJava monitors a Java edition server.
	ServerTypeJava ServerType = "java"
)

// String returns the string representation of the server type.
func (t ServerType) String() string {
	return string(t)
}

// Snapshot is one parsed observation of the status API.
//
// A Snapshot is immutable once produced. String fields use the empty string
// to mean "not reported"; PlayerNames is nil when the API did not include a
// player list (Bedrock never does, Java omits it above a size cutoff).
// Player counts are only meaningful while Online is true.
type Snapshot struct {
	// Online reports whether the API considers the server reachable.
	Online bool `json:"online"`

	// PlayerCount is the number of players currently connected.
	PlayerCount int `json:"player_count"`

	// PlayerMax is the server's player capacity.
	PlayerMax int `json:"player_max"`

	// Version is the reported server version, empty if not reported.
	Version string `json:"version,omitempty"`

	// Mode is the Bedrock gamemode (Survival, Creative, ...), empty for Java.
	Mode string `json:"mode,omitempty"`

	// Software is the Java server software (Paper, Spigot, ...), if reported.
	Software string `json:"software,omitempty"`

	// MOTD is the first clean line of the server's message of the day.
	MOTD string `json:"motd,omitempty"`

	// PluginCount and ModCount are the sizes of the Java plugin/mod lists.
	PluginCount int `json:"plugin_count,omitempty"`
	ModCount    int `json:"mod_count,omitempty"`

	// PlayerNames holds the sorted names of connected players, nil when the
	// API provides no list.
	PlayerNames []string `json:"player_names,omitempty"`
}

// Equal reports whether two snapshots carry identical observations.
func (s Snapshot) Equal(other Snapshot) bool {
	return s.Online == other.Online &&
		s.PlayerCount == other.PlayerCount &&
		s.PlayerMax == other.PlayerMax &&
		s.Version == other.Version &&
		s.Mode == other.Mode &&
		s.Software == other.Software &&
		s.MOTD == other.MOTD &&
		s.PluginCount == other.PluginCount &&
		s.ModCount == other.ModCount &&
		slices.Equal(s.PlayerNames, other.PlayerNames)
}

// PersistedState is the monitor's memory between poll cycles.
//
// It holds the last confirmed snapshot (post-debounce) and the count of
// consecutive offline-or-failed polls. The zero value means "first run":
// no confirmed observation yet, no offline streak.
type PersistedState struct {
	// Known is false until the first snapshot has been confirmed.
	Known bool `json:"known"`

	// LastSnapshot is the last snapshot accepted as true. It never reflects
	// a fetch failure, only confirmed conclusions.
	LastSnapshot Snapshot `json:"last_snapshot"`

	// OfflineStreak counts consecutive polls that were either fetch failures
	// or API-reported offline. Reset to zero by any online observation.
	OfflineStreak int `json:"consecutive_offline_failures"`

	// ServerType records which edition this state was collected for, so a
	// configuration change can be detected at startup.
	ServerType ServerType `json:"server_type,omitempty"`
}

// FailureKind classifies why a poll failed before producing a snapshot.
type FailureKind string

const (
	// FailureTimeout indicates the request exceeded its deadline.
	FailureTimeout FailureKind = "timeout"

	// FailureConnection indicates a network-level error (DNS, refused, reset).
	FailureConnection FailureKind = "connection"

	// FailureHTTP indicates the API answered with a non-2xx status code.
	FailureHTTP FailureKind = "http"

	// FailureParse indicates the API answered with a body that could not be
	// decoded as a status document.
	FailureParse FailureKind = "parse"
)

// FetchFailure describes a poll that did not produce a snapshot.
//
// Failures are classified by the fetcher before they reach the diff engine;
// the engine never sees raw transport errors.
type FetchFailure struct {
	// Kind is the failure classification.
	Kind FailureKind

	// StatusCode is the HTTP status code for FailureHTTP, zero otherwise.
	StatusCode int

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (f *FetchFailure) Error() string {
	switch f.Kind {
	case FailureHTTP:
		return fmt.Sprintf("status API returned HTTP %d", f.StatusCode)
	default:
		if f.Err != nil {
			return fmt.Sprintf("status API %s: %v", f.Kind, f.Err)
		}
		return fmt.Sprintf("status API %s", f.Kind)
	}
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (f *FetchFailure) Unwrap() error {
	return f.Err
}

// FetchResult is the pre-classified outcome of one poll: either a parsed
// Snapshot or a FetchFailure, never both.
type FetchResult struct {
	// Snapshot is the parsed observation when Failure is nil.
	Snapshot Snapshot

	// Failure is non-nil when the poll did not produce a snapshot.
	Failure *FetchFailure
}
