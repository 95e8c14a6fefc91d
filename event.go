package mcwatch

// EventType identifies the kind of state change a [ChangeEvent] describes.
//
// Using a string type allows easy JSON serialization and human-readable
// logging while keeping the set of values closed through the constants below.
type EventType string

const (
	// EventServerOnline fires when the server transitions to online.
	EventServerOnline EventType = "server_online"

	// EventServerOffline fires when the server is confirmed offline after
	// the debounce threshold of consecutive offline-or-failed polls.
	EventServerOffline EventType = "server_offline"

	// EventVersionChanged fires when the reported version changes while the
	// server stays online.
	EventVersionChanged EventType = "version_changed"

	// EventModeChanged fires when the Bedrock gamemode changes while the
	// server stays online.
	EventModeChanged EventType = "mode_changed"

	// EventPlayersJoined fires when players connect between two confirmed
	// online snapshots.
	EventPlayersJoined EventType = "players_joined"

	// EventPlayersLeft fires when players disconnect between two confirmed
	// online snapshots.
	EventPlayersLeft EventType = "players_left"
)

// String returns the string representation of the event type.
// This implements the fmt.Stringer interface.
func (t EventType) String() string {
	return string(t)
}

// ChangeEvent is one user-meaningful transition derived by comparing two
// confirmed states.
//
// Events are transient: produced by [Evaluate] once per poll cycle and
// consumed immediately by the notifier. Which fields are populated depends
// on Type; Snapshot always carries the new confirmed state so renderers can
// include context such as the current player totals or MOTD.
type ChangeEvent struct {
	// Type is the kind of change.
	Type EventType

	// From and To hold the previous and new value for EventVersionChanged
	// and EventModeChanged.
	From string
	To   string

	// Names holds the sorted player names for EventPlayersJoined and
	// EventPlayersLeft, nil when the API provides no player list.
	Names []string

	// Count is the number of players that joined or left.
	Count int

	// Snapshot is the new confirmed snapshot the event was derived from.
	Snapshot Snapshot
}
