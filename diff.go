package mcwatch

import "slices"

// Evaluate compares a fresh poll result against the last confirmed state and
// decides which change events, if any, it proves.
//
// Evaluate is a pure function: the same (prev, res, offlineThreshold) inputs
// always produce the same outputs, and it never returns an error; every
// failure mode is pre-classified into res.Failure by the fetcher. The
// returned state is the caller's next confirmed state and must replace prev.
//
// Offline debounce: fetch failures and API-reported offline results share
// one streak counter. The offline transition is committed only once the
// streak reaches offlineThreshold while the previous confirmed state was
// online or unknown; until then the last online snapshot is held, so a
// single flaky poll never produces a false OFFLINE alert. Any successful
// online poll resets the streak.
func Evaluate(prev PersistedState, res FetchResult, offlineThreshold int) ([]ChangeEvent, PersistedState) {
	if offlineThreshold < 1 {
		offlineThreshold = 1
	}

	if res.Failure != nil {
		// The failed fetch carries no trustworthy observation; only the
		// streak advances. Confirming offline on the failure path uses a
		// synthesized offline snapshot, never the failure's payload.
		return evaluateDown(prev, Snapshot{Online: false}, offlineThreshold)
	}
	if !res.Snapshot.Online {
		return evaluateDown(prev, res.Snapshot, offlineThreshold)
	}
	return evaluateOnline(prev, res.Snapshot)
}

// evaluateDown handles both fetch failures and API-reported offline polls.
func evaluateDown(prev PersistedState, offline Snapshot, offlineThreshold int) ([]ChangeEvent, PersistedState) {
	next := prev
	next.OfflineStreak++

	wasOnline := !prev.Known || prev.LastSnapshot.Online
	if next.OfflineStreak < offlineThreshold || !wasOnline {
		// Debounce window still open, or offline already confirmed: hold the
		// last confirmed snapshot.
		return nil, next
	}

	next.Known = true
	next.LastSnapshot = offline
	events := []ChangeEvent{{Type: EventServerOffline, Snapshot: offline}}
	return events, next
}

// evaluateOnline handles a successful poll reporting the server online.
func evaluateOnline(prev PersistedState, snap Snapshot) ([]ChangeEvent, PersistedState) {
	next := prev
	next.OfflineStreak = 0
	next.Known = true
	next.LastSnapshot = snap

	var events []ChangeEvent

	if !prev.Known || !prev.LastSnapshot.Online {
		events = append(events, ChangeEvent{Type: EventServerOnline, Snapshot: snap})
	}
	if !prev.Known {
		// First-ever observation: nothing to diff against.
		return events, next
	}

	old := prev.LastSnapshot
	if snap.Version != "" && old.Version != "" && snap.Version != old.Version {
		events = append(events, ChangeEvent{
			Type:     EventVersionChanged,
			From:     old.Version,
			To:       snap.Version,
			Snapshot: snap,
		})
	}
	if snap.Mode != "" && old.Mode != "" && snap.Mode != old.Mode {
		events = append(events, ChangeEvent{
			Type:     EventModeChanged,
			From:     old.Mode,
			To:       snap.Mode,
			Snapshot: snap,
		})
	}

	// Player deltas are only derived between two confirmed online states.
	if old.Online {
		events = append(events, diffPlayers(old, snap)...)
	}

	return events, next
}

// diffPlayers derives leave/join events between two confirmed online
// snapshots. When both snapshots carry a player list the diff names players
// individually; otherwise it falls back to the count delta. Leaves are
// reported before joins.
func diffPlayers(old, snap Snapshot) []ChangeEvent {
	var events []ChangeEvent

	if old.PlayerNames != nil && snap.PlayerNames != nil {
		left := namesMissingFrom(old.PlayerNames, snap.PlayerNames)
		joined := namesMissingFrom(snap.PlayerNames, old.PlayerNames)
		if len(left) > 0 {
			events = append(events, ChangeEvent{
				Type:     EventPlayersLeft,
				Names:    left,
				Count:    len(left),
				Snapshot: snap,
			})
		}
		if len(joined) > 0 {
			events = append(events, ChangeEvent{
				Type:     EventPlayersJoined,
				Names:    joined,
				Count:    len(joined),
				Snapshot: snap,
			})
		}
		return events
	}

	switch delta := snap.PlayerCount - old.PlayerCount; {
	case delta < 0:
		events = append(events, ChangeEvent{Type: EventPlayersLeft, Count: -delta, Snapshot: snap})
	case delta > 0:
		events = append(events, ChangeEvent{Type: EventPlayersJoined, Count: delta, Snapshot: snap})
	}
	return events
}

// namesMissingFrom returns the sorted members of a that are absent from b.
// Both inputs are sorted, so a linear merge walk suffices.
func namesMissingFrom(a, b []string) []string {
	var missing []string
	for _, name := range a {
		if _, found := slices.BinarySearch(b, name); !found {
			missing = append(missing, name)
		}
	}
	return missing
}
