// Package statestore persists the monitor's confirmed state between process
// restarts as a JSON file.
//
// Loads never fail the process: a missing or corrupt file yields the zero
// record, which the monitor treats as a first run. Saves are atomic from a
// reader's point of view: the record is written to a temporary file in the
// same directory and renamed into place, so a crash or concurrent read never
// observes a half-written state.
package statestore
