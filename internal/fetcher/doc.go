// Package fetcher queries the mcsrvstat.us status API and turns the raw
// HTTP exchange into a pre-classified poll result.
//
// Every transport-level problem (timeout, connection error, non-2xx
// response, unparseable body) is normalized into a Failure value so the
// diff engine upstream never sees raw errors. The package defines its own
// snapshot and failure types, decoupled from the main mcwatch types, to
// avoid circular dependencies.
package fetcher
