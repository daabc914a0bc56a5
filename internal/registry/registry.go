// Package registry holds the (domain, type_url suffix) dispatch-key helpers
// shared by every router in the coordinator: the Saga/Projector/
// Process-Manager registries and the Rejection Router's compensation table
// all key their dispatch maps off the same suffix and compensation-key
// conventions, so the convention lives here once instead of drifting
// between them.
package registry

import "strings"

// TypeSuffix returns the trailing ".MessageName" component of a protobuf
// Any type_url, e.g. "type.googleapis.com/examples.PlayerRegistered" ->
// "PlayerRegistered". This is the dispatch key used throughout the
// coordinator for matching a handler registration against a delivered
// event or command.
func TypeSuffix(typeURL string) string {
	idx := strings.LastIndex(typeURL, ".")
	if idx < 0 {
		return typeURL
	}
	return typeURL[idx+1:]
}

// Matches reports whether typeURL ends in any of the given suffixes.
// SagaRegistration scans its event suffix list this way; this is the one
// HasSuffix loop every registration type calls.
func Matches(typeURL string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(typeURL, suffix) {
			return true
		}
	}
	return false
}

// CompensationKey builds the lookup key for a domain+command_suffix pair,
// used by the Rejection Router's compensation-handler table.
func CompensationKey(domain, commandSuffix string) string {
	return domain + "\x00" + commandSuffix
}
