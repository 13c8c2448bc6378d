package hub

import "errors"

// Error values for the failure classes callers branch on. Everything else
// surfaces as a formatted error carrying the HTTP status and, when the Hub
// sent one, its error message. The client never retries.
var (
	ErrNotFound     = errors.New("hub: not found")
	ErrUnauthorized = errors.New("hub: unauthorized")
	ErrRateLimited  = errors.New("hub: rate limited")
)
