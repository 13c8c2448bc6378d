// Package cli implements the command-line interface.
package cli

import (
	"errors"

	"github.com/hubcard/hubcard/internal/cards"
	"github.com/hubcard/hubcard/internal/frontmatter"
	"github.com/hubcard/hubcard/internal/hub"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Hub errors
	ErrModelNotFound = "MODEL_NOT_FOUND"
	ErrUnauthorized  = "UNAUTHORIZED"
	ErrRateLimited   = "RATE_LIMITED"
	ErrHubError      = "HUB_ERROR"

	// Card errors
	ErrCardMalformed     = "CARD_MALFORMED"
	ErrNoFields          = "NO_FIELDS_REQUESTED"
	ErrFieldNotUpdatable = "FIELD_NOT_UPDATABLE"

	// Config errors
	ErrConfigInvalid = "CONFIG_INVALID"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// Cache errors
	ErrCacheError = "CACHE_ERROR"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnCacheUnavailable = "CACHE_UNAVAILABLE"
)

// errorCode maps a failure to its stable code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, hub.ErrNotFound):
		return ErrModelNotFound
	case errors.Is(err, hub.ErrUnauthorized):
		return ErrUnauthorized
	case errors.Is(err, hub.ErrRateLimited):
		return ErrRateLimited
	case errors.Is(err, frontmatter.ErrUnclosedHeader):
		return ErrCardMalformed
	case errors.Is(err, frontmatter.ErrNoEdits):
		return ErrNoFields
	case errors.Is(err, cards.ErrFieldNotAllowed):
		return ErrFieldNotUpdatable
	default:
		return ErrHubError
	}
}

// errorSuggestion returns a recovery hint for known failures.
func errorSuggestion(err error) string {
	switch {
	case errors.Is(err, hub.ErrNotFound):
		return "Check the model id spelling and casing, e.g. 'org/model-name'"
	case errors.Is(err, hub.ErrUnauthorized):
		return "Set HF_TOKEN or add a token to the config file"
	case errors.Is(err, hub.ErrRateLimited):
		return "Wait a moment and retry, or authenticate to raise the limit"
	case errors.Is(err, frontmatter.ErrUnclosedHeader):
		return "The card's metadata block has no closing delimiter; fix the card on the Hub first"
	case errors.Is(err, frontmatter.ErrNoEdits):
		return "Pass --pipeline-tag and/or --library-name"
	default:
		return ""
	}
}

// handleHubError routes a Hub failure through the JSON-aware error path.
func handleHubError(err error) error {
	return handleError(errorCode(err), err, errorSuggestion(err))
}
