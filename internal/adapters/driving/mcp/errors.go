// Package mcp exposes match search, compatibility and bookmarks to AI
// assistants over the Model Context Protocol.
package mcp

import "errors"

var (
	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")

	// ErrMissingSessionService is returned when the session service is not provided.
	ErrMissingSessionService = errors.New("mcp: session service is required")

	// ErrUnavailable is returned by tools whose backing service is not wired.
	ErrUnavailable = errors.New("mcp: operation not available")
)
