package tui

import "errors"

// ErrMissingDashboardService is returned when the dashboard service is not provided.
var ErrMissingDashboardService = errors.New("tui: dashboard service is required")

// ErrMissingMatchCoordinator is returned when the match coordinator is not provided.
var ErrMissingMatchCoordinator = errors.New("tui: match coordinator is required")

// ErrMissingBookmarkService is returned when the bookmark service is not provided.
var ErrMissingBookmarkService = errors.New("tui: bookmark service is required")

// ErrMissingCompatibilityViewer is returned when the compatibility viewer is not provided.
var ErrMissingCompatibilityViewer = errors.New("tui: compatibility viewer is required")

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("tui: session service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
