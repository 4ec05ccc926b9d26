// Package domain defines the core business entities for KarmicDD.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Match: A startup or investor counterpart surfaced by search
//   - SearchOptions: The query sent to the search endpoints
//   - Pagination: Server-driven paging metadata
//   - CompatibilityData: A server-computed score breakdown for a pair
//   - Recommendation: Advice generated for a startup/investor pair
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
