// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - SearchAPI: Match search and filter facets
//   - CompatibilityAPI: Compatibility breakdown for a startup/investor pair
//   - RecommendationAPI: Recommendations for a pair
//   - ProfileAPI: The logged-in user's profile
//   - TokenStore: Session token persistence
//   - BookmarkStore: Per-user bookmark persistence
//   - KVStore: Per-user key-value persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Cache: Response cache (Redis). Without it every call hits the API.
//   - TokenDecoder: Reads claims from the session token when the profile
//     endpoint is unreachable.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
