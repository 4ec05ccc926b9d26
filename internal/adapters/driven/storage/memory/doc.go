// Package memory provides in-memory implementations of the driven stores.
//
// They back the --ephemeral flag and are used throughout the service and
// adapter tests. Nothing is persisted across processes.
package memory
