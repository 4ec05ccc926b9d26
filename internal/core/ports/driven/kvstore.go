package driven

import "context"

// KVStore is a string key-value store scoped by namespace.
// The namespace is the user id, so switching users never exposes
// another user's values.
type KVStore interface {
	// Get returns the value and whether it exists.
	Get(ctx context.Context, namespace, key string) (string, bool, error)

	// Set stores a value, replacing any existing one.
	Set(ctx context.Context, namespace, key, value string) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, namespace, key string) error

	// Keys lists the keys present in a namespace.
	Keys(ctx context.Context, namespace string) ([]string, error)
}
