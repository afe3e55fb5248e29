// Package store provides the key-value persistence layer for the advisory
// engine's bookkeeping records: dismissed suggestion IDs, task completion
// statuses, scheduled-notification records, and the notifications-enabled
// flag. The core only requires get/set/delete semantics over string keys;
// backends exist for in-memory (tests), SQLite (single-device default),
// Postgres, and Redis deployments.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KV.Get when the key has never been written or
// has been deleted. Callers treat it as "empty", not as a failure.
var ErrNotFound = errors.New("store: key not found")

// KV is the minimal persistence port consumed by the advisory core. All
// values are opaque byte strings; the Records layer handles JSON encoding.
type KV interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Well-known record keys. The formats stored under these keys are load
// compatible across releases; changing them breaks status merging and
// dismissal tracking for existing installs.
const (
	KeyDismissed            = "cropwatch:dismissed"
	KeyTaskStatuses         = "cropwatch:task_status"
	KeyNotifications        = "cropwatch:notifications"
	KeyNotificationsEnabled = "cropwatch:notifications_enabled"
)
