package store

import (
	"context"
	"encoding/json"
	"errors"

	"cropwatch/internal/types"
)

// Records wraps a KV with the JSON record formats the advisory core
// persists. Read failures (I/O or corrupt payloads) are logged and degrade
// to empty defaults: the engine continues with fewer suggestions, tasks, or
// notifications rather than failing.
type Records struct {
	kv     KV
	logger types.Logger
}

// NewRecords creates a Records layer over the given KV backend.
func NewRecords(kv KV, logger types.Logger) *Records {
	return &Records{kv: kv, logger: logger}
}

// DismissedIDs returns the set of suggestion IDs the farmer has dismissed.
func (r *Records) DismissedIDs(ctx context.Context) map[string]bool {
	var ids []string
	r.read(ctx, KeyDismissed, &ids)
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// AddDismissed records a suggestion ID as dismissed.
func (r *Records) AddDismissed(ctx context.Context, suggestionID string) error {
	set := r.DismissedIDs(ctx)
	if set[suggestionID] {
		return nil
	}
	ids := make([]string, 0, len(set)+1)
	for id := range set {
		ids = append(ids, id)
	}
	ids = append(ids, suggestionID)
	return r.write(ctx, KeyDismissed, ids)
}

// SetDismissedIDs replaces the dismissed set wholesale. Used by the cleanup
// pass to drop IDs of suggestions that have expired.
func (r *Records) SetDismissedIDs(ctx context.Context, ids []string) error {
	return r.write(ctx, KeyDismissed, ids)
}

// TaskStatuses returns the persisted task ID to status map.
func (r *Records) TaskStatuses(ctx context.Context) map[string]types.TaskStatus {
	statuses := map[string]types.TaskStatus{}
	r.read(ctx, KeyTaskStatuses, &statuses)
	return statuses
}

// SetTaskStatus persists the status for a single generated task.
func (r *Records) SetTaskStatus(ctx context.Context, taskID string, status types.TaskStatus) error {
	statuses := r.TaskStatuses(ctx)
	statuses[taskID] = status
	return r.write(ctx, KeyTaskStatuses, statuses)
}

// Notifications returns the persisted scheduled-notification records.
func (r *Records) Notifications(ctx context.Context) []types.ScheduledNotification {
	var records []types.ScheduledNotification
	r.read(ctx, KeyNotifications, &records)
	return records
}

// SetNotifications replaces the scheduled-notification records wholesale.
func (r *Records) SetNotifications(ctx context.Context, records []types.ScheduledNotification) error {
	if records == nil {
		records = []types.ScheduledNotification{}
	}
	return r.write(ctx, KeyNotifications, records)
}

// NotificationsEnabled returns the persisted enabled flag. Absence defaults
// to enabled: a fresh install notifies until the farmer opts out.
func (r *Records) NotificationsEnabled(ctx context.Context) bool {
	enabled := true
	r.read(ctx, KeyNotificationsEnabled, &enabled)
	return enabled
}

// SetNotificationsEnabled persists the enabled flag.
func (r *Records) SetNotificationsEnabled(ctx context.Context, enabled bool) error {
	return r.write(ctx, KeyNotificationsEnabled, enabled)
}

// read unmarshals the record at key into out. On any failure out is left at
// its zero/default value.
func (r *Records) read(ctx context.Context, key string, out any) {
	raw, err := r.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			r.logger.Warn("store read failed, using defaults", "key", key, "error", err.Error())
		}
		return
	}
	if err := json.Unmarshal(raw, out); err != nil {
		r.logger.Warn("store record corrupt, using defaults", "key", key, "error", err.Error())
	}
}

// write marshals v and stores it under key, wrapping failures as AppErrors.
func (r *Records) write(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalStore, "failed to encode record "+key, err)
	}
	if err := r.kv.Set(ctx, key, raw); err != nil {
		return types.NewAppError(types.ErrCodeInternalStore, "failed to persist record "+key, err)
	}
	return nil
}
