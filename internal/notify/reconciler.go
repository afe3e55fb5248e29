package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cropwatch/internal/store"
	"cropwatch/internal/types"
)

// taskFireHour is the local wall-clock hour task notifications fire at.
const taskFireHour = 8

// dismissedRetentionDays is how long dismissed suggestion IDs are kept
// before the cleanup pass drops them. Suggestion IDs embed the forecast date
// they derive from, so anything older can never resurface.
const dismissedRetentionDays = 7

// Reconciler reconciles notification-worthy tasks and suggestions against
// the persisted scheduling records. Its deterministic scheduling IDs are the
// only safeguard against duplicate notifications under concurrent calls, so
// every decision here must be idempotent.
type Reconciler struct {
	records   *store.Records
	scheduler Scheduler
	metrics   Metrics
	clock     types.Clock
	logger    types.Logger
	loc       *time.Location
}

// NewReconciler creates a Reconciler. loc is the farm's time zone, used to
// resolve "today", "tomorrow", and the 08:00 task fire time; nil falls back
// to UTC. metrics may be nil for a no-op sink.
func NewReconciler(
	records *store.Records,
	scheduler Scheduler,
	metrics Metrics,
	clock types.Clock,
	logger types.Logger,
	loc *time.Location,
) *Reconciler {
	if loc == nil {
		loc = time.UTC
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &Reconciler{
		records:   records,
		scheduler: scheduler,
		metrics:   metrics,
		clock:     clock,
		logger:    logger,
		loc:       loc,
	}
}

// SchedulingID derives the deterministic record ID for a notification about
// the given entity. Two reconciler runs over the same entity always produce
// the same ID, which is what makes scheduling idempotent.
func SchedulingID(kind types.NotificationKind, entityID string) string {
	return fmt.Sprintf("%s:%s", kind, entityID)
}

// Reconcile schedules notifications for notification-worthy items and
// persists the updated record set.
//
// Disabled notifications cancel everything: the scheduler's CancelAll is
// invoked and an empty record set is persisted, regardless of how urgent the
// current items are.
//
// Notification-worthy tasks are pending and dated today or tomorrow; they
// fire at 08:00 local time on their date. Notification-worthy suggestions
// are high priority and still valid; they fire immediately. Items whose
// scheduling ID already has a persisted record are left alone. A scheduling
// failure skips that item and proceeds with the rest; there is no
// partial-batch abort.
func (r *Reconciler) Reconcile(
	ctx context.Context,
	tasks []types.DailyTask,
	suggestions []types.Suggestion,
	enabled bool,
) error {
	now := r.clock.Now()

	if !enabled {
		if err := r.scheduler.CancelAll(ctx); err != nil {
			r.logger.Warn("bulk cancel failed", "error", err.Error())
		}
		return r.records.SetNotifications(ctx, nil)
	}

	existing := r.records.Notifications(ctx)
	byID := make(map[string]bool, len(existing))
	for _, rec := range existing {
		byID[rec.ID] = true
	}

	today := types.NewDateKey(now.In(r.loc))
	tomorrow := today.AddDays(1)

	var pending []types.ScheduledNotification
	for _, task := range tasks {
		if task.Status != types.TaskPending {
			continue
		}
		if task.Date != today && task.Date != tomorrow {
			continue
		}
		pending = append(pending, types.ScheduledNotification{
			ID:           SchedulingID(types.NotificationTask, task.ID),
			Kind:         types.NotificationTask,
			EntityID:     task.ID,
			ScheduledFor: task.Date.At(taskFireHour, 0, r.loc),
			Title:        task.CropName + ": " + task.Title,
			Body:         task.Description,
		})
	}
	for _, s := range suggestions {
		if s.Priority != types.PriorityHigh || s.Expired(now) {
			continue
		}
		pending = append(pending, types.ScheduledNotification{
			ID:           SchedulingID(types.NotificationSuggestion, s.ID),
			Kind:         types.NotificationSuggestion,
			EntityID:     s.ID,
			ScheduledFor: now,
			Title:        s.Title,
			Body:         s.Message,
		})
	}

	for _, n := range pending {
		if byID[n.ID] {
			continue
		}
		if err := r.scheduler.Schedule(ctx, n); err != nil {
			r.metrics.RecordFailure(ctx, n.Kind)
			r.logger.Warn("scheduling failed, skipping item",
				"id", n.ID,
				"error", err.Error(),
			)
			continue
		}
		r.metrics.RecordScheduled(ctx, n.Kind)
		existing = append(existing, n)
		byID[n.ID] = true
	}

	return r.records.SetNotifications(ctx, existing)
}

// Cleanup prunes bookkeeping: persisted notification records whose
// scheduled time is strictly in the past, and dismissed suggestion IDs old
// enough that their advisory can never recur. It cancels nothing the OS may
// already have delivered. Intended to run on every screen focus or on a
// periodic tick.
func (r *Reconciler) Cleanup(ctx context.Context) error {
	now := r.clock.Now()

	records := r.records.Notifications(ctx)
	kept := records[:0]
	for _, rec := range records {
		if rec.ScheduledFor.Before(now) {
			continue
		}
		kept = append(kept, rec)
	}
	pruned := len(records) - len(kept)
	if pruned > 0 {
		if err := r.records.SetNotifications(ctx, kept); err != nil {
			return err
		}
		r.metrics.RecordPruned(ctx, pruned)
	}

	return r.pruneDismissed(ctx, now)
}

// pruneDismissed drops dismissed suggestion IDs whose embedded forecast date
// is older than the retention window. IDs without a parseable date are kept;
// the set only ever shrinks when we are certain the advisory is stale.
func (r *Reconciler) pruneDismissed(ctx context.Context, now time.Time) error {
	cutoff := types.NewDateKey(now.In(r.loc).AddDate(0, 0, -dismissedRetentionDays))

	dismissed := r.records.DismissedIDs(ctx)
	kept := make([]string, 0, len(dismissed))
	changed := false
	for id := range dismissed {
		if date, ok := embeddedDate(id); ok && date.Before(cutoff) {
			changed = true
			continue
		}
		kept = append(kept, id)
	}
	if !changed {
		return nil
	}
	return r.records.SetDismissedIDs(ctx, kept)
}

// embeddedDate extracts the forecast date component of a suggestion ID
// (rule:date[:qualifier]).
func embeddedDate(suggestionID string) (types.DateKey, bool) {
	parts := strings.Split(suggestionID, ":")
	for _, p := range parts[1:] {
		if d := types.DateKey(p); d.Valid() {
			return d, true
		}
	}
	return "", false
}
