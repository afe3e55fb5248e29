package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cropwatch/internal/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)        {}
func (nopLogger) Error(string, ...any)       {}
func (nopLogger) Warn(string, ...any)        {}
func (l nopLogger) With(...any) types.Logger { return l }

// failingKV fails every operation, for exercising the degradation paths.
type failingKV struct{}

func (failingKV) Get(context.Context, string) ([]byte, error) { return nil, errors.New("disk on fire") }
func (failingKV) Set(context.Context, string, []byte) error   { return errors.New("disk on fire") }
func (failingKV) Delete(context.Context, string) error        { return errors.New("disk on fire") }

func newTestRecords() (*Records, *Memory) {
	kv := NewMemory()
	return NewRecords(kv, nopLogger{}), kv
}

func TestRecords_Dismissed(t *testing.T) {
	r, _ := newTestRecords()
	ctx := context.Background()

	assert.Empty(t, r.DismissedIDs(ctx))

	require.NoError(t, r.AddDismissed(ctx, "heavy-rain:2026-08-30:high"))
	require.NoError(t, r.AddDismissed(ctx, "strong-wind:2026-08-30"))
	// Duplicate adds are no-ops.
	require.NoError(t, r.AddDismissed(ctx, "heavy-rain:2026-08-30:high"))

	set := r.DismissedIDs(ctx)
	assert.Len(t, set, 2)
	assert.True(t, set["heavy-rain:2026-08-30:high"])

	require.NoError(t, r.SetDismissedIDs(ctx, []string{"strong-wind:2026-08-30"}))
	set = r.DismissedIDs(ctx)
	assert.Len(t, set, 1)
	assert.False(t, set["heavy-rain:2026-08-30:high"])
}

func TestRecords_TaskStatuses(t *testing.T) {
	r, _ := newTestRecords()
	ctx := context.Background()

	assert.Empty(t, r.TaskStatuses(ctx))

	require.NoError(t, r.SetTaskStatus(ctx, "rice-d001-planting", types.TaskCompleted))
	require.NoError(t, r.SetTaskStatus(ctx, "rice-d007-fertilization", types.TaskSkipped))

	statuses := r.TaskStatuses(ctx)
	assert.Equal(t, types.TaskCompleted, statuses["rice-d001-planting"])
	assert.Equal(t, types.TaskSkipped, statuses["rice-d007-fertilization"])
}

func TestRecords_Notifications(t *testing.T) {
	r, _ := newTestRecords()
	ctx := context.Background()

	assert.Empty(t, r.Notifications(ctx))

	when := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
	require.NoError(t, r.SetNotifications(ctx, []types.ScheduledNotification{
		{ID: "task:rice-d001-planting", Kind: types.NotificationTask, ScheduledFor: when},
	}))

	recs := r.Notifications(ctx)
	require.Len(t, recs, 1)
	assert.Equal(t, "task:rice-d001-planting", recs[0].ID)
	assert.True(t, recs[0].ScheduledFor.Equal(when))

	// nil clears to an empty set rather than deleting the key.
	require.NoError(t, r.SetNotifications(ctx, nil))
	assert.Empty(t, r.Notifications(ctx))
}

func TestRecords_NotificationsEnabledDefaultsTrue(t *testing.T) {
	r, _ := newTestRecords()
	ctx := context.Background()

	assert.True(t, r.NotificationsEnabled(ctx))

	require.NoError(t, r.SetNotificationsEnabled(ctx, false))
	assert.False(t, r.NotificationsEnabled(ctx))

	require.NoError(t, r.SetNotificationsEnabled(ctx, true))
	assert.True(t, r.NotificationsEnabled(ctx))
}

func TestRecords_CorruptPayloadDegradesToDefaults(t *testing.T) {
	r, kv := newTestRecords()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, KeyDismissed, []byte("{not json")))
	require.NoError(t, kv.Set(ctx, KeyNotificationsEnabled, []byte("maybe")))

	assert.Empty(t, r.DismissedIDs(ctx))
	assert.True(t, r.NotificationsEnabled(ctx))
}

func TestRecords_ReadFailureDegradesToDefaults(t *testing.T) {
	r := NewRecords(failingKV{}, nopLogger{})
	ctx := context.Background()

	assert.Empty(t, r.DismissedIDs(ctx))
	assert.Empty(t, r.TaskStatuses(ctx))
	assert.True(t, r.NotificationsEnabled(ctx))
}

func TestRecords_WriteFailureIsAppError(t *testing.T) {
	r := NewRecords(failingKV{}, nopLogger{})

	err := r.SetTaskStatus(context.Background(), "rice-d001-planting", types.TaskCompleted)
	require.Error(t, err)

	var appErr *types.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, types.ErrCodeInternalStore, appErr.Code)
}

func TestMemory_Roundtrip(t *testing.T) {
	kv := NewMemory()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "k", []byte("v1")))
	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	// Mutating the returned slice must not corrupt the stored value.
	got[0] = 'X'
	again, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), again)

	require.NoError(t, kv.Delete(ctx, "k"))
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}
