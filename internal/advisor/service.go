package advisor

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"cropwatch/internal/cropcycle"
	"cropwatch/internal/notify"
	"cropwatch/internal/store"
	"cropwatch/internal/types"
	"cropwatch/internal/weather"
)

// FarmContext is everything the pipeline needs about one farm: where it is,
// what is planted when, and what the farmer has scheduled by hand.
type FarmContext struct {
	Location  types.LocationContext
	Lat       float64
	Lon       float64
	Crops     types.CropContext
	Plantings map[string]types.DateKey
	FarmTasks []types.FarmTaskRef
}

// Overview is the pipeline output rendered by the UI: the prioritized
// advisory list and the dated task checklist.
type Overview struct {
	Suggestions []types.Suggestion `json:"suggestions"`
	Tasks       []types.DailyTask  `json:"tasks"`
}

// Service drives the advisory pipeline: fetch weather, run the suggestion
// engine and the task generator, merge persisted state back in, and hand
// both outputs to the notification reconciler.
type Service struct {
	provider      weather.Provider
	records       *store.Records
	engine        *Engine
	reconciler    *notify.Reconciler
	clock         types.Clock
	logger        types.Logger
	loc           *time.Location
	lookAheadDays int
}

// NewService wires the pipeline. loc is the farm's time zone (nil falls
// back to UTC); lookAheadDays bounds the task generation window.
func NewService(
	provider weather.Provider,
	records *store.Records,
	engine *Engine,
	reconciler *notify.Reconciler,
	clock types.Clock,
	logger types.Logger,
	loc *time.Location,
	lookAheadDays int,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if lookAheadDays <= 0 {
		lookAheadDays = 7
	}
	return &Service{
		provider:      provider,
		records:       records,
		engine:        engine,
		reconciler:    reconciler,
		clock:         clock,
		logger:        logger,
		loc:           loc,
		lookAheadDays: lookAheadDays,
	}
}

// Refresh runs the full pipeline for a farm and returns the renderable
// overview. A failed weather fetch is not fatal: the engine receives no
// snapshot and contributes no suggestions, while task generation proceeds
// from the planting schedule alone.
func (s *Service) Refresh(ctx context.Context, farm FarmContext) (*Overview, error) {
	now := s.clock.Now()
	today := types.NewDateKey(now.In(s.loc))

	var snapshot *types.WeatherSnapshot
	tasksByCrop := make(map[string][]types.DailyTask, len(farm.Plantings))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap, err := s.provider.Fetch(gctx, farm.Lat, farm.Lon)
		if err != nil {
			s.logger.Warn("weather fetch failed, continuing without forecast", "error", err.Error())
			return nil
		}
		snapshot = snap
		return nil
	})

	var mu sync.Mutex
	for cropID, planted := range farm.Plantings {
		if !farm.Crops.Has(cropID) {
			continue
		}
		g.Go(func() error {
			generated := cropcycle.Generate(cropID, planted, today, s.lookAheadDays)
			mu.Lock()
			tasksByCrop[cropID] = generated
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cropIDs := make([]string, 0, len(tasksByCrop))
	for id := range tasksByCrop {
		cropIDs = append(cropIDs, id)
	}
	sort.Strings(cropIDs)
	var tasks []types.DailyTask
	for _, id := range cropIDs {
		tasks = append(tasks, tasksByCrop[id]...)
	}
	cropcycle.ApplyStatuses(tasks, s.records.TaskStatuses(ctx))

	suggestions := s.engine.Generate(snapshot, farm.Location, farm.Crops, farm.FarmTasks)
	visible := FilterDismissed(suggestions, s.records.DismissedIDs(ctx), now)

	enabled := s.records.NotificationsEnabled(ctx)
	if err := s.reconciler.Reconcile(ctx, tasks, visible, enabled); err != nil {
		// Notification bookkeeping trouble must not hide the advisory list.
		s.logger.Error("notification reconciliation failed", "error", err.Error())
	}

	return &Overview{Suggestions: visible, Tasks: tasks}, nil
}

// Dismiss records a suggestion as dismissed so it stays hidden until it
// expires naturally.
func (s *Service) Dismiss(ctx context.Context, suggestionID string) error {
	return s.records.AddDismissed(ctx, suggestionID)
}

// SetTaskStatus persists a status change for a generated task.
func (s *Service) SetTaskStatus(ctx context.Context, taskID string, status types.TaskStatus) error {
	if !status.Valid() {
		return types.NewAppError(types.ErrCodeValidationStatus, "unknown task status "+string(status), nil)
	}
	return s.records.SetTaskStatus(ctx, taskID, status)
}

// SetNotificationsEnabled persists the toggle. Disabling immediately clears
// all scheduled notifications through the reconciler.
func (s *Service) SetNotificationsEnabled(ctx context.Context, enabled bool) error {
	if err := s.records.SetNotificationsEnabled(ctx, enabled); err != nil {
		return err
	}
	if !enabled {
		return s.reconciler.Reconcile(ctx, nil, nil, false)
	}
	return nil
}

// Cleanup delegates to the reconciler's bookkeeping pass.
func (s *Service) Cleanup(ctx context.Context) error {
	return s.reconciler.Cleanup(ctx)
}
