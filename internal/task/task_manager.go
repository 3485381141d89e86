package task

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"bakery_planner_v1/internal/repository"
	"bakery_planner_v1/internal/service"
)

// ==================== TaskManager ====================

// TaskManager owns the background jobs of the process.
type TaskManager struct {
	sweepTask     *UploadSweepTask
	triggers      *cooldown
	sweepCooldown time.Duration
	log           zerolog.Logger
}

type TaskManagerDeps struct {
	Recipes repository.RecipeRepository
	Storage service.StorageProvider
}

type TaskManagerConfig struct {
	SweepEnabled  bool
	SweepCron     string
	SweepCooldown time.Duration // minimum gap between manual sweeps
}

func DefaultConfig() *TaskManagerConfig {
	return &TaskManagerConfig{SweepEnabled: true, SweepCron: "0 0 * * * *", SweepCooldown: time.Minute}
}

func NewTaskManager(deps *TaskManagerDeps, cfg *TaskManagerConfig, log zerolog.Logger) *TaskManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	tm := &TaskManager{triggers: newCooldown(), sweepCooldown: cfg.SweepCooldown, log: log}
	if cfg.SweepEnabled && deps.Storage != nil {
		tm.sweepTask = NewUploadSweepTask(deps.Recipes, deps.Storage, cfg.SweepCron, log)
	}
	return tm
}

// ==================== Lifecycle ====================

func (tm *TaskManager) Start() error {
	if tm.sweepTask != nil {
		if err := tm.sweepTask.Start(); err != nil {
			return err
		}
	}
	tm.log.Info().Interface("tasks", tm.Status()).Msg("background tasks started")
	return nil
}

func (tm *TaskManager) Stop() {
	if tm.sweepTask != nil {
		tm.sweepTask.Stop()
	}
	tm.log.Info().Msg("background tasks stopped")
}

// TriggerSweep runs the upload sweep now. Manual runs closer together than
// the configured cooldown return ErrTaskCoolingDown.
func (tm *TaskManager) TriggerSweep(ctx context.Context) (int, error) {
	if tm.sweepTask == nil {
		return 0, ErrTaskDisabled
	}
	if wait := tm.triggers.allow("upload_sweep", tm.sweepCooldown); wait > 0 {
		tm.log.Debug().Dur("retry_after", wait).Msg("manual sweep refused")
		return 0, ErrTaskCoolingDown
	}
	n, err := tm.sweepTask.Sweep(ctx)
	if err != nil {
		// a failed run should not block the retry
		tm.triggers.reset("upload_sweep")
	}
	return n, err
}

func (tm *TaskManager) Status() map[string]bool {
	return map[string]bool{
		"upload_sweep": tm.sweepTask != nil,
	}
}

type TaskError string

func (e TaskError) Error() string { return string(e) }

const (
	ErrTaskDisabled    TaskError = "task is disabled"
	ErrTaskCoolingDown TaskError = "task ran too recently"
)
