package task

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"bakery_planner_v1/internal/repository"
	"bakery_planner_v1/internal/service"
	"bakery_planner_v1/pkg/logger"
	"bakery_planner_v1/pkg/utils"
)

// UploadSweepTask removes stored images no recipe points at. Uploads are
// written before the recipe row exists, so a crash in between leaves files
// behind; only objects older than minAge are touched.
type UploadSweepTask struct {
	recipes repository.RecipeRepository
	storage service.StorageProvider
	cron    *cron.Cron
	spec    string
	log     zerolog.Logger

	minAge           time.Duration
	concurrencyLimit int
	now              func() time.Time
}

func NewUploadSweepTask(recipes repository.RecipeRepository, storage service.StorageProvider, spec string, log zerolog.Logger) *UploadSweepTask {
	if spec == "" {
		spec = "0 0 * * * *"
	}
	return &UploadSweepTask{
		recipes:          recipes,
		storage:          storage,
		cron:             cron.New(cron.WithSeconds()),
		spec:             spec,
		log:              log.With().Str("task", "upload_sweep").Logger(),
		minAge:           time.Hour,
		concurrencyLimit: 8,
		now:              time.Now,
	}
}

func (t *UploadSweepTask) Start() error {
	_, err := t.cron.AddFunc(t.spec, func() {
		ctx, cancel := context.WithTimeout(logger.Into(context.Background(), t.log), 10*time.Minute)
		defer cancel()
		if _, err := t.Sweep(ctx); err != nil {
			t.log.Error().Err(err).Msg("upload sweep failed")
		}
	})
	if err != nil {
		return err
	}
	t.cron.Start()
	t.log.Info().Str("schedule", t.spec).Msg("upload sweep scheduled")
	return nil
}

// Stop waits for a running sweep to finish.
func (t *UploadSweepTask) Stop() {
	<-t.cron.Stop().Done()
}

// Sweep deletes unreferenced objects and returns how many were removed.
func (t *UploadSweepTask) Sweep(ctx context.Context) (int, error) {
	objects, err := t.storage.List(ctx)
	if err != nil {
		return 0, err
	}
	paths, err := t.recipes.ImagePaths(ctx)
	if err != nil {
		return 0, err
	}
	referenced := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		referenced[utils.NormalizePath(p)] = struct{}{}
	}

	cutoff := t.now().Add(-t.minAge)
	sem := make(chan struct{}, t.concurrencyLimit)
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		removed int
	)
	for _, obj := range objects {
		if _, ok := referenced[obj.Key]; ok || obj.Modified.After(cutoff) {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := t.storage.Delete(ctx, key); err != nil {
				t.log.Warn().Err(err).Str("key", key).Msg("could not remove orphaned upload")
				return
			}
			mu.Lock()
			removed++
			mu.Unlock()
		}(obj.Key)
	}
	wg.Wait()

	t.log.Info().Int("scanned", len(objects)).Int("removed", removed).Msg("upload sweep done")
	return removed, ctx.Err()
}
