package task

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakery_planner_v1/internal/model"
	"bakery_planner_v1/internal/repository"
	"bakery_planner_v1/internal/service"
	"bakery_planner_v1/pkg/config"
	"bakery_planner_v1/pkg/database"
	"bakery_planner_v1/pkg/logger"
)

// ==================== In-memory storage ====================

type memStorage struct {
	mu      sync.Mutex
	objects map[string]time.Time
}

func newMemStorage() *memStorage { return &memStorage{objects: map[string]time.Time{}} }

func (m *memStorage) put(key string, modified time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = modified
}

func (m *memStorage) Put(_ context.Context, key string, _ []byte, _ string) error {
	m.put(key, time.Now())
	return nil
}

func (m *memStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return nil, service.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(nil)), nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return service.ErrObjectNotFound
	}
	delete(m.objects, key)
	return nil
}

func (m *memStorage) List(_ context.Context) ([]service.StoredObject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]service.StoredObject, 0, len(m.objects))
	for k, t := range m.objects {
		out = append(out, service.StoredObject{Key: k, Modified: t})
	}
	return out, nil
}

func (m *memStorage) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.objects))
	for k := range m.objects {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ==================== Helpers ====================

func setupRecipes(t *testing.T) repository.RecipeRepository {
	t.Helper()
	db, err := database.Open(
		config.DBConfig{Driver: "sqlite", SQLitePath: ":memory:"},
		logger.NewWithWriter(&bytes.Buffer{}, "error"),
		model.All()...,
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return repository.NewRecipeRepository(db)
}

// ==================== UploadSweepTask ====================

func TestUploadSweepTask_Sweep(t *testing.T) {
	ctx := context.Background()
	recipes := setupRecipes(t)
	storage := newMemStorage()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	old := now.Add(-2 * time.Hour)

	kept := "2024/05/01/kept.png"
	require.NoError(t, recipes.Create(ctx, &model.Recipe{Name: "Roggenbrot", Slug: "roggenbrot", ImagePath: &kept}))

	storage.put(kept, old)
	storage.put("2024/05/01/orphan.png", old)
	storage.put("2024/05/01/fresh.png", now.Add(-5*time.Minute))

	task := NewUploadSweepTask(recipes, storage, "", logger.NewWithWriter(&bytes.Buffer{}, "error"))
	task.now = func() time.Time { return now }

	removed, err := task.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{"2024/05/01/fresh.png", kept}, storage.keys())
}

func TestUploadSweepTask_StartRejectsBadSchedule(t *testing.T) {
	task := NewUploadSweepTask(setupRecipes(t), newMemStorage(), "not a cron line", logger.NewWithWriter(&bytes.Buffer{}, "error"))
	assert.Error(t, task.Start())
}

func TestTaskManager(t *testing.T) {
	var buf bytes.Buffer
	tm := NewTaskManager(&TaskManagerDeps{Recipes: setupRecipes(t), Storage: newMemStorage()}, nil, logger.NewWithWriter(&buf, "info"))

	require.NoError(t, tm.Start())
	assert.Equal(t, map[string]bool{"upload_sweep": true}, tm.Status())

	removed, err := tm.TriggerSweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, removed)
	_, err = tm.TriggerSweep(context.Background())
	assert.ErrorIs(t, err, ErrTaskCoolingDown)
	tm.Stop()

	disabled := NewTaskManager(&TaskManagerDeps{}, &TaskManagerConfig{}, logger.NewWithWriter(&buf, "info"))
	_, err = disabled.TriggerSweep(context.Background())
	assert.ErrorIs(t, err, ErrTaskDisabled)
}

func TestCooldown(t *testing.T) {
	now := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)
	c := newCooldown()
	c.now = func() time.Time { return now }

	assert.Zero(t, c.allow("k", time.Minute))
	now = now.Add(20 * time.Second)
	assert.Equal(t, 40*time.Second, c.allow("k", time.Minute))
	assert.Zero(t, c.allow("other", time.Minute))

	now = now.Add(time.Minute)
	assert.Zero(t, c.allow("k", time.Minute))

	c.reset("k")
	assert.Zero(t, c.allow("k", time.Minute))
}
