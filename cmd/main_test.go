package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakery_planner_v1/internal/model"
	"bakery_planner_v1/internal/router"
	"bakery_planner_v1/pkg/config"
	"bakery_planner_v1/pkg/database"
	"bakery_planner_v1/pkg/logger"
)

func TestInitDependencies_WiresEveryRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.NewWithWriter(&bytes.Buffer{}, "error")
	cfg := &config.Config{
		DB:      config.DBConfig{Driver: "sqlite", SQLitePath: ":memory:"},
		Storage: config.StorageConfig{Provider: "local", UploadDir: t.TempDir(), MaxBytes: 1 << 20},
		Task:    config.TaskConfig{UploadSweepCron: "0 0 * * * *"},
	}

	db, err := database.Open(cfg.DB, log, model.All()...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	deps, err := initDependencies(db, cfg, log)
	require.NoError(t, err)
	require.NoError(t, deps.Tasks.Start())
	t.Cleanup(deps.Tasks.Stop)

	r := router.SetupRouter(deps.Controllers, log)
	for _, path := range []string{"/health", "/branches", "/categories", "/recipes", "/conversion_types"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tasks/upload_sweep", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
