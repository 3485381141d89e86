package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"bakery_planner_v1/internal/controller"
	"bakery_planner_v1/internal/model"
	"bakery_planner_v1/internal/repository"
	"bakery_planner_v1/internal/router"
	"bakery_planner_v1/internal/service"
	"bakery_planner_v1/internal/task"
	"bakery_planner_v1/pkg/config"
	"bakery_planner_v1/pkg/database"
	"bakery_planner_v1/pkg/logger"
)

// @title Bakery Planner API
// @version 1.0
// @description Branches, recipes, variants, size conversions and the weekly production schedule.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	if cfg.App.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. database
	db, err := database.Open(cfg.DB, log, model.All()...)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("database unavailable")
	}
	defer func() { _ = database.Close(db) }()

	// 2. dependencies
	deps, err := initDependencies(db, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise dependencies")
	}

	// 3. background tasks
	if err := deps.Tasks.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start background tasks")
	}
	defer deps.Tasks.Stop()

	// 4. routes
	r := router.SetupRouter(deps.Controllers, log)

	// 5. serve
	startServer(r, cfg.HTTP, log)
}

// ==================== Dependencies ====================

type Dependencies struct {
	DB          *gorm.DB
	UoW         *repository.UnitOfWork
	Services    *Services
	Controllers *router.Controllers
	Tasks       *task.TaskManager
}

type Services struct {
	Storage    *service.StorageService
	Branch     *service.BranchService
	Category   *service.CategoryService
	Recipe     *service.RecipeService
	Variant    *service.VariantService
	Conversion *service.ConversionService
	Schedule   *service.ScheduleService
	Health     *service.HealthService
}

func initDependencies(db *gorm.DB, cfg *config.Config, log zerolog.Logger) (*Dependencies, error) {
	uow := repository.NewUnitOfWork(db)

	provider, err := service.NewStorageProvider(context.Background(), cfg.Storage)
	if err != nil {
		return nil, err
	}
	storageSvc := service.NewStorageService(provider, cfg.Storage.MaxBytes)

	services := &Services{
		Storage:    storageSvc,
		Branch:     service.NewBranchService(uow),
		Category:   service.NewCategoryService(uow),
		Recipe:     service.NewRecipeService(uow, storageSvc),
		Variant:    service.NewVariantService(uow),
		Conversion: service.NewConversionService(uow),
		Schedule:   service.NewScheduleService(uow),
		Health:     service.NewHealthService(uow),
	}

	tasks := task.NewTaskManager(&task.TaskManagerDeps{
		Recipes: uow.Recipes,
		Storage: provider,
	}, &task.TaskManagerConfig{
		SweepEnabled:  true,
		SweepCron:     cfg.Task.UploadSweepCron,
		SweepCooldown: time.Minute,
	}, log)

	return &Dependencies{
		DB:          db,
		UoW:         uow,
		Services:    services,
		Controllers: initControllers(services, tasks),
		Tasks:       tasks,
	}, nil
}

func initControllers(svc *Services, tasks *task.TaskManager) *router.Controllers {
	return &router.Controllers{
		Branch:     controller.NewBranchController(svc.Branch),
		Category:   controller.NewCategoryController(svc.Category),
		Recipe:     controller.NewRecipeController(svc.Recipe),
		Variant:    controller.NewVariantController(svc.Variant),
		Conversion: controller.NewConversionController(svc.Conversion),
		Schedule:   controller.NewScheduleController(svc.Schedule),
		Health:     controller.NewHealthController(svc.Health),
		Task:       controller.NewTaskController(tasks),
	}
}

// ==================== Server ====================

func startServer(r *gin.Engine, cfg config.HTTPConfig, log zerolog.Logger) {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	// in-flight requests get 30s
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
		return
	}
	log.Info().Msg("server stopped")
}
