package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"bakery_planner_v1/internal/controller"
	"bakery_planner_v1/internal/middleware"

	_ "bakery_planner_v1/docs"
)

// Controllers groups every handler set the router mounts.
type Controllers struct {
	Branch     *controller.BranchController
	Category   *controller.CategoryController
	Recipe     *controller.RecipeController
	Variant    *controller.VariantController
	Conversion *controller.ConversionController
	Schedule   *controller.ScheduleController
	Health     *controller.HealthController
	Task       *controller.TaskController
}

// SetupRouter builds the engine with the request middleware and all routes.
func SetupRouter(ctls *Controllers, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestContext(log), middleware.AccessLog(), middleware.Recovery())
	InitRoutes(r, ctls)
	return r
}

// InitRoutes registers the route table on r.
func InitRoutes(r *gin.Engine, ctls *Controllers) {
	// http://localhost:8080/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", ctls.Health.Check)
	r.POST("/tasks/upload_sweep", ctls.Task.TriggerUploadSweep)

	branches := r.Group("/branches")
	{
		branches.GET("", ctls.Branch.List)
		branches.POST("", ctls.Branch.Create)
		branches.GET("/slug/:slug", ctls.Branch.GetBySlug)
		branches.GET("/:id", ctls.Branch.Get)
		branches.PATCH("/:id", ctls.Branch.Update)
		branches.DELETE("/:id", ctls.Branch.Delete)

		schedule := branches.Group("/:id/schedule")
		{
			schedule.GET("", ctls.Schedule.List)
			schedule.POST("", ctls.Schedule.Create)
			schedule.GET("/:itemId", ctls.Schedule.Get)
			schedule.PATCH("/:itemId", ctls.Schedule.Update)
			schedule.DELETE("/:itemId", ctls.Schedule.Delete)
		}
	}

	categories := r.Group("/categories")
	{
		categories.GET("", ctls.Category.List)
		categories.POST("", ctls.Category.Create)
		categories.GET("/slug/:slug", ctls.Category.GetBySlug)
		categories.GET("/:id", ctls.Category.Get)
		categories.PATCH("/:id", ctls.Category.Update)
		categories.DELETE("/:id", ctls.Category.Delete)
	}

	recipes := r.Group("/recipes")
	{
		recipes.GET("", ctls.Recipe.List)
		recipes.POST("", ctls.Recipe.Create)
		recipes.GET("/slug/:slug", ctls.Recipe.GetBySlug)
		recipes.GET("/:id", ctls.Recipe.Get)
		recipes.PATCH("/:id", ctls.Recipe.Update)
		recipes.DELETE("/:id", ctls.Recipe.Delete)

		recipes.GET("/:id/image", ctls.Recipe.GetImage)
		recipes.PUT("/:id/image", ctls.Recipe.PutImage)
		recipes.DELETE("/:id/image", ctls.Recipe.DeleteImage)

		variants := recipes.Group("/:id/variants")
		{
			variants.GET("", ctls.Variant.List)
			variants.POST("", ctls.Variant.Create)
			variants.GET("/:variantId", ctls.Variant.Get)
			variants.GET("/:variantId/scaled", ctls.Variant.Scaled)
			variants.PATCH("/:variantId", ctls.Variant.Update)
			variants.DELETE("/:variantId", ctls.Variant.Delete)
		}
	}

	types := r.Group("/conversion_types")
	{
		types.GET("", ctls.Conversion.ListTypes)
		types.POST("", ctls.Conversion.CreateType)
		types.GET("/:id", ctls.Conversion.GetType)
		types.PATCH("/:id", ctls.Conversion.UpdateType)
		types.DELETE("/:id", ctls.Conversion.DeleteType)

		sizes := types.Group("/:id/sizes")
		{
			sizes.GET("", ctls.Conversion.ListSizes)
			sizes.POST("", ctls.Conversion.CreateSize)
			sizes.GET("/:sizeId", ctls.Conversion.GetSize)
			sizes.PATCH("/:sizeId", ctls.Conversion.UpdateSize)
			sizes.DELETE("/:sizeId", ctls.Conversion.DeleteSize)
		}

		conversions := types.Group("/:id/conversions")
		{
			conversions.GET("", ctls.Conversion.ListConversions)
			conversions.POST("", ctls.Conversion.CreateConversion)
			conversions.GET("/:conversionId", ctls.Conversion.GetConversion)
			conversions.PATCH("/:conversionId", ctls.Conversion.UpdateConversion)
			conversions.DELETE("/:conversionId", ctls.Conversion.DeleteConversion)
		}
	}
}
