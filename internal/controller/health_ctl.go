package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bakery_planner_v1/internal/service"
	"bakery_planner_v1/pkg/logger"
)

type HealthController struct {
	healthSvc *service.HealthService
}

func NewHealthController(healthSvc *service.HealthService) *HealthController {
	return &HealthController{healthSvc: healthSvc}
}

// Check
// @Summary Liveness
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResp
// @Failure 503 {object} dto.HealthResp
// @Router /health [get]
func (ctl *HealthController) Check(c *gin.Context) {
	resp, err := ctl.healthSvc.Check(c.Request.Context())
	if err != nil {
		logger.Ctx(c.Request.Context()).Error().Err(err).Msg("health check failed")
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
