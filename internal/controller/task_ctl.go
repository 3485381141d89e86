package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bakery_planner_v1/internal/api/dto"
	"bakery_planner_v1/internal/errs"
	"bakery_planner_v1/internal/task"
)

// UploadSweeper runs the orphaned upload sweep on demand.
type UploadSweeper interface {
	TriggerSweep(ctx context.Context) (int, error)
}

type TaskController struct {
	tasks UploadSweeper
}

func NewTaskController(tasks UploadSweeper) *TaskController {
	return &TaskController{tasks: tasks}
}

// TriggerUploadSweep
// @Summary Run the orphaned upload sweep now
// @Tags Task
// @Produce json
// @Success 200 {object} dto.DataResp{data=dto.SweepResp}
// @Failure 404 {object} dto.ErrorResp
// @Failure 429 {object} dto.ErrorResp
// @Router /tasks/upload_sweep [post]
func (ctl *TaskController) TriggerUploadSweep(c *gin.Context) {
	removed, err := ctl.tasks.TriggerSweep(c.Request.Context())
	if err != nil {
		respondError(c, taskError(err))
		return
	}
	respondData(c, http.StatusOK, dto.SweepResp{Removed: removed})
}

func taskError(err error) error {
	switch {
	case errors.Is(err, task.ErrTaskDisabled):
		return errs.NotFound("upload sweep task")
	case errors.Is(err, task.ErrTaskCoolingDown):
		return errs.TooManyRequests("TASK_COOLING_DOWN", "upload sweep ran too recently, retry later", err)
	}
	return err
}
