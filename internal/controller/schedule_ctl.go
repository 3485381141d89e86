package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"bakery_planner_v1/internal/api/dto"
	"bakery_planner_v1/internal/service"
)

type ScheduleController struct {
	scheduleSvc *service.ScheduleService
}

func NewScheduleController(scheduleSvc *service.ScheduleService) *ScheduleController {
	return &ScheduleController{scheduleSvc: scheduleSvc}
}

// List
// @Summary Weekly schedule of a branch
// @Tags Schedule
// @Param id path int true "branch id"
// @Param day query string false "weekdays 1-7, comma separated"
// @Param variant query string false "variant ids"
// @Param size query string false "size ids"
// @Param limit query int false "page size" default(100)
// @Param offset query int false "offset"
// @Success 200 {object} dto.DataResp{data=[]dto.ScheduledItemResp}
// @Router /branches/{id}/schedule [get]
func (ctl *ScheduleController) List(c *gin.Context) {
	branchID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.ScheduleListReq
	if err := bindQuery(c, &req); err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.scheduleSvc.List(c.Request.Context(), branchID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// @Summary Get a scheduled item
// @Tags Schedule
// @Param id path int true "branch id"
// @Param itemId path int true "item id"
// @Success 200 {object} dto.DataResp{data=dto.ScheduledItemResp}
// @Router /branches/{id}/schedule/{itemId} [get]
func (ctl *ScheduleController) Get(c *gin.Context) {
	ids, err := pathIDs(c, "id", "itemId")
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.scheduleSvc.Get(c.Request.Context(), ids[0], ids[1])
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// @Summary Schedule a variant
// @Description The variant must belong to a recipe offered by the branch, the size to the variant's conversion type.
// @Tags Schedule
// @Accept json
// @Param id path int true "branch id"
// @Param request body dto.ScheduleCreateReq true "item"
// @Success 201 {object} dto.DataResp{data=dto.ScheduledItemResp}
// @Failure 409 {object} dto.ErrorResp
// @Router /branches/{id}/schedule [post]
func (ctl *ScheduleController) Create(c *gin.Context) {
	branchID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.ScheduleCreateReq
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.scheduleSvc.Create(c.Request.Context(), branchID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, fmt.Sprintf("/branches/%d/schedule/%d", branchID, resp.ID), resp)
}

// @Summary Update a scheduled item
// @Tags Schedule
// @Accept json
// @Param id path int true "branch id"
// @Param itemId path int true "item id"
// @Param request body dto.ScheduleUpdateReq true "changes"
// @Success 200 {object} dto.DataResp{data=dto.ScheduledItemResp}
// @Router /branches/{id}/schedule/{itemId} [patch]
func (ctl *ScheduleController) Update(c *gin.Context) {
	ids, err := pathIDs(c, "id", "itemId")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.ScheduleUpdateReq
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.scheduleSvc.Update(c.Request.Context(), ids[0], ids[1], req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// @Summary Remove a scheduled item
// @Tags Schedule
// @Param id path int true "branch id"
// @Param itemId path int true "item id"
// @Success 204
// @Router /branches/{id}/schedule/{itemId} [delete]
func (ctl *ScheduleController) Delete(c *gin.Context) {
	ids, err := pathIDs(c, "id", "itemId")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ctl.scheduleSvc.Delete(c.Request.Context(), ids[0], ids[1]); err != nil {
		respondError(c, err)
		return
	}
	respondNoContent(c)
}
