package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"bakery_planner_v1/internal/api/dto"
	"bakery_planner_v1/internal/service"
)

type BranchController struct {
	branchSvc *service.BranchService
}

func NewBranchController(branchSvc *service.BranchService) *BranchController {
	return &BranchController{branchSvc: branchSvc}
}

// List lists branches
// @Summary List branches
// @Description Filters combine with AND. recipe/recipeExclude take comma separated ids, recipeNone=true also matches branches without recipes.
// @Tags Branch
// @Produce json
// @Param name query string false "name contains"
// @Param slug query string false "exact slug"
// @Param recipe query string false "recipe ids"
// @Param recipeExclude query string false "recipe ids to exclude"
// @Param recipeNone query bool false "include branches without recipes"
// @Param limit query int false "page size" default(100)
// @Param offset query int false "offset"
// @Success 200 {object} dto.DataResp{data=[]dto.BranchResp}
// @Failure 400 {object} dto.ErrorResp
// @Router /branches [get]
func (ctl *BranchController) List(c *gin.Context) {
	var req dto.BranchListReq
	if err := bindQuery(c, &req); err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.branchSvc.List(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// Get branch detail
// @Summary Get a branch
// @Tags Branch
// @Produce json
// @Param id path int true "branch id"
// @Success 200 {object} dto.DataResp{data=dto.BranchDetailResp}
// @Failure 404 {object} dto.ErrorResp
// @Router /branches/{id} [get]
func (ctl *BranchController) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.branchSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// GetBySlug
// @Summary Get a branch by slug
// @Tags Branch
// @Produce json
// @Param slug path string true "branch slug"
// @Success 200 {object} dto.DataResp{data=dto.BranchDetailResp}
// @Failure 404 {object} dto.ErrorResp
// @Router /branches/slug/{slug} [get]
func (ctl *BranchController) GetBySlug(c *gin.Context) {
	resp, err := ctl.branchSvc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// Create
// @Summary Create a branch
// @Tags Branch
// @Accept json
// @Produce json
// @Param request body dto.BranchCreateReq true "branch"
// @Success 201 {object} dto.DataResp{data=dto.BranchDetailResp}
// @Failure 400 {object} dto.ErrorResp
// @Failure 409 {object} dto.ErrorResp
// @Router /branches [post]
func (ctl *BranchController) Create(c *gin.Context) {
	var req dto.BranchCreateReq
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.branchSvc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, fmt.Sprintf("/branches/%d", resp.ID), resp)
}

// Update
// @Summary Update a branch
// @Description recipe_ids {add, rmv} links and unlinks recipes in the same transaction as the rename.
// @Tags Branch
// @Accept json
// @Produce json
// @Param id path int true "branch id"
// @Param request body dto.BranchUpdateReq true "changes"
// @Success 200 {object} dto.DataResp{data=dto.BranchDetailResp}
// @Failure 400 {object} dto.ErrorResp
// @Failure 404 {object} dto.ErrorResp
// @Failure 409 {object} dto.ErrorResp
// @Router /branches/{id} [patch]
func (ctl *BranchController) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.BranchUpdateReq
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.branchSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// Delete
// @Summary Delete a branch
// @Tags Branch
// @Param id path int true "branch id"
// @Success 204
// @Failure 404 {object} dto.ErrorResp
// @Router /branches/{id} [delete]
func (ctl *BranchController) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ctl.branchSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondNoContent(c)
}
