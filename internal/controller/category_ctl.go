package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"bakery_planner_v1/internal/api/dto"
	"bakery_planner_v1/internal/service"
)

type CategoryController struct {
	categorySvc *service.CategoryService
}

func NewCategoryController(categorySvc *service.CategoryService) *CategoryController {
	return &CategoryController{categorySvc: categorySvc}
}

// List
// @Summary List categories
// @Tags Category
// @Produce json
// @Param name query string false "name contains"
// @Param slug query string false "exact slug"
// @Param recipe query string false "recipe ids"
// @Param recipeExclude query string false "recipe ids to exclude"
// @Param recipeNone query bool false "include categories without recipes"
// @Success 200 {object} dto.DataResp{data=[]dto.CategoryResp}
// @Router /categories [get]
func (ctl *CategoryController) List(c *gin.Context) {
	var req dto.CategoryListReq
	if err := bindQuery(c, &req); err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.categorySvc.List(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// @Summary Get a category
// @Tags Category
// @Param id path int true "category id"
// @Success 200 {object} dto.DataResp{data=dto.CategoryResp}
// @Router /categories/{id} [get]
func (ctl *CategoryController) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.categorySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// @Summary Get a category by slug
// @Tags Category
// @Param slug path string true "category slug"
// @Success 200 {object} dto.DataResp{data=dto.CategoryResp}
// @Router /categories/slug/{slug} [get]
func (ctl *CategoryController) GetBySlug(c *gin.Context) {
	resp, err := ctl.categorySvc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// @Summary Create a category
// @Tags Category
// @Accept json
// @Param request body dto.CategoryCreateReq true "category"
// @Success 201 {object} dto.DataResp{data=dto.CategoryResp}
// @Router /categories [post]
func (ctl *CategoryController) Create(c *gin.Context) {
	var req dto.CategoryCreateReq
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.categorySvc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, fmt.Sprintf("/categories/%d", resp.ID), resp)
}

// @Summary Update a category
// @Tags Category
// @Accept json
// @Param id path int true "category id"
// @Param request body dto.CategoryUpdateReq true "changes"
// @Success 200 {object} dto.DataResp{data=dto.CategoryResp}
// @Router /categories/{id} [patch]
func (ctl *CategoryController) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.CategoryUpdateReq
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.categorySvc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// @Summary Delete a category
// @Tags Category
// @Param id path int true "category id"
// @Success 204
// @Router /categories/{id} [delete]
func (ctl *CategoryController) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ctl.categorySvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondNoContent(c)
}
