package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"bakery_planner_v1/internal/api/dto"
	"bakery_planner_v1/internal/service"
)

// VariantController serves /recipes/:id/variants.
type VariantController struct {
	variantSvc *service.VariantService
}

func NewVariantController(variantSvc *service.VariantService) *VariantController {
	return &VariantController{variantSvc: variantSvc}
}

// @Summary List the variants of a recipe
// @Tags Variant
// @Param id path int true "recipe id"
// @Param name query string false "name contains"
// @Param conversionType query string false "conversion type ids"
// @Param size query string false "size ids"
// @Param sizeExclude query string false "size ids to exclude"
// @Success 200 {object} dto.DataResp{data=[]dto.VariantResp}
// @Failure 404 {object} dto.ErrorResp
// @Router /recipes/{id}/variants [get]
func (ctl *VariantController) List(c *gin.Context) {
	recipeID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.VariantListReq
	if err := bindQuery(c, &req); err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.variantSvc.List(c.Request.Context(), recipeID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// @Summary Get a variant
// @Tags Variant
// @Param id path int true "recipe id"
// @Param variantId path int true "variant id"
// @Success 200 {object} dto.DataResp{data=dto.VariantResp}
// @Router /recipes/{id}/variants/{variantId} [get]
func (ctl *VariantController) Get(c *gin.Context) {
	ids, err := pathIDs(c, "id", "variantId")
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.variantSvc.Get(c.Request.Context(), ids[0], ids[1])
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// Scaled returns the variant with its ingredient quantities converted to the
// size given by ?size=.
// @Summary Scale a variant to another size
// @Tags Variant
// @Param id path int true "recipe id"
// @Param variantId path int true "variant id"
// @Param size query int true "target size id"
// @Success 200 {object} dto.DataResp{data=dto.ScaledVariantResp}
// @Failure 409 {object} dto.ErrorResp "no conversion between the sizes"
// @Router /recipes/{id}/variants/{variantId}/scaled [get]
func (ctl *VariantController) Scaled(c *gin.Context) {
	ids, err := pathIDs(c, "id", "variantId")
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.variantSvc.Scaled(c.Request.Context(), ids[0], ids[1], c.Query("size"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// @Summary Create a variant
// @Tags Variant
// @Accept json
// @Param id path int true "recipe id"
// @Param request body dto.VariantCreateReq true "variant"
// @Success 201 {object} dto.DataResp{data=dto.VariantResp}
// @Failure 400 {object} dto.ErrorResp
// @Failure 409 {object} dto.ErrorResp
// @Router /recipes/{id}/variants [post]
func (ctl *VariantController) Create(c *gin.Context) {
	recipeID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.VariantCreateReq
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.variantSvc.Create(c.Request.Context(), recipeID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, fmt.Sprintf("/recipes/%d/variants/%d", recipeID, resp.ID), resp)
}

// @Summary Update a variant
// @Description ingredients, when present, replace the whole list.
// @Tags Variant
// @Accept json
// @Param id path int true "recipe id"
// @Param variantId path int true "variant id"
// @Param request body dto.VariantUpdateReq true "changes"
// @Success 200 {object} dto.DataResp{data=dto.VariantResp}
// @Router /recipes/{id}/variants/{variantId} [patch]
func (ctl *VariantController) Update(c *gin.Context) {
	ids, err := pathIDs(c, "id", "variantId")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.VariantUpdateReq
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.variantSvc.Update(c.Request.Context(), ids[0], ids[1], req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// @Summary Delete a variant
// @Tags Variant
// @Param id path int true "recipe id"
// @Param variantId path int true "variant id"
// @Success 204
// @Router /recipes/{id}/variants/{variantId} [delete]
func (ctl *VariantController) Delete(c *gin.Context) {
	ids, err := pathIDs(c, "id", "variantId")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ctl.variantSvc.Delete(c.Request.Context(), ids[0], ids[1]); err != nil {
		respondError(c, err)
		return
	}
	respondNoContent(c)
}
