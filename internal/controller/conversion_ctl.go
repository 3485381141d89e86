package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"bakery_planner_v1/internal/api/dto"
	"bakery_planner_v1/internal/service"
)

// ConversionController serves /conversion_types and the sizes and conversions
// nested below a type.
type ConversionController struct {
	conversionSvc *service.ConversionService
}

func NewConversionController(conversionSvc *service.ConversionService) *ConversionController {
	return &ConversionController{conversionSvc: conversionSvc}
}

// ==================== ConversionType ====================

// @Summary List conversion types
// @Tags ConversionType
// @Param name query string false "name contains"
// @Success 200 {object} dto.DataResp{data=[]dto.ConversionTypeResp}
// @Router /conversion_types [get]
func (ctl *ConversionController) ListTypes(c *gin.Context) {
	var req dto.NameListReq
	if err := bindQuery(c, &req); err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.conversionSvc.ListTypes(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// @Summary Get a conversion type with its sizes
// @Tags ConversionType
// @Param id path int true "conversion type id"
// @Success 200 {object} dto.DataResp{data=dto.ConversionTypeResp}
// @Router /conversion_types/{id} [get]
func (ctl *ConversionController) GetType(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.conversionSvc.GetType(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// @Summary Create a conversion type
// @Tags ConversionType
// @Accept json
// @Param request body dto.NameReq true "conversion type"
// @Success 201 {object} dto.DataResp{data=dto.ConversionTypeResp}
// @Router /conversion_types [post]
func (ctl *ConversionController) CreateType(c *gin.Context) {
	var req dto.NameReq
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.conversionSvc.CreateType(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, fmt.Sprintf("/conversion_types/%d", resp.ID), resp)
}

// @Summary Rename a conversion type
// @Tags ConversionType
// @Accept json
// @Param id path int true "conversion type id"
// @Param request body dto.NameReq true "changes"
// @Success 200 {object} dto.DataResp{data=dto.ConversionTypeResp}
// @Router /conversion_types/{id} [patch]
func (ctl *ConversionController) UpdateType(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.NameReq
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.conversionSvc.UpdateType(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// @Summary Delete a conversion type with its sizes and conversions
// @Tags ConversionType
// @Param id path int true "conversion type id"
// @Success 204
// @Failure 409 {object} dto.ErrorResp "a size is still used"
// @Router /conversion_types/{id} [delete]
func (ctl *ConversionController) DeleteType(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ctl.conversionSvc.DeleteType(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondNoContent(c)
}

// ==================== Size ====================

// @Summary List the sizes of a conversion type
// @Tags Size
// @Param id path int true "conversion type id"
// @Param name query string false "name contains"
// @Success 200 {object} dto.DataResp{data=[]dto.SizeResp}
// @Router /conversion_types/{id}/sizes [get]
func (ctl *ConversionController) ListSizes(c *gin.Context) {
	typeID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.NameListReq
	if err := bindQuery(c, &req); err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.conversionSvc.ListSizes(c.Request.Context(), typeID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// @Summary Get a size
// @Tags Size
// @Param id path int true "conversion type id"
// @Param sizeId path int true "size id"
// @Success 200 {object} dto.DataResp{data=dto.SizeResp}
// @Router /conversion_types/{id}/sizes/{sizeId} [get]
func (ctl *ConversionController) GetSize(c *gin.Context) {
	ids, err := pathIDs(c, "id", "sizeId")
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.conversionSvc.GetSize(c.Request.Context(), ids[0], ids[1])
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// @Summary Create a size
// @Tags Size
// @Accept json
// @Param id path int true "conversion type id"
// @Param request body dto.NameReq true "size"
// @Success 201 {object} dto.DataResp{data=dto.SizeResp}
// @Router /conversion_types/{id}/sizes [post]
func (ctl *ConversionController) CreateSize(c *gin.Context) {
	typeID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.NameReq
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.conversionSvc.CreateSize(c.Request.Context(), typeID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, fmt.Sprintf("/conversion_types/%d/sizes/%d", typeID, resp.ID), resp)
}

// @Summary Rename a size
// @Tags Size
// @Accept json
// @Param id path int true "conversion type id"
// @Param sizeId path int true "size id"
// @Param request body dto.NameReq true "changes"
// @Success 200 {object} dto.DataResp{data=dto.SizeResp}
// @Router /conversion_types/{id}/sizes/{sizeId} [patch]
func (ctl *ConversionController) UpdateSize(c *gin.Context) {
	ids, err := pathIDs(c, "id", "sizeId")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.NameReq
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.conversionSvc.UpdateSize(c.Request.Context(), ids[0], ids[1], req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// @Summary Delete a size
// @Tags Size
// @Param id path int true "conversion type id"
// @Param sizeId path int true "size id"
// @Success 204
// @Failure 409 {object} dto.ErrorResp "still used by a variant or the schedule"
// @Router /conversion_types/{id}/sizes/{sizeId} [delete]
func (ctl *ConversionController) DeleteSize(c *gin.Context) {
	ids, err := pathIDs(c, "id", "sizeId")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ctl.conversionSvc.DeleteSize(c.Request.Context(), ids[0], ids[1]); err != nil {
		respondError(c, err)
		return
	}
	respondNoContent(c)
}

// ==================== Conversion ====================

// @Summary List conversions of a conversion type
// @Tags Conversion
// @Param id path int true "conversion type id"
// @Param fromSize query string false "source size ids"
// @Param toSize query string false "target size ids"
// @Success 200 {object} dto.DataResp{data=[]dto.ConversionResp}
// @Router /conversion_types/{id}/conversions [get]
func (ctl *ConversionController) ListConversions(c *gin.Context) {
	typeID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.ConversionListReq
	if err := bindQuery(c, &req); err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.conversionSvc.ListConversions(c.Request.Context(), typeID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// @Summary Get a conversion
// @Tags Conversion
// @Param id path int true "conversion type id"
// @Param conversionId path int true "conversion id"
// @Success 200 {object} dto.DataResp{data=dto.ConversionResp}
// @Router /conversion_types/{id}/conversions/{conversionId} [get]
func (ctl *ConversionController) GetConversion(c *gin.Context) {
	ids, err := pathIDs(c, "id", "conversionId")
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.conversionSvc.GetConversion(c.Request.Context(), ids[0], ids[1])
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// @Summary Create a conversion
// @Description fromSize and toSize must be two different sizes of the conversion type.
// @Tags Conversion
// @Accept json
// @Param id path int true "conversion type id"
// @Param request body dto.ConversionCreateReq true "conversion"
// @Success 201 {object} dto.DataResp{data=dto.ConversionResp}
// @Failure 409 {object} dto.ErrorResp
// @Router /conversion_types/{id}/conversions [post]
func (ctl *ConversionController) CreateConversion(c *gin.Context) {
	typeID, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.ConversionCreateReq
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.conversionSvc.CreateConversion(c.Request.Context(), typeID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, fmt.Sprintf("/conversion_types/%d/conversions/%d", typeID, resp.ID), resp)
}

// @Summary Change a multiplicator
// @Tags Conversion
// @Accept json
// @Param id path int true "conversion type id"
// @Param conversionId path int true "conversion id"
// @Param request body dto.ConversionUpdateReq true "changes"
// @Success 200 {object} dto.DataResp{data=dto.ConversionResp}
// @Router /conversion_types/{id}/conversions/{conversionId} [patch]
func (ctl *ConversionController) UpdateConversion(c *gin.Context) {
	ids, err := pathIDs(c, "id", "conversionId")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.ConversionUpdateReq
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.conversionSvc.UpdateConversion(c.Request.Context(), ids[0], ids[1], req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

// @Summary Delete a conversion
// @Tags Conversion
// @Param id path int true "conversion type id"
// @Param conversionId path int true "conversion id"
// @Success 204
// @Router /conversion_types/{id}/conversions/{conversionId} [delete]
func (ctl *ConversionController) DeleteConversion(c *gin.Context) {
	ids, err := pathIDs(c, "id", "conversionId")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ctl.conversionSvc.DeleteConversion(c.Request.Context(), ids[0], ids[1]); err != nil {
		respondError(c, err)
		return
	}
	respondNoContent(c)
}
