package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bakery_planner_v1/internal/api/dto"
	"bakery_planner_v1/internal/errs"
	"bakery_planner_v1/internal/service"
	"bakery_planner_v1/internal/validator"
)

type RecipeController struct {
	recipeSvc *service.RecipeService
}

func NewRecipeController(recipeSvc *service.RecipeService) *RecipeController {
	return &RecipeController{recipeSvc: recipeSvc}
}

// List
// @Summary List recipes
// @Description branch/category and their Exclude variants take comma separated ids; *None=true also matches recipes without any link.
// @Tags Recipe
// @Produce json
// @Param name query string false "name contains"
// @Param slug query string false "exact slug"
// @Param branch query string false "branch ids"
// @Param branchExclude query string false "branch ids to exclude"
// @Param branchNone query bool false "include recipes without branch"
// @Param category query string false "category ids"
// @Param categoryExclude query string false "category ids to exclude"
// @Param categoryNone query bool false "include recipes without category"
// @Param limit query int false "page size" default(100)
// @Param offset query int false "offset"
// @Success 200 {object} dto.DataResp{data=[]dto.RecipeResp}
// @Router /recipes [get]
func (ctl *RecipeController) List(c *gin.Context) {
	var req dto.RecipeListReq
	if err := bindQuery(c, &req); err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.recipeSvc.List(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	for i := range resp {
		withImageURI(c, &resp[i])
	}
	respondData(c, http.StatusOK, resp)
}

// @Summary Get a recipe
// @Tags Recipe
// @Param id path int true "recipe id"
// @Success 200 {object} dto.DataResp{data=dto.RecipeResp}
// @Failure 404 {object} dto.ErrorResp
// @Router /recipes/{id} [get]
func (ctl *RecipeController) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.recipeSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	withImageURI(c, resp)
	respondData(c, http.StatusOK, resp)
}

// @Summary Get a recipe by slug
// @Tags Recipe
// @Param slug path string true "recipe slug"
// @Success 200 {object} dto.DataResp{data=dto.RecipeResp}
// @Router /recipes/slug/{slug} [get]
func (ctl *RecipeController) GetBySlug(c *gin.Context) {
	resp, err := ctl.recipeSvc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	withImageURI(c, resp)
	respondData(c, http.StatusOK, resp)
}

// Create accepts JSON, or multipart/form-data with the same fields plus an
// optional "image" file.
// @Summary Create a recipe
// @Tags Recipe
// @Accept json,mpfd
// @Produce json
// @Param request body dto.RecipeCreateReq false "recipe (JSON)"
// @Param image formData file false "recipe image (multipart)"
// @Success 201 {object} dto.DataResp{data=dto.RecipeResp}
// @Failure 400 {object} dto.ErrorResp
// @Failure 409 {object} dto.ErrorResp
// @Router /recipes [post]
func (ctl *RecipeController) Create(c *gin.Context) {
	var req dto.RecipeCreateReq
	var image io.Reader

	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			respondError(c, errs.Syntax(err))
			return
		}
		req = recipeFromForm(form)
		if files := form.File["image"]; len(files) > 0 {
			f, err := files[0].Open()
			if err != nil {
				respondError(c, errs.Internal(err))
				return
			}
			defer f.Close()
			image = f
		}
	} else if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	resp, err := ctl.recipeSvc.Create(c.Request.Context(), req, image)
	if err != nil {
		respondError(c, err)
		return
	}
	withImageURI(c, resp)
	respondCreated(c, fmt.Sprintf("/recipes/%d", resp.ID), resp)
}

// @Summary Update a recipe
// @Description description null clears it; branch_ids and category_ids take {add, rmv}.
// @Tags Recipe
// @Accept json
// @Param id path int true "recipe id"
// @Param request body dto.RecipeUpdateReq true "changes"
// @Success 200 {object} dto.DataResp{data=dto.RecipeResp}
// @Router /recipes/{id} [patch]
func (ctl *RecipeController) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.RecipeUpdateReq
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	resp, err := ctl.recipeSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	withImageURI(c, resp)
	respondData(c, http.StatusOK, resp)
}

// @Summary Delete a recipe
// @Description Variants, schedule entries and the stored image go with it.
// @Tags Recipe
// @Param id path int true "recipe id"
// @Success 204
// @Router /recipes/{id} [delete]
func (ctl *RecipeController) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ctl.recipeSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondNoContent(c)
}

// ==================== Image ====================

// @Summary Recipe image
// @Tags Recipe
// @Produce image/jpeg,image/png,image/gif,image/webp
// @Param id path int true "recipe id"
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResp
// @Router /recipes/{id}/image [get]
func (ctl *RecipeController) GetImage(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	rc, contentType, err := ctl.recipeSvc.Image(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	defer rc.Close()
	c.DataFromReader(http.StatusOK, -1, contentType, rc, map[string]string{
		"Cache-Control": "no-cache",
	})
}

// PutImage takes either a multipart "image" file or the raw image as body.
// @Summary Replace the recipe image
// @Tags Recipe
// @Accept mpfd
// @Param id path int true "recipe id"
// @Param image formData file true "recipe image"
// @Success 200 {object} dto.DataResp{data=dto.RecipeResp}
// @Router /recipes/{id}/image [put]
func (ctl *RecipeController) PutImage(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var image io.Reader = c.Request.Body
	if isMultipart(c) {
		fh, err := c.FormFile("image")
		if errors.Is(err, http.ErrMissingFile) {
			respondError(c, errs.Validation([]errs.Detail{{Code: service.ImageInvalid, Message: "recipe.image is missing"}}))
			return
		}
		if err != nil {
			respondError(c, errs.Syntax(err))
			return
		}
		f, err := fh.Open()
		if err != nil {
			respondError(c, errs.Internal(err))
			return
		}
		defer f.Close()
		image = f
	}

	resp, err := ctl.recipeSvc.ReplaceImage(c.Request.Context(), id, image)
	if err != nil {
		respondError(c, err)
		return
	}
	withImageURI(c, resp)
	respondData(c, http.StatusOK, resp)
}

// @Summary Remove the recipe image
// @Tags Recipe
// @Param id path int true "recipe id"
// @Success 204
// @Router /recipes/{id}/image [delete]
func (ctl *RecipeController) DeleteImage(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ctl.recipeSvc.DeleteImage(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondNoContent(c)
}

// ==================== Helpers ====================

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// recipeFromForm maps multipart fields onto the JSON request shape. Id lists
// may be repeated fields, comma separated or a JSON array. Browsers submit
// untouched inputs as empty strings, so blank optional fields count as absent.
func recipeFromForm(form *multipart.Form) dto.RecipeCreateReq {
	var req dto.RecipeCreateReq
	if v, ok := form.Value["name"]; ok && len(v) > 0 {
		req.Name = validator.TextOf(v[0])
	}
	if v := formValues(form.Value["description"]); len(v) > 0 {
		req.Description = validator.TextOf(v[0])
	}
	req.BranchIDs = formIDs(form.Value["branch_ids"])
	req.CategoryIDs = formIDs(form.Value["category_ids"])
	return req
}

// formValues drops blank entries.
func formValues(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func formIDs(values []string) validator.IDList {
	values = formValues(values)
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var l validator.IDList
		if err := json.Unmarshal([]byte(values[0]), &l); err != nil {
			return validator.IDList{Present: true}
		}
		return l
	}
	return validator.ParseIDList(values)
}

// withImageURI turns the stored image path into the URL serving it.
func withImageURI(c *gin.Context, resp *dto.RecipeResp) {
	if resp == nil || resp.Image == nil {
		return
	}
	uri := fmt.Sprintf("%s://%s/recipes/%d/image", requestScheme(c), c.Request.Host, resp.ID)
	resp.Image = &uri
}

func requestScheme(c *gin.Context) string {
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		return strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	if c.Request.TLS != nil {
		return "https"
	}
	return "http"
}
