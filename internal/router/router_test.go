package router

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakery_planner_v1/internal/api/dto"
	"bakery_planner_v1/internal/controller"
	"bakery_planner_v1/internal/model"
	"bakery_planner_v1/internal/repository"
	"bakery_planner_v1/internal/service"
	"bakery_planner_v1/internal/task"
	"bakery_planner_v1/pkg/config"
	"bakery_planner_v1/pkg/database"
	"bakery_planner_v1/pkg/logger"
)

// ==================== Harness ====================

type envelope[T any] struct {
	Data T `json:"data"`
}

type apiClient struct {
	*resty.Client
	uploadDir string
}

func newTestServer(t *testing.T) *apiClient {
	t.Helper()
	return newTestServerWithTasks(t, task.DefaultConfig())
}

func newTestServerWithTasks(t *testing.T, taskCfg *task.TaskManagerConfig) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewWithWriter(&bytes.Buffer{}, "error")

	db, err := database.Open(config.DBConfig{Driver: "sqlite", SQLitePath: ":memory:"}, log, model.All()...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	uploadDir := t.TempDir()
	local, err := service.NewLocalStorage(uploadDir)
	require.NoError(t, err)

	uow := repository.NewUnitOfWork(db)
	storage := service.NewStorageService(local, 1<<20)
	tasks := task.NewTaskManager(&task.TaskManagerDeps{Recipes: uow.Recipes, Storage: local}, taskCfg, log)
	r := SetupRouter(&Controllers{
		Branch:     controller.NewBranchController(service.NewBranchService(uow)),
		Category:   controller.NewCategoryController(service.NewCategoryService(uow)),
		Recipe:     controller.NewRecipeController(service.NewRecipeService(uow, storage)),
		Variant:    controller.NewVariantController(service.NewVariantService(uow)),
		Conversion: controller.NewConversionController(service.NewConversionService(uow)),
		Schedule:   controller.NewScheduleController(service.NewScheduleService(uow)),
		Health:     controller.NewHealthController(service.NewHealthService(uow)),
		Task:       controller.NewTaskController(tasks),
	}, log)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &apiClient{
		Client:    resty.New().SetBaseURL(srv.URL).SetHeader("Accept", "application/json"),
		uploadDir: uploadDir,
	}
}

func (c *apiClient) create(t *testing.T, path string, body interface{}) int64 {
	t.Helper()
	var out envelope[struct {
		ID int64 `json:"id"`
	}]
	resp, err := c.R().SetBody(body).SetResult(&out).Post(path)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())
	assert.Equal(t, fmt.Sprintf("%s/%d", path, out.Data.ID), resp.Header().Get("Location"))
	return out.Data.ID
}

func (c *apiClient) errorOf(t *testing.T, resp *resty.Response) dto.ErrorBody {
	t.Helper()
	var out dto.ErrorResp
	require.NoError(t, c.JSONUnmarshal(resp.Body(), &out), resp.String())
	return out.Error
}

func uploadFiles(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	require.NoError(t, filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			files = append(files, p)
		}
		return err
	}))
	return files
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// ==================== Flows ====================

func TestConversionFlow(t *testing.T) {
	c := newTestServer(t)

	typeID := c.create(t, "/conversion_types", map[string]interface{}{"name": "Rund"})
	sizesPath := fmt.Sprintf("/conversion_types/%d/sizes", typeID)
	a := c.create(t, sizesPath, map[string]interface{}{"name": "20cm"})
	b := c.create(t, sizesPath, map[string]interface{}{"name": "26cm"})

	convPath := fmt.Sprintf("/conversion_types/%d/conversions", typeID)
	conv := c.create(t, convPath, map[string]interface{}{"fromSize": a, "toSize": b, "multiplicator": 0.4})

	var list envelope[[]dto.ConversionResp]
	resp, err := c.R().SetResult(&list).SetQueryParam("fromSize", fmt.Sprint(a)).Get(convPath)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.Len(t, list.Data, 1)
	assert.Equal(t, conv, list.Data[0].ID)
	assert.Equal(t, 0.4, list.Data[0].Multiplicator)

	resp, err = c.R().SetBody(map[string]interface{}{"fromSize": a, "toSize": a, "multiplicator": "x"}).Post(convPath)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode())
	assert.Equal(t, "SIZES_IDENTICAL", c.errorOf(t, resp).Code)

	var typ envelope[dto.ConversionTypeResp]
	_, err = c.R().SetResult(&typ).Get(fmt.Sprintf("/conversion_types/%d", typeID))
	require.NoError(t, err)
	assert.Len(t, typ.Data.Sizes, 2)
}

func TestBranchSlugFlow(t *testing.T) {
	c := newTestServer(t)

	var created envelope[dto.BranchDetailResp]
	resp, err := c.R().SetBody(map[string]string{"name": "Main St"}).SetResult(&created).Post("/branches")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())
	assert.Equal(t, "main_st", created.Data.Slug)
	c.create(t, "/branches", map[string]string{"name": "Harbour"})

	var list envelope[[]dto.BranchResp]
	_, err = c.R().SetResult(&list).SetQueryParam("slug", "main_st").Get("/branches")
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, created.Data.ID, list.Data[0].ID)

	var bySlug envelope[dto.BranchDetailResp]
	resp, err = c.R().SetResult(&bySlug).Get("/branches/slug/main_st")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.NotNil(t, bySlug.Data.RecipeCategories)
}

func TestRecipeImageFlow(t *testing.T) {
	c := newTestServer(t)
	branch := c.create(t, "/branches", map[string]string{"name": "Main St"})

	var created envelope[dto.RecipeResp]
	resp, err := c.R().
		SetFileReader("image", "brot.png", bytes.NewReader(pngHeader)).
		SetFormData(map[string]string{"name": "Roggenbrot", "description": "dunkel", "branch_ids": fmt.Sprint(branch)}).
		SetResult(&created).
		Post("/recipes")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())
	require.NotNil(t, created.Data.Image)
	assert.Equal(t, fmt.Sprintf("%s/recipes/%d/image", c.BaseURL, created.Data.ID), *created.Data.Image)
	require.Len(t, created.Data.Branches, 1)
	require.Len(t, uploadFiles(t, c.uploadDir), 1)

	resp, err = c.R().Get(fmt.Sprintf("/recipes/%d/image", created.Data.ID))
	require.NoError(t, err)
	assert.Equal(t, "image/png", resp.Header().Get("Content-Type"))
	assert.Equal(t, pngHeader, resp.Body())

	resp, err = c.R().Delete(fmt.Sprintf("/recipes/%d", created.Data.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode())
	assert.Empty(t, uploadFiles(t, c.uploadDir))
}

func TestRecipeImageRejectedKeepsNothing(t *testing.T) {
	c := newTestServer(t)

	resp, err := c.R().
		SetFileReader("image", "notes.txt", bytes.NewReader([]byte("plain text"))).
		SetFormData(map[string]string{"name": "Roggenbrot"}).
		Post("/recipes")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
	assert.Equal(t, service.ImageInvalid, c.errorOf(t, resp).Code)

	resp, err = c.R().
		SetFileReader("image", "brot.png", bytes.NewReader(pngHeader)).
		SetFormData(map[string]string{"name": "Roggenbrot", "branch_ids": "[77]"}).
		Post("/recipes")
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode())
	assert.Equal(t, "BRANCH_NOT_FOUND", c.errorOf(t, resp).Code)
	assert.Empty(t, uploadFiles(t, c.uploadDir))
}

func TestRecipeFormBlankFieldsAreAbsent(t *testing.T) {
	c := newTestServer(t)

	var created envelope[dto.RecipeResp]
	resp, err := c.R().
		SetFileReader("image", "brot.png", bytes.NewReader(pngHeader)).
		SetFormData(map[string]string{"name": "Roggenbrot", "description": "", "branch_ids": "", "category_ids": " "}).
		SetResult(&created).
		Post("/recipes")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())
	assert.Nil(t, created.Data.Description)
	assert.Empty(t, created.Data.Branches)
}

func TestRecipeNamesWithoutSlug(t *testing.T) {
	c := newTestServer(t)
	c.create(t, "/recipes", map[string]string{"name": "Brot 1"})

	for _, name := range []string{"123", "456"} {
		resp, err := c.R().SetBody(map[string]string{"name": name}).Post("/recipes")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode(), name)
		assert.Equal(t, "NAME_INVALID", c.errorOf(t, resp).Code, name)
	}

	var list envelope[[]dto.RecipeResp]
	_, err := c.R().SetResult(&list).SetQueryParam("slug", "!!!").Get("/recipes")
	require.NoError(t, err)
	assert.Empty(t, list.Data)

	resp, err := c.R().Get("/recipes/slug/!!!")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestRecipeRelationFilters(t *testing.T) {
	c := newTestServer(t)
	a := c.create(t, "/branches", map[string]string{"name": "Main St"})
	b := c.create(t, "/branches", map[string]string{"name": "Harbour"})

	r1 := c.create(t, "/recipes", map[string]interface{}{"name": "Roggenbrot", "branch_ids": []int64{a}})
	r2 := c.create(t, "/recipes", map[string]interface{}{"name": "Apfelkuchen", "branch_ids": []int64{b}})
	r3 := c.create(t, "/recipes", map[string]interface{}{"name": "Laugenbrezel"})

	ids := func(query map[string]string) []int64 {
		var list envelope[[]dto.RecipeResp]
		resp, err := c.R().SetQueryParams(query).SetResult(&list).Get("/recipes")
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode())
		out := make([]int64, 0, len(list.Data))
		for _, r := range list.Data {
			out = append(out, r.ID)
		}
		return out
	}

	assert.Equal(t, []int64{r1}, ids(map[string]string{"branch": fmt.Sprint(a)}))
	assert.Equal(t, []int64{r1, r3}, ids(map[string]string{"branch": fmt.Sprint(a), "branchNone": "true"}))
	assert.Equal(t, []int64{r2, r3}, ids(map[string]string{"branchExclude": fmt.Sprint(a)}))
	assert.Equal(t, []int64{r3}, ids(map[string]string{"branchNone": "true"}))
	// malformed lists are ignored
	assert.Equal(t, []int64{r1, r2, r3}, ids(map[string]string{"branch": "x,y"}))
	assert.Equal(t, []int64{r2}, ids(map[string]string{"limit": "1", "offset": "1"}))
}

func TestVariantScheduleFlow(t *testing.T) {
	c := newTestServer(t)
	branch := c.create(t, "/branches", map[string]string{"name": "Main St"})
	recipe := c.create(t, "/recipes", map[string]interface{}{"name": "Apfelkuchen", "branch_ids": []int64{branch}})
	typeID := c.create(t, "/conversion_types", map[string]string{"name": "Rund"})
	small := c.create(t, fmt.Sprintf("/conversion_types/%d/sizes", typeID), map[string]string{"name": "20cm"})
	big := c.create(t, fmt.Sprintf("/conversion_types/%d/sizes", typeID), map[string]string{"name": "26cm"})
	c.create(t, fmt.Sprintf("/conversion_types/%d/conversions", typeID), map[string]interface{}{"fromSize": small, "toSize": big, "multiplicator": 1.5})

	variantsPath := fmt.Sprintf("/recipes/%d/variants", recipe)
	variant := c.create(t, variantsPath, map[string]interface{}{
		"name":           "Standard",
		"conversionType": typeID,
		"size":           small,
		"ingredients": []map[string]interface{}{
			{"name": "Mehl", "quantity": 400, "unit": "g", "section": "Teig", "order": 1},
		},
	})

	var scaled envelope[dto.ScaledVariantResp]
	resp, err := c.R().SetResult(&scaled).SetQueryParam("size", fmt.Sprint(big)).
		Get(fmt.Sprintf("%s/%d/scaled", variantsPath, variant))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
	assert.Equal(t, 600.0, scaled.Data.Ingredients[0].Quantity)

	schedulePath := fmt.Sprintf("/branches/%d/schedule", branch)
	c.create(t, schedulePath, map[string]interface{}{"day": 5, "variant": variant, "size": big, "quantity": 4})

	var items envelope[[]dto.ScheduledItemResp]
	_, err = c.R().SetResult(&items).SetQueryParam("day", "5,6").Get(schedulePath)
	require.NoError(t, err)
	require.Len(t, items.Data, 1)
	assert.Equal(t, "26cm", items.Data[0].Size.Name)

	resp, err = c.R().Delete(fmt.Sprintf("/recipes/%d", recipe))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode())

	_, err = c.R().SetResult(&items).Get(schedulePath)
	require.NoError(t, err)
	assert.Empty(t, items.Data)
}

// ==================== Errors ====================

func TestErrorEnvelopes(t *testing.T) {
	c := newTestServer(t)
	branch := c.create(t, "/branches", map[string]string{"name": "Main St"})

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
		code   string
	}{
		{"malformed json", http.MethodPost, "/branches", `{"name":`, http.StatusBadRequest, "SYNTAX_ERROR"},
		{"missing name", http.MethodPost, "/branches", map[string]string{}, http.StatusBadRequest, "NAME_MISSING"},
		{"digits in branch name", http.MethodPost, "/branches", map[string]string{"name": "Filiale 7"}, http.StatusBadRequest, "NAME_INVALID"},
		{"bad id", http.MethodGet, "/branches/abc", nil, http.StatusBadRequest, "ID_INVALID"},
		{"unknown branch", http.MethodGet, "/branches/999", nil, http.StatusNotFound, "NOT_FOUND"},
		{"empty patch", http.MethodPatch, fmt.Sprintf("/branches/%d", branch), map[string]string{}, http.StatusBadRequest, "BODY_EMPTY"},
		{"overlap", http.MethodPatch, fmt.Sprintf("/branches/%d", branch), map[string]interface{}{"recipe_ids": map[string][]int{"add": {1}, "rmv": {1}}}, http.StatusBadRequest, "RELATION_OVERLAP"},
		{"duplicate", http.MethodPost, "/branches", map[string]string{"name": "Main St"}, http.StatusConflict, ""},
		{"limit too large", http.MethodGet, "/branches?limit=1000", nil, http.StatusBadRequest, "LIMIT_INVALID"},
		{"unknown parent", http.MethodGet, "/recipes/42/variants", nil, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := c.R()
			if tt.body != nil {
				req.SetHeader("Content-Type", "application/json").SetBody(tt.body)
			}
			resp, err := req.Execute(tt.method, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode(), resp.String())
			body := c.errorOf(t, resp)
			if tt.code != "" {
				assert.Equal(t, tt.code, body.Code)
			}
			assert.NotEmpty(t, body.Type)
		})
	}
}

func TestUploadSweepTrigger(t *testing.T) {
	c := newTestServer(t)

	var out envelope[dto.SweepResp]
	resp, err := c.R().SetResult(&out).Post("/tasks/upload_sweep")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
	assert.Zero(t, out.Data.Removed)

	resp, err = c.R().Post("/tasks/upload_sweep")
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode())
	assert.Equal(t, "TASK_COOLING_DOWN", c.errorOf(t, resp).Code)

	disabled := newTestServerWithTasks(t, &task.TaskManagerConfig{})
	resp, err = disabled.R().Post("/tasks/upload_sweep")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestHealth(t *testing.T) {
	c := newTestServer(t)

	var out dto.HealthResp
	resp, err := c.R().SetResult(&out).Get("/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "ok", out.Status)
}
