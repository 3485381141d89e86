package dto

import (
	"time"

	"bakery_planner_v1/internal/validator"
)

// ================== Branch && Category DTO ==================

// BranchListReq GET /branches
type BranchListReq struct {
	Name          string   `form:"name"`
	Slug          string   `form:"slug"`
	Recipe        []string `form:"recipe"`
	RecipeExclude []string `form:"recipeExclude"`
	RecipeNone    string   `form:"recipeNone"`
	PageQuery
}

// BranchCreateReq POST /branches
type BranchCreateReq struct {
	Name validator.Text `json:"name"`
}

// BranchUpdateReq PATCH /branches/:id
type BranchUpdateReq struct {
	Name      validator.Text         `json:"name"`
	RecipeIDs validator.RelationEdit `json:"recipe_ids"`
}

type BranchResp struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	Recipes          []Ref     `json:"recipes"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// BranchDetailResp adds the distinct categories of the branch's recipes.
type BranchDetailResp struct {
	BranchResp
	RecipeCategories []Ref `json:"recipeCategories"`
}

// CategoryListReq GET /categories
type CategoryListReq struct {
	Name          string   `form:"name"`
	Slug          string   `form:"slug"`
	Recipe        []string `form:"recipe"`
	RecipeExclude []string `form:"recipeExclude"`
	RecipeNone    string   `form:"recipeNone"`
	PageQuery
}

type CategoryCreateReq struct {
	Name validator.Text `json:"name"`
}

type CategoryUpdateReq struct {
	Name      validator.Text         `json:"name"`
	RecipeIDs validator.RelationEdit `json:"recipe_ids"`
}

type CategoryResp struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Recipes   []Ref     `json:"recipes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
