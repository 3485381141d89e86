package dto

import (
	"time"

	"bakery_planner_v1/internal/validator"
)

// ================== Recipe && Variant DTO ==================

// RecipeListReq GET /recipes
type RecipeListReq struct {
	Name            string   `form:"name"`
	Slug            string   `form:"slug"`
	Branch          []string `form:"branch"`
	BranchExclude   []string `form:"branchExclude"`
	BranchNone      string   `form:"branchNone"`
	Category        []string `form:"category"`
	CategoryExclude []string `form:"categoryExclude"`
	CategoryNone    string   `form:"categoryNone"`
	PageQuery
}

// RecipeCreateReq POST /recipes, as JSON or as multipart form fields next to "image".
type RecipeCreateReq struct {
	Name        validator.Text   `json:"name"`
	Description validator.Text   `json:"description"`
	BranchIDs   validator.IDList `json:"branch_ids"`
	CategoryIDs validator.IDList `json:"category_ids"`
}

// RecipeUpdateReq PATCH /recipes/:id
type RecipeUpdateReq struct {
	Name        validator.Text         `json:"name"`
	Description validator.Text         `json:"description"`
	BranchIDs   validator.RelationEdit `json:"branch_ids"`
	CategoryIDs validator.RelationEdit `json:"category_ids"`
}

type RecipeResp struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	Image       *string   `json:"image"` // absolute URI, rewritten per request
	Branches    []Ref     `json:"branches"`
	Categories  []Ref     `json:"categories"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// VariantListReq GET /recipes/:id/variants
type VariantListReq struct {
	Name           string   `form:"name"`
	ConversionType []string `form:"conversionType"`
	Size           []string `form:"size"`
	SizeExclude    []string `form:"sizeExclude"`
	PageQuery
}

// VariantCreateReq POST /recipes/:id/variants
type VariantCreateReq struct {
	Name           validator.Text     `json:"name"`
	Description    validator.Text     `json:"description"`
	ConversionType validator.Number   `json:"conversionType"`
	Size           validator.Number   `json:"size"`
	Ingredients    validator.RawArray `json:"ingredients"`
}

// VariantUpdateReq PATCH /recipes/:id/variants/:variantId; ingredients replace the whole list.
type VariantUpdateReq struct {
	Name        validator.Text     `json:"name"`
	Description validator.Text     `json:"description"`
	Size        validator.Number   `json:"size"`
	Ingredients validator.RawArray `json:"ingredients"`
}

type IngredientResp struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Section  string  `json:"section"`
	Order    int     `json:"order"`
}

type VariantResp struct {
	ID             int64            `json:"id"`
	RecipeID       int64            `json:"recipeId"`
	Name           string           `json:"name"`
	Description    *string          `json:"description"`
	ConversionType Ref              `json:"conversionType"`
	Size           Ref              `json:"size"`
	Ingredients    []IngredientResp `json:"ingredients"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// ScaledVariantResp GET /recipes/:id/variants/:variantId/scaled?size=
type ScaledVariantResp struct {
	VariantResp
	TargetSize    Ref     `json:"targetSize"`
	Multiplicator float64 `json:"multiplicator"`
}
