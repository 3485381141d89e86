package repository

import (
	"context"

	"gorm.io/gorm"

	"bakery_planner_v1/internal/model"
)

type RecipeRepository interface {
	List(ctx context.Context, filter RecipeFilter) ([]model.Recipe, error)
	GetByID(ctx context.Context, id int64) (*model.Recipe, error)
	GetBySlug(ctx context.Context, slug string) (*model.Recipe, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, recipe *model.Recipe) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error

	AddBranches(ctx context.Context, id int64, branchIDs []int64) error
	RemoveBranches(ctx context.Context, id int64, branchIDs []int64) error
	AddCategories(ctx context.Context, id int64, categoryIDs []int64) error
	RemoveCategories(ctx context.Context, id int64, categoryIDs []int64) error
	MissingIDs(ctx context.Context, ids []int64) ([]int64, error)

	// ImagePaths returns every stored image path, for the upload sweep.
	ImagePaths(ctx context.Context) ([]string, error)
}

type RecipeFilter struct {
	Name     string
	Slug     *string
	Branch   RelationFilter
	Category RelationFilter
	Page
}

type recipeRepo struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepo{db: db}
}

func preloadSummaries(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Select(table+".id", table+".name", table+".slug").Order(table + ".id ASC")
	}
}

func (r *recipeRepo) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Branches", preloadSummaries("branches")).
		Preload("Categories", preloadSummaries("categories"))
}

func (r *recipeRepo) List(ctx context.Context, filter RecipeFilter) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := r.withRelations(ctx).Model(&model.Recipe{}).
		Scopes(
			nameScope("recipes", filter.Name),
			slugScope("recipes", filter.Slug),
			filter.Branch.Scope("recipes", RecipeBranchEdge),
			filter.Category.Scope("recipes", RecipeCategoryEdge),
			filter.Page.scope("recipes"),
		).
		Find(&recipes).Error
	return recipes, err
}

func (r *recipeRepo) GetByID(ctx context.Context, id int64) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.withRelations(ctx).First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepo) GetBySlug(ctx context.Context, slug string) (*model.Recipe, error) {
	if slug == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var recipe model.Recipe
	if err := r.withRelations(ctx).Where("slug = ?", slug).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *recipeRepo) Create(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Omit("Branches", "Categories", "Variants").Create(recipe).Error
}

func (r *recipeRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).Updates(fields).Error
}

// Delete drops the recipe and its links; variants, their ingredients and
// scheduled items cascade.
func (r *recipeRepo) Delete(ctx context.Context, id int64) error {
	if err := unlinkAll(ctx, r.db, RecipeBranchEdge, id); err != nil {
		return err
	}
	if err := unlinkAll(ctx, r.db, RecipeCategoryEdge, id); err != nil {
		return err
	}
	return deleteResult(r.db.WithContext(ctx).Delete(&model.Recipe{}, id))
}

func (r *recipeRepo) AddBranches(ctx context.Context, id int64, branchIDs []int64) error {
	return link(ctx, r.db, RecipeBranchEdge, id, branchIDs)
}

func (r *recipeRepo) RemoveBranches(ctx context.Context, id int64, branchIDs []int64) error {
	return unlink(ctx, r.db, RecipeBranchEdge, id, branchIDs)
}

func (r *recipeRepo) AddCategories(ctx context.Context, id int64, categoryIDs []int64) error {
	return link(ctx, r.db, RecipeCategoryEdge, id, categoryIDs)
}

func (r *recipeRepo) RemoveCategories(ctx context.Context, id int64, categoryIDs []int64) error {
	return unlink(ctx, r.db, RecipeCategoryEdge, id, categoryIDs)
}

func (r *recipeRepo) MissingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	return missingIDs(ctx, r.db, "recipes", ids)
}

func (r *recipeRepo) ImagePaths(ctx context.Context) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("image_path IS NOT NULL").
		Pluck("image_path", &paths).Error
	return paths, err
}
