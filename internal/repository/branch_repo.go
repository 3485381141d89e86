package repository

import (
	"context"

	"gorm.io/gorm"

	"bakery_planner_v1/internal/model"
)

// ==================== Interfaces ====================

type BranchRepository interface {
	List(ctx context.Context, filter BranchFilter) ([]model.Branch, error)
	GetByID(ctx context.Context, id int64) (*model.Branch, error)
	GetBySlug(ctx context.Context, slug string) (*model.Branch, error)
	Create(ctx context.Context, branch *model.Branch) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error

	AddRecipes(ctx context.Context, id int64, recipeIDs []int64) error
	RemoveRecipes(ctx context.Context, id int64, recipeIDs []int64) error
	// RecipeCategories returns the distinct categories of the branch's recipes.
	RecipeCategories(ctx context.Context, id int64) ([]model.Category, error)
	MissingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

type CategoryRepository interface {
	List(ctx context.Context, filter CategoryFilter) ([]model.Category, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error

	AddRecipes(ctx context.Context, id int64, recipeIDs []int64) error
	RemoveRecipes(ctx context.Context, id int64, recipeIDs []int64) error
	MissingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

// ==================== Filters ====================

type BranchFilter struct {
	Name   string  // lowercase LIKE needle, see NameFilter
	Slug   *string // see SlugFilter
	Recipe RelationFilter
	Page
}

type CategoryFilter struct {
	Name   string
	Slug   *string
	Recipe RelationFilter
	Page
}


// ==================== Branch ====================

type branchRepo struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepo{db: db}
}

func (r *branchRepo) List(ctx context.Context, filter BranchFilter) ([]model.Branch, error) {
	var branches []model.Branch
	err := r.db.WithContext(ctx).Model(&model.Branch{}).
		Scopes(
			nameScope("branches", filter.Name),
			slugScope("branches", filter.Slug),
			filter.Recipe.Scope("branches", BranchRecipeEdge),
			filter.Page.scope("branches"),
		).
		Preload("Recipes", preloadSummaries("recipes")).
		Find(&branches).Error
	return branches, err
}

func (r *branchRepo) GetByID(ctx context.Context, id int64) (*model.Branch, error) {
	var branch model.Branch
	if err := r.db.WithContext(ctx).Preload("Recipes", preloadSummaries("recipes")).First(&branch, id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepo) GetBySlug(ctx context.Context, slug string) (*model.Branch, error) {
	if slug == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var branch model.Branch
	if err := r.db.WithContext(ctx).Preload("Recipes", preloadSummaries("recipes")).
		Where("slug = ?", slug).First(&branch).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepo) Create(ctx context.Context, branch *model.Branch) error {
	return r.db.WithContext(ctx).Omit("Recipes", "Schedule").Create(branch).Error
}

func (r *branchRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Branch{}).Where("id = ?", id).Updates(fields).Error
}

// Delete drops the branch with its recipe links; the schedule cascades.
func (r *branchRepo) Delete(ctx context.Context, id int64) error {
	if err := unlinkAll(ctx, r.db, BranchRecipeEdge, id); err != nil {
		return err
	}
	return deleteResult(r.db.WithContext(ctx).Delete(&model.Branch{}, id))
}

func (r *branchRepo) AddRecipes(ctx context.Context, id int64, recipeIDs []int64) error {
	return link(ctx, r.db, BranchRecipeEdge, id, recipeIDs)
}

func (r *branchRepo) RemoveRecipes(ctx context.Context, id int64, recipeIDs []int64) error {
	return unlink(ctx, r.db, BranchRecipeEdge, id, recipeIDs)
}

func (r *branchRepo) RecipeCategories(ctx context.Context, id int64) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("EXISTS (SELECT 1 FROM recipe_categories rc JOIN recipe_branches rb ON rb.recipe_id = rc.recipe_id "+
			"WHERE rc.category_id = categories.id AND rb.branch_id = ?)", id).
		Order("categories.id ASC").
		Find(&categories).Error
	return categories, err
}

func (r *branchRepo) MissingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	return missingIDs(ctx, r.db, "branches", ids)
}

// ==================== Category ====================

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) List(ctx context.Context, filter CategoryFilter) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Model(&model.Category{}).
		Scopes(
			nameScope("categories", filter.Name),
			slugScope("categories", filter.Slug),
			filter.Recipe.Scope("categories", CategoryRecipeEdge),
			filter.Page.scope("categories"),
		).
		Preload("Recipes", preloadSummaries("recipes")).
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Preload("Recipes", preloadSummaries("recipes")).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	if slug == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var category model.Category
	if err := r.db.WithContext(ctx).Preload("Recipes", preloadSummaries("recipes")).
		Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Omit("Recipes").Create(category).Error
}

func (r *categoryRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Updates(fields).Error
}

func (r *categoryRepo) Delete(ctx context.Context, id int64) error {
	if err := unlinkAll(ctx, r.db, CategoryRecipeEdge, id); err != nil {
		return err
	}
	return deleteResult(r.db.WithContext(ctx).Delete(&model.Category{}, id))
}

func (r *categoryRepo) AddRecipes(ctx context.Context, id int64, recipeIDs []int64) error {
	return link(ctx, r.db, CategoryRecipeEdge, id, recipeIDs)
}

func (r *categoryRepo) RemoveRecipes(ctx context.Context, id int64, recipeIDs []int64) error {
	return unlink(ctx, r.db, CategoryRecipeEdge, id, recipeIDs)
}

func (r *categoryRepo) MissingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	return missingIDs(ctx, r.db, "categories", ids)
}
