package repository

import (
	"context"

	"gorm.io/gorm"

	"bakery_planner_v1/internal/model"
)

type VariantRepository interface {
	List(ctx context.Context, recipeID int64, filter VariantFilter) ([]model.Variant, error)
	Get(ctx context.Context, recipeID, id int64) (*model.Variant, error)
	// GetInBranch finds a variant whose recipe is linked to the branch.
	GetInBranch(ctx context.Context, branchID, id int64) (*model.Variant, error)
	Create(ctx context.Context, variant *model.Variant) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	ReplaceIngredients(ctx context.Context, id int64, ingredients []model.Ingredient) error
	Delete(ctx context.Context, recipeID, id int64) error
}

type VariantFilter struct {
	Name           string
	ConversionType []int64
	Size           RelationFilter
	Page
}

type variantRepo struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) VariantRepository {
	return &variantRepo{db: db}
}

func (r *variantRepo) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("ConversionType").
		Preload("Size").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("ingredients.sort_order ASC, ingredients.id ASC")
		})
}

func (r *variantRepo) List(ctx context.Context, recipeID int64, filter VariantFilter) ([]model.Variant, error) {
	var variants []model.Variant
	q := r.withRelations(ctx).Model(&model.Variant{}).
		Where("variants.recipe_id = ?", recipeID).
		Scopes(
			nameScope("variants", filter.Name),
			filter.Size.Scope("variants", VariantSizeEdge),
			filter.Page.scope("variants"),
		)
	if len(filter.ConversionType) > 0 {
		q = q.Where("variants.conversion_type_id IN ?", filter.ConversionType)
	}
	err := q.Find(&variants).Error
	return variants, err
}

func (r *variantRepo) Get(ctx context.Context, recipeID, id int64) (*model.Variant, error) {
	var variant model.Variant
	if err := r.withRelations(ctx).
		Where("recipe_id = ? AND id = ?", recipeID, id).
		First(&variant).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *variantRepo) GetInBranch(ctx context.Context, branchID, id int64) (*model.Variant, error) {
	var variant model.Variant
	err := r.db.WithContext(ctx).
		Where("variants.id = ?", id).
		Where("EXISTS (SELECT 1 FROM recipe_branches rb WHERE rb.recipe_id = variants.recipe_id AND rb.branch_id = ?)", branchID).
		First(&variant).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// Create inserts the variant together with its ingredients.
func (r *variantRepo) Create(ctx context.Context, variant *model.Variant) error {
	return r.db.WithContext(ctx).Omit("ConversionType", "Size", "Schedule").Create(variant).Error
}

func (r *variantRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Variant{}).Where("id = ?", id).Updates(fields).Error
}

func (r *variantRepo) ReplaceIngredients(ctx context.Context, id int64, ingredients []model.Ingredient) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("variant_id = ?", id).Delete(&model.Ingredient{}).Error; err != nil {
		return err
	}
	if len(ingredients) == 0 {
		return nil
	}
	for i := range ingredients {
		ingredients[i].ID = 0
		ingredients[i].VariantID = id
	}
	return db.Create(&ingredients).Error
}

func (r *variantRepo) Delete(ctx context.Context, recipeID, id int64) error {
	return deleteResult(r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Delete(&model.Variant{}, id))
}
