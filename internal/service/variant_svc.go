package service

import (
	"context"
	"math"

	"bakery_planner_v1/internal/api/dto"
	"bakery_planner_v1/internal/errs"
	"bakery_planner_v1/internal/model"
	"bakery_planner_v1/internal/repository"
	"bakery_planner_v1/internal/validator"
)

type VariantService struct {
	uow *repository.UnitOfWork
}

func NewVariantService(uow *repository.UnitOfWork) *VariantService {
	return &VariantService{uow: uow}
}

func (s *VariantService) requireRecipe(ctx context.Context, recipes repository.RecipeRepository, recipeID int64) error {
	ok, err := recipes.Exists(ctx, recipeID)
	if err != nil {
		return errs.FromStore(err)
	}
	if !ok {
		return errs.NotFound("recipe")
	}
	return nil
}

func (s *VariantService) List(ctx context.Context, recipeID int64, req dto.VariantListReq) ([]dto.VariantResp, error) {
	if err := s.requireRecipe(ctx, s.uow.Recipes, recipeID); err != nil {
		return nil, err
	}
	variants, err := s.uow.Variants.List(ctx, recipeID, repository.VariantFilter{
		Name:           repository.NameFilter(ctx, "variant.name", req.Name, validator.ValidAlphanumeric, validator.VariantName),
		ConversionType: idFilter(ctx, "conversionType", req.ConversionType),
		Size:           relationFilter(ctx, "size", req.Size, req.SizeExclude, ""),
		Page:           page(req.PageQuery),
	})
	if err != nil {
		return nil, errs.FromStore(err)
	}
	out := make([]dto.VariantResp, 0, len(variants))
	for i := range variants {
		out = append(out, s.convertToResp(&variants[i]))
	}
	return out, nil
}

func (s *VariantService) Get(ctx context.Context, recipeID, id int64) (*dto.VariantResp, error) {
	if err := s.requireRecipe(ctx, s.uow.Recipes, recipeID); err != nil {
		return nil, err
	}
	variant, err := s.uow.Variants.Get(ctx, recipeID, id)
	if err != nil {
		return nil, lookup(err, "variant")
	}
	resp := s.convertToResp(variant)
	return &resp, nil
}

// Create checks the conversion type and that the size is one of its sizes.
func (s *VariantService) Create(ctx context.Context, recipeID int64, req dto.VariantCreateReq) (*dto.VariantResp, error) {
	if err := s.requireRecipe(ctx, s.uow.Recipes, recipeID); err != nil {
		return nil, err
	}

	v := &validator.VariantValidator{}
	v.Name(req.Name)
	if req.Description.Present {
		v.Description(req.Description)
	}
	v.ConversionType(req.ConversionType)
	v.Size(req.Size)
	ingredients, _ := v.Ingredients(req.Ingredients)
	if !v.Ok() {
		return nil, invalid(ctx, &v.Errors)
	}
	conversionTypeID, _ := req.ConversionType.Int()
	sizeID, _ := req.Size.Int()

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, errs.FromStore(err)
	}
	defer tx.Rollback()

	if ok, err := tx.ConversionTypes.Exists(ctx, conversionTypeID); err != nil {
		return nil, errs.FromStore(err)
	} else if !ok {
		return nil, errs.ForeignKey(CodeConversionTypeNotFound, "variant.conversionType does not exist")
	}
	if err := requireSize(ctx, tx.Sizes, conversionTypeID, sizeID, CodeSizeNotFound, "variant.size"); err != nil {
		return nil, err
	}

	variant := &model.Variant{
		Name:             req.Name.Value,
		Description:      optionalText(req.Description),
		RecipeID:         recipeID,
		ConversionTypeID: conversionTypeID,
		SizeID:           sizeID,
		Ingredients:      toIngredients(ingredients),
	}
	if err := tx.Variants.Create(ctx, variant); err != nil {
		return nil, errs.FromStore(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, errs.FromStore(err)
	}
	return s.Get(ctx, recipeID, variant.ID)
}

// Update: a new size must belong to the variant's conversion type; a present
// ingredients array replaces the whole list.
func (s *VariantService) Update(ctx context.Context, recipeID, id int64, req dto.VariantUpdateReq) (*dto.VariantResp, error) {
	if err := s.requireRecipe(ctx, s.uow.Recipes, recipeID); err != nil {
		return nil, err
	}
	if !req.Name.Present && !req.Description.Present && !req.Size.Present && !req.Ingredients.Present {
		return nil, bodyEmpty(ctx, "variant")
	}

	v := &validator.VariantValidator{}
	if req.Name.Present {
		v.Name(req.Name)
	}
	if req.Description.Present {
		v.Description(req.Description)
	}
	if req.Size.Present {
		v.Size(req.Size)
	}
	var ingredients []validator.Ingredient
	if req.Ingredients.Present {
		ingredients, _ = v.Ingredients(req.Ingredients)
	}
	if !v.Ok() {
		return nil, invalid(ctx, &v.Errors)
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, errs.FromStore(err)
	}
	defer tx.Rollback()

	variant, err := tx.Variants.Get(ctx, recipeID, id)
	if err != nil {
		return nil, lookup(err, "variant")
	}

	fields := map[string]interface{}{}
	if req.Name.Present {
		fields["name"] = req.Name.Value
	}
	if req.Description.Present {
		fields["description"] = optionalText(req.Description)
	}
	if req.Size.Present {
		sizeID, _ := req.Size.Int()
		if err := requireSize(ctx, tx.Sizes, variant.ConversionTypeID, sizeID, CodeSizeNotFound, "variant.size"); err != nil {
			return nil, err
		}
		fields["size_id"] = sizeID
	}
	if err := tx.Variants.UpdateFields(ctx, id, fields); err != nil {
		return nil, errs.FromStore(err)
	}
	if req.Ingredients.Present {
		if err := tx.Variants.ReplaceIngredients(ctx, id, toIngredients(ingredients)); err != nil {
			return nil, errs.FromStore(err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, errs.FromStore(err)
	}
	return s.Get(ctx, recipeID, id)
}

func (s *VariantService) Delete(ctx context.Context, recipeID, id int64) error {
	if err := s.requireRecipe(ctx, s.uow.Recipes, recipeID); err != nil {
		return err
	}
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return errs.FromStore(err)
	}
	defer tx.Rollback()

	if err := tx.Variants.Delete(ctx, recipeID, id); err != nil {
		return lookup(err, "variant")
	}
	return errs.FromStore(tx.Commit())
}

// Scaled returns the variant with every ingredient quantity converted to
// rawSize. A conversion stored only in the opposite direction is inverted.
func (s *VariantService) Scaled(ctx context.Context, recipeID, id int64, rawSize string) (*dto.ScaledVariantResp, error) {
	var e validator.Errors
	targetID, ok := validator.ParseID(&e, "size", rawSize)
	if !ok {
		return nil, invalid(ctx, &e)
	}

	variant, err := s.Get(ctx, recipeID, id)
	if err != nil {
		return nil, err
	}
	target, err := s.uow.Sizes.Get(ctx, variant.ConversionType.ID, targetID)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.ForeignKey(CodeSizeNotFound, "size does not belong to the variant's conversion type")
		}
		return nil, errs.FromStore(err)
	}

	factor, err := s.factor(ctx, variant.Size.ID, target.ID)
	if err != nil {
		return nil, err
	}

	scaled := *variant
	scaled.Ingredients = make([]dto.IngredientResp, len(variant.Ingredients))
	for i, ing := range variant.Ingredients {
		ing.Quantity = roundQuantity(ing.Quantity * factor)
		scaled.Ingredients[i] = ing
	}
	return &dto.ScaledVariantResp{
		VariantResp:   scaled,
		TargetSize:    sizeRef(target),
		Multiplicator: factor,
	}, nil
}

func (s *VariantService) factor(ctx context.Context, from, to int64) (float64, error) {
	if from == to {
		return 1, nil
	}
	c, err := s.uow.Conversions.Find(ctx, from, to)
	if err == nil {
		return c.Multiplicator, nil
	}
	if !errs.IsNotFound(err) {
		return 0, errs.FromStore(err)
	}
	c, err = s.uow.Conversions.Find(ctx, to, from)
	if err == nil && c.Multiplicator != 0 {
		return 1 / c.Multiplicator, nil
	}
	if err != nil && !errs.IsNotFound(err) {
		return 0, errs.FromStore(err)
	}
	return 0, errs.ForeignKey(CodeConversionNotFound, "no conversion between the variant's size and the requested size")
}

// roundQuantity keeps four decimals so 0.4 * 500 prints as 200.
func roundQuantity(q float64) float64 {
	return math.Round(q*1e4) / 1e4
}

// requireSize looks the size up within its conversion type; a size of another
// type fails the same way as a missing one.
func requireSize(ctx context.Context, sizes repository.SizeRepository, conversionTypeID, sizeID int64, code, label string) error {
	_, err := sizes.Get(ctx, conversionTypeID, sizeID)
	if err == nil {
		return nil
	}
	if errs.IsNotFound(err) {
		return errs.ForeignKey(code, label+" does not exist in the conversion type")
	}
	return errs.FromStore(err)
}

func toIngredients(in []validator.Ingredient) []model.Ingredient {
	out := make([]model.Ingredient, 0, len(in))
	for _, ing := range in {
		out = append(out, model.Ingredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
			Section:  ing.Section,
			Order:    ing.Order,
		})
	}
	return out
}

func (s *VariantService) convertToResp(v *model.Variant) dto.VariantResp {
	resp := dto.VariantResp{
		ID:          v.ID,
		RecipeID:    v.RecipeID,
		Name:        v.Name,
		Description: v.Description,
		Size:        sizeRef(v.Size),
		Ingredients: make([]dto.IngredientResp, 0, len(v.Ingredients)),
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
	if v.ConversionType != nil {
		resp.ConversionType = dto.Ref{ID: v.ConversionType.ID, Name: v.ConversionType.Name}
	}
	for _, ing := range v.Ingredients {
		resp.Ingredients = append(resp.Ingredients, dto.IngredientResp{
			ID:       ing.ID,
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
			Section:  ing.Section,
			Order:    ing.Order,
		})
	}
	return resp
}
