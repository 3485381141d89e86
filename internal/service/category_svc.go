package service

import (
	"context"

	"bakery_planner_v1/internal/api/dto"
	"bakery_planner_v1/internal/errs"
	"bakery_planner_v1/internal/model"
	"bakery_planner_v1/internal/repository"
	"bakery_planner_v1/internal/validator"
	"bakery_planner_v1/pkg/utils"
)

type CategoryService struct {
	uow *repository.UnitOfWork
}

func NewCategoryService(uow *repository.UnitOfWork) *CategoryService {
	return &CategoryService{uow: uow}
}

func (s *CategoryService) List(ctx context.Context, req dto.CategoryListReq) ([]dto.CategoryResp, error) {
	categories, err := s.uow.Categories.List(ctx, repository.CategoryFilter{
		Name:   repository.NameFilter(ctx, "category.name", req.Name, validator.ValidAlpha, validator.CategoryName),
		Slug:   repository.SlugFilter(req.Slug),
		Recipe: relationFilter(ctx, "recipe", req.Recipe, req.RecipeExclude, req.RecipeNone),
		Page:   page(req.PageQuery),
	})
	if err != nil {
		return nil, errs.FromStore(err)
	}
	out := make([]dto.CategoryResp, 0, len(categories))
	for i := range categories {
		out = append(out, s.convertToResp(&categories[i]))
	}
	return out, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id int64) (*dto.CategoryResp, error) {
	category, err := s.uow.Categories.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "category")
	}
	resp := s.convertToResp(category)
	return &resp, nil
}

func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*dto.CategoryResp, error) {
	category, err := s.uow.Categories.GetBySlug(ctx, utils.Slugify(slug))
	if err != nil {
		return nil, lookup(err, "category")
	}
	resp := s.convertToResp(category)
	return &resp, nil
}

func (s *CategoryService) Create(ctx context.Context, req dto.CategoryCreateReq) (*dto.CategoryResp, error) {
	v := &validator.CategoryValidator{}
	if !v.Name(req.Name) {
		return nil, invalid(ctx, &v.Errors)
	}

	category := &model.Category{Name: req.Name.Value, Slug: utils.Slugify(req.Name.Value)}
	if err := s.uow.Categories.Create(ctx, category); err != nil {
		return nil, errs.FromStore(err)
	}
	resp := s.convertToResp(category)
	return &resp, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, req dto.CategoryUpdateReq) (*dto.CategoryResp, error) {
	if !req.Name.Present && !req.RecipeIDs.Present {
		return nil, bodyEmpty(ctx, "category")
	}
	v := &validator.CategoryValidator{}
	if req.Name.Present {
		v.Name(req.Name)
	}
	if req.RecipeIDs.Present {
		v.RecipeIDs(req.RecipeIDs)
	}
	if !v.Ok() {
		return nil, invalid(ctx, &v.Errors)
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, errs.FromStore(err)
	}
	defer tx.Rollback()

	if _, err := tx.Categories.GetByID(ctx, id); err != nil {
		return nil, lookup(err, "category")
	}
	if req.Name.Present {
		fields := map[string]interface{}{"name": req.Name.Value, "slug": utils.Slugify(req.Name.Value)}
		if err := tx.Categories.UpdateFields(ctx, id, fields); err != nil {
			return nil, errs.FromStore(err)
		}
	}
	if req.RecipeIDs.Present {
		add := req.RecipeIDs.Add.Unique()
		if err := requireIDs(ctx, tx.Recipes.MissingIDs, add, CodeRecipeNotFound, "recipe"); err != nil {
			return nil, err
		}
		if err := tx.Categories.AddRecipes(ctx, id, add); err != nil {
			return nil, errs.FromStore(err)
		}
		if err := tx.Categories.RemoveRecipes(ctx, id, req.RecipeIDs.Rmv.Unique()); err != nil {
			return nil, errs.FromStore(err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, errs.FromStore(err)
	}
	return s.GetByID(ctx, id)
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return errs.FromStore(err)
	}
	defer tx.Rollback()

	if err := tx.Categories.Delete(ctx, id); err != nil {
		return lookup(err, "category")
	}
	return errs.FromStore(tx.Commit())
}

func (s *CategoryService) convertToResp(c *model.Category) dto.CategoryResp {
	return dto.CategoryResp{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		Recipes:   toRefs(c.Recipes, recipeRef),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
