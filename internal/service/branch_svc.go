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

type BranchService struct {
	uow *repository.UnitOfWork
}

func NewBranchService(uow *repository.UnitOfWork) *BranchService {
	return &BranchService{uow: uow}
}

// List GET /branches
func (s *BranchService) List(ctx context.Context, req dto.BranchListReq) ([]dto.BranchResp, error) {
	branches, err := s.uow.Branches.List(ctx, repository.BranchFilter{
		Name:   repository.NameFilter(ctx, "branch.name", req.Name, validator.ValidAlpha, validator.BranchName),
		Slug:   repository.SlugFilter(req.Slug),
		Recipe: relationFilter(ctx, "recipe", req.Recipe, req.RecipeExclude, req.RecipeNone),
		Page:   page(req.PageQuery),
	})
	if err != nil {
		return nil, errs.FromStore(err)
	}
	out := make([]dto.BranchResp, 0, len(branches))
	for i := range branches {
		out = append(out, s.convertToResp(&branches[i]))
	}
	return out, nil
}

// GetByID includes the derived recipeCategories.
func (s *BranchService) GetByID(ctx context.Context, id int64) (*dto.BranchDetailResp, error) {
	branch, err := s.uow.Branches.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "branch")
	}
	return s.detail(ctx, branch)
}

func (s *BranchService) GetBySlug(ctx context.Context, slug string) (*dto.BranchDetailResp, error) {
	branch, err := s.uow.Branches.GetBySlug(ctx, utils.Slugify(slug))
	if err != nil {
		return nil, lookup(err, "branch")
	}
	return s.detail(ctx, branch)
}

func (s *BranchService) detail(ctx context.Context, branch *model.Branch) (*dto.BranchDetailResp, error) {
	categories, err := s.uow.Branches.RecipeCategories(ctx, branch.ID)
	if err != nil {
		return nil, errs.FromStore(err)
	}
	return &dto.BranchDetailResp{
		BranchResp:       s.convertToResp(branch),
		RecipeCategories: toRefs(categories, categoryRef),
	}, nil
}

func (s *BranchService) Create(ctx context.Context, req dto.BranchCreateReq) (*dto.BranchDetailResp, error) {
	v := &validator.BranchValidator{}
	if !v.Name(req.Name) {
		return nil, invalid(ctx, &v.Errors)
	}

	branch := &model.Branch{Name: req.Name.Value, Slug: utils.Slugify(req.Name.Value)}
	if err := s.uow.Branches.Create(ctx, branch); err != nil {
		return nil, errs.FromStore(err)
	}
	return s.GetByID(ctx, branch.ID)
}

// Update applies the rename and the recipe link edits in one transaction.
func (s *BranchService) Update(ctx context.Context, id int64, req dto.BranchUpdateReq) (*dto.BranchDetailResp, error) {
	if !req.Name.Present && !req.RecipeIDs.Present {
		return nil, bodyEmpty(ctx, "branch")
	}
	v := &validator.BranchValidator{}
	if req.Name.Present {
		v.Name(req.Name)
	}
	if req.RecipeIDs.Present {
		v.RecipeIDs(req.RecipeIDs)
	}
	if !v.Ok() {
		return nil, invalid(ctx, &v.Errors)
	}

	if err := s.update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *BranchService) update(ctx context.Context, id int64, req dto.BranchUpdateReq) error {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return errs.FromStore(err)
	}
	defer tx.Rollback()

	if _, err := tx.Branches.GetByID(ctx, id); err != nil {
		return lookup(err, "branch")
	}

	if req.Name.Present {
		fields := map[string]interface{}{"name": req.Name.Value, "slug": utils.Slugify(req.Name.Value)}
		if err := tx.Branches.UpdateFields(ctx, id, fields); err != nil {
			return errs.FromStore(err)
		}
	}
	if req.RecipeIDs.Present {
		add := req.RecipeIDs.Add.Unique()
		if err := requireIDs(ctx, tx.Recipes.MissingIDs, add, CodeRecipeNotFound, "recipe"); err != nil {
			return err
		}
		if err := tx.Branches.AddRecipes(ctx, id, add); err != nil {
			return errs.FromStore(err)
		}
		if err := tx.Branches.RemoveRecipes(ctx, id, req.RecipeIDs.Rmv.Unique()); err != nil {
			return errs.FromStore(err)
		}
	}
	return errs.FromStore(tx.Commit())
}

func (s *BranchService) Delete(ctx context.Context, id int64) error {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return errs.FromStore(err)
	}
	defer tx.Rollback()

	if err := tx.Branches.Delete(ctx, id); err != nil {
		return lookup(err, "branch")
	}
	return errs.FromStore(tx.Commit())
}

func (s *BranchService) convertToResp(b *model.Branch) dto.BranchResp {
	return dto.BranchResp{
		ID:        b.ID,
		Name:      b.Name,
		Slug:      b.Slug,
		Recipes:   toRefs(b.Recipes, recipeRef),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
