package service

import (
	"context"
	"io"

	"bakery_planner_v1/internal/api/dto"
	"bakery_planner_v1/internal/errs"
	"bakery_planner_v1/internal/model"
	"bakery_planner_v1/internal/repository"
	"bakery_planner_v1/internal/validator"
	"bakery_planner_v1/pkg/logger"
	"bakery_planner_v1/pkg/utils"
)

type RecipeService struct {
	uow     *repository.UnitOfWork
	storage *StorageService
}

func NewRecipeService(uow *repository.UnitOfWork, storage *StorageService) *RecipeService {
	return &RecipeService{uow: uow, storage: storage}
}

// ==================== Read ====================

func (s *RecipeService) List(ctx context.Context, req dto.RecipeListReq) ([]dto.RecipeResp, error) {
	recipes, err := s.uow.Recipes.List(ctx, repository.RecipeFilter{
		Name:     repository.NameFilter(ctx, "recipe.name", req.Name, validator.ValidAlphanumeric, validator.RecipeName),
		Slug:     repository.SlugFilter(req.Slug),
		Branch:   relationFilter(ctx, "branch", req.Branch, req.BranchExclude, req.BranchNone),
		Category: relationFilter(ctx, "category", req.Category, req.CategoryExclude, req.CategoryNone),
		Page:     page(req.PageQuery),
	})
	if err != nil {
		return nil, errs.FromStore(err)
	}
	out := make([]dto.RecipeResp, 0, len(recipes))
	for i := range recipes {
		out = append(out, s.convertToResp(&recipes[i]))
	}
	return out, nil
}

func (s *RecipeService) GetByID(ctx context.Context, id int64) (*dto.RecipeResp, error) {
	recipe, err := s.uow.Recipes.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "recipe")
	}
	resp := s.convertToResp(recipe)
	return &resp, nil
}

func (s *RecipeService) GetBySlug(ctx context.Context, slug string) (*dto.RecipeResp, error) {
	recipe, err := s.uow.Recipes.GetBySlug(ctx, utils.Slugify(slug))
	if err != nil {
		return nil, lookup(err, "recipe")
	}
	resp := s.convertToResp(recipe)
	return &resp, nil
}

// ==================== Write ====================

// Create stores the optional image first; if anything after that fails the
// stored file is removed again before returning.
func (s *RecipeService) Create(ctx context.Context, req dto.RecipeCreateReq, image io.Reader) (*dto.RecipeResp, error) {
	var imagePath *string
	if image != nil {
		key, err := s.storage.SaveImage(ctx, image)
		if err != nil {
			return nil, err
		}
		imagePath = &key
	}

	id, err := s.create(ctx, req, imagePath)
	if err != nil {
		if imagePath != nil {
			s.discardImage(ctx, *imagePath)
		}
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *RecipeService) create(ctx context.Context, req dto.RecipeCreateReq, imagePath *string) (int64, error) {
	v := &validator.RecipeValidator{}
	v.Name(req.Name)
	if req.Description.Present {
		v.Description(req.Description)
	}
	if req.BranchIDs.Present {
		v.BranchIDs(req.BranchIDs)
	}
	if req.CategoryIDs.Present {
		v.CategoryIDs(req.CategoryIDs)
	}
	if !v.Ok() {
		return 0, invalid(ctx, &v.Errors)
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return 0, errs.FromStore(err)
	}
	defer tx.Rollback()

	branchIDs, categoryIDs := req.BranchIDs.Unique(), req.CategoryIDs.Unique()
	if err := requireIDs(ctx, tx.Branches.MissingIDs, branchIDs, CodeBranchNotFound, "branch"); err != nil {
		return 0, err
	}
	if err := requireIDs(ctx, tx.Categories.MissingIDs, categoryIDs, CodeCategoryNotFound, "category"); err != nil {
		return 0, err
	}

	recipe := &model.Recipe{
		Name:        req.Name.Value,
		Slug:        utils.Slugify(req.Name.Value),
		Description: optionalText(req.Description),
		ImagePath:   imagePath,
	}
	if err := tx.Recipes.Create(ctx, recipe); err != nil {
		return 0, errs.FromStore(err)
	}
	if err := tx.Recipes.AddBranches(ctx, recipe.ID, branchIDs); err != nil {
		return 0, errs.FromStore(err)
	}
	if err := tx.Recipes.AddCategories(ctx, recipe.ID, categoryIDs); err != nil {
		return 0, errs.FromStore(err)
	}
	if err := tx.Commit(); err != nil {
		return 0, errs.FromStore(err)
	}
	return recipe.ID, nil
}

// Update: description null clears it; relation edits add before they remove,
// overlapping ids were already rejected by the validator.
func (s *RecipeService) Update(ctx context.Context, id int64, req dto.RecipeUpdateReq) (*dto.RecipeResp, error) {
	if !req.Name.Present && !req.Description.Present && !req.BranchIDs.Present && !req.CategoryIDs.Present {
		return nil, bodyEmpty(ctx, "recipe")
	}
	v := &validator.RecipeValidator{}
	if req.Name.Present {
		v.Name(req.Name)
	}
	if req.Description.Present {
		v.Description(req.Description)
	}
	if req.BranchIDs.Present {
		v.BranchEdit(req.BranchIDs)
	}
	if req.CategoryIDs.Present {
		v.CategoryEdit(req.CategoryIDs)
	}
	if !v.Ok() {
		return nil, invalid(ctx, &v.Errors)
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, errs.FromStore(err)
	}
	defer tx.Rollback()

	if ok, err := tx.Recipes.Exists(ctx, id); err != nil {
		return nil, errs.FromStore(err)
	} else if !ok {
		return nil, errs.NotFound("recipe")
	}

	fields := map[string]interface{}{}
	if req.Name.Present {
		fields["name"] = req.Name.Value
		fields["slug"] = utils.Slugify(req.Name.Value)
	}
	if req.Description.Present {
		fields["description"] = optionalText(req.Description)
	}
	if err := tx.Recipes.UpdateFields(ctx, id, fields); err != nil {
		return nil, errs.FromStore(err)
	}

	if req.BranchIDs.Present {
		add := req.BranchIDs.Add.Unique()
		if err := requireIDs(ctx, tx.Branches.MissingIDs, add, CodeBranchNotFound, "branch"); err != nil {
			return nil, err
		}
		if err := tx.Recipes.AddBranches(ctx, id, add); err != nil {
			return nil, errs.FromStore(err)
		}
		if err := tx.Recipes.RemoveBranches(ctx, id, req.BranchIDs.Rmv.Unique()); err != nil {
			return nil, errs.FromStore(err)
		}
	}
	if req.CategoryIDs.Present {
		add := req.CategoryIDs.Add.Unique()
		if err := requireIDs(ctx, tx.Categories.MissingIDs, add, CodeCategoryNotFound, "category"); err != nil {
			return nil, err
		}
		if err := tx.Recipes.AddCategories(ctx, id, add); err != nil {
			return nil, errs.FromStore(err)
		}
		if err := tx.Recipes.RemoveCategories(ctx, id, req.CategoryIDs.Rmv.Unique()); err != nil {
			return nil, errs.FromStore(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errs.FromStore(err)
	}
	return s.GetByID(ctx, id)
}

// Delete removes the recipe, its variants and its stored image.
func (s *RecipeService) Delete(ctx context.Context, id int64) error {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return errs.FromStore(err)
	}
	defer tx.Rollback()

	recipe, err := tx.Recipes.GetByID(ctx, id)
	if err != nil {
		return lookup(err, "recipe")
	}
	if err := tx.Recipes.Delete(ctx, id); err != nil {
		return errs.FromStore(err)
	}
	if err := tx.Commit(); err != nil {
		return errs.FromStore(err)
	}

	if recipe.ImagePath != nil {
		s.discardImage(ctx, *recipe.ImagePath)
	}
	return nil
}

// ==================== Image ====================

// Image opens the stored recipe image.
func (s *RecipeService) Image(ctx context.Context, id int64) (io.ReadCloser, string, error) {
	recipe, err := s.uow.Recipes.GetByID(ctx, id)
	if err != nil {
		return nil, "", lookup(err, "recipe")
	}
	if recipe.ImagePath == nil {
		return nil, "", errs.NotFound("image")
	}
	return s.storage.OpenImage(ctx, *recipe.ImagePath)
}

// ReplaceImage stores a new image and drops the previous one once the
// recipe points at the new file.
func (s *RecipeService) ReplaceImage(ctx context.Context, id int64, image io.Reader) (*dto.RecipeResp, error) {
	if ok, err := s.uow.Recipes.Exists(ctx, id); err != nil {
		return nil, errs.FromStore(err)
	} else if !ok {
		return nil, errs.NotFound("recipe")
	}

	key, err := s.storage.SaveImage(ctx, image)
	if err != nil {
		return nil, err
	}
	old, err := s.setImagePath(ctx, id, &key)
	if err != nil {
		s.discardImage(ctx, key)
		return nil, err
	}
	if old != nil {
		s.discardImage(ctx, *old)
	}
	return s.GetByID(ctx, id)
}

func (s *RecipeService) DeleteImage(ctx context.Context, id int64) error {
	old, err := s.setImagePath(ctx, id, nil)
	if err != nil {
		return err
	}
	if old == nil {
		return errs.NotFound("image")
	}
	s.discardImage(ctx, *old)
	return nil
}

// setImagePath swaps the stored path and returns the previous one.
func (s *RecipeService) setImagePath(ctx context.Context, id int64, path *string) (*string, error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, errs.FromStore(err)
	}
	defer tx.Rollback()

	recipe, err := tx.Recipes.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "recipe")
	}
	if recipe.ImagePath == nil && path == nil {
		return nil, nil
	}
	if err := tx.Recipes.UpdateFields(ctx, id, map[string]interface{}{"image_path": path}); err != nil {
		return nil, errs.FromStore(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, errs.FromStore(err)
	}
	return recipe.ImagePath, nil
}

func (s *RecipeService) discardImage(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		logger.Ctx(ctx).Error().Err(err).Str("image", key).Msg("failed to remove stored image")
	}
}

func (s *RecipeService) convertToResp(r *model.Recipe) dto.RecipeResp {
	resp := dto.RecipeResp{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Branches:    toRefs(r.Branches, branchRef),
		Categories:  toRefs(r.Categories, categoryRef),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.ImagePath != nil {
		p := utils.NormalizePath(*r.ImagePath)
		resp.Image = &p
	}
	return resp
}
