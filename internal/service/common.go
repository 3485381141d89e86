package service

import (
	"context"
	"strconv"
	"strings"

	"bakery_planner_v1/internal/api/dto"
	"bakery_planner_v1/internal/errs"
	"bakery_planner_v1/internal/model"
	"bakery_planner_v1/internal/repository"
	"bakery_planner_v1/internal/validator"
	"bakery_planner_v1/pkg/logger"
)

// Foreign-key codes raised by the integrity checks.
const (
	CodeSizesIdentical         = "SIZES_IDENTICAL"
	CodeFromSizeNotFound       = "FROM_SIZE_NOT_FOUND"
	CodeToSizeNotFound         = "TO_SIZE_NOT_FOUND"
	CodeVariantNotFound        = "VARIANT_NOT_FOUND"
	CodeSizeNotFound           = "SIZE_NOT_FOUND"
	CodeConversionTypeNotFound = "CONVERSION_TYPE_NOT_FOUND"
	CodeConversionNotFound     = "CONVERSION_NOT_FOUND"
	CodeRecipeNotFound         = "RECIPE_NOT_FOUND"
	CodeBranchNotFound         = "BRANCH_NOT_FOUND"
	CodeCategoryNotFound       = "CATEGORY_NOT_FOUND"
)

// invalid logs the accumulated errors and returns them as a validation error.
func invalid(ctx context.Context, e *validator.Errors) error {
	for _, d := range e.All() {
		logger.Ctx(ctx).Debug().Str("code", d.Code).Msg(d.Message)
	}
	return e.Err()
}

func bodyEmpty(ctx context.Context, resource string) error {
	var e validator.Errors
	e.Push(validator.BodyEmpty, resource+": request body has no updatable field")
	return invalid(ctx, &e)
}

// lookup maps a store miss to a 404 naming resource.
func lookup(err error, resource string) error {
	if errs.IsNotFound(err) {
		return errs.NotFound(resource)
	}
	return errs.FromStore(err)
}

// requireIDs fails with code when any of ids has no row.
func requireIDs(ctx context.Context, missing func(context.Context, []int64) ([]int64, error), ids []int64, code, label string) error {
	gone, err := missing(ctx, ids)
	if err != nil {
		return errs.FromStore(err)
	}
	if len(gone) > 0 {
		return errs.ForeignKey(code, label+" not found: "+joinIDs(gone))
	}
	return nil
}

func relationFilter(ctx context.Context, label string, include, exclude []string, none string) repository.RelationFilter {
	return repository.NewRelationFilter(ctx, label, validator.ParseIDList(include), validator.ParseIDList(exclude), none)
}

// idFilter parses a plain id list filter; a malformed list is skipped.
func idFilter(ctx context.Context, label string, raw []string) []int64 {
	l := validator.ParseIDList(raw)
	if !l.Present {
		return nil
	}
	var e validator.Errors
	if !validator.ValidNumberArray(&e, label, l) {
		logger.Ctx(ctx).Debug().Str("filter", label).Msg("skipping id filter")
		return nil
	}
	return l.Unique()
}

func page(q dto.PageQuery) repository.Page {
	return repository.Page{Limit: q.Limit, Offset: q.Offset}
}

func optionalText(t validator.Text) *string {
	if !t.Present || t.Null || !t.IsString {
		return nil
	}
	v := t.Value
	return &v
}

// ==================== Conversion to responses ====================

func toRefs[T any](items []T, ref func(*T) dto.Ref) []dto.Ref {
	out := make([]dto.Ref, 0, len(items))
	for i := range items {
		out = append(out, ref(&items[i]))
	}
	return out
}

func recipeRef(r *model.Recipe) dto.Ref     { return dto.Ref{ID: r.ID, Name: r.Name, Slug: r.Slug} }
func branchRef(b *model.Branch) dto.Ref     { return dto.Ref{ID: b.ID, Name: b.Name, Slug: b.Slug} }
func categoryRef(c *model.Category) dto.Ref { return dto.Ref{ID: c.ID, Name: c.Name, Slug: c.Slug} }

func sizeRef(s *model.Size) dto.Ref {
	if s == nil {
		return dto.Ref{}
	}
	return dto.Ref{ID: s.ID, Name: s.Name}
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}
