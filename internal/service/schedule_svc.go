package service

import (
	"context"

	"bakery_planner_v1/internal/api/dto"
	"bakery_planner_v1/internal/errs"
	"bakery_planner_v1/internal/model"
	"bakery_planner_v1/internal/repository"
	"bakery_planner_v1/internal/validator"
	"bakery_planner_v1/pkg/logger"
)

// ScheduleService manages the weekly production plan of a branch.
type ScheduleService struct {
	uow *repository.UnitOfWork
}

func NewScheduleService(uow *repository.UnitOfWork) *ScheduleService {
	return &ScheduleService{uow: uow}
}

func (s *ScheduleService) requireBranch(ctx context.Context, branches repository.BranchRepository, branchID int64) error {
	missing, err := branches.MissingIDs(ctx, []int64{branchID})
	if err != nil {
		return errs.FromStore(err)
	}
	if len(missing) > 0 {
		return errs.NotFound("branch")
	}
	return nil
}

// dayFilter is idFilter limited to weekdays; a list holding any other number is skipped.
func dayFilter(ctx context.Context, raw []string) []int64 {
	days := idFilter(ctx, "day", raw)
	for _, d := range days {
		if !model.Weekday(d).Valid() {
			logger.Ctx(ctx).Debug().Int64("day", d).Msg("skipping day filter")
			return nil
		}
	}
	return days
}

func (s *ScheduleService) List(ctx context.Context, branchID int64, req dto.ScheduleListReq) ([]dto.ScheduledItemResp, error) {
	if err := s.requireBranch(ctx, s.uow.Branches, branchID); err != nil {
		return nil, err
	}
	items, err := s.uow.Schedule.List(ctx, branchID, repository.ScheduleFilter{
		Days:    dayFilter(ctx, req.Day),
		Variant: idFilter(ctx, "variant", req.Variant),
		Size:    idFilter(ctx, "size", req.Size),
		Page:    page(req.PageQuery),
	})
	if err != nil {
		return nil, errs.FromStore(err)
	}
	out := make([]dto.ScheduledItemResp, 0, len(items))
	for i := range items {
		out = append(out, s.convertToResp(&items[i]))
	}
	return out, nil
}

func (s *ScheduleService) Get(ctx context.Context, branchID, id int64) (*dto.ScheduledItemResp, error) {
	if err := s.requireBranch(ctx, s.uow.Branches, branchID); err != nil {
		return nil, err
	}
	item, err := s.uow.Schedule.Get(ctx, branchID, id)
	if err != nil {
		return nil, lookup(err, "scheduled item")
	}
	resp := s.convertToResp(item)
	return &resp, nil
}

// Create: the variant must belong to a recipe of the branch and the size to
// the variant's conversion type.
func (s *ScheduleService) Create(ctx context.Context, branchID int64, req dto.ScheduleCreateReq) (*dto.ScheduledItemResp, error) {
	if err := s.requireBranch(ctx, s.uow.Branches, branchID); err != nil {
		return nil, err
	}

	v := &validator.ScheduleItemValidator{}
	v.Day(req.Day)
	v.Variant(req.Variant)
	v.Size(req.Size)
	v.Quantity(req.Quantity)
	if !v.Ok() {
		return nil, invalid(ctx, &v.Errors)
	}
	day, _ := req.Day.Int()
	variantID, _ := req.Variant.Int()
	sizeID, _ := req.Size.Int()

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, errs.FromStore(err)
	}
	defer tx.Rollback()

	variant, err := tx.Variants.GetInBranch(ctx, branchID, variantID)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.ForeignKey(CodeVariantNotFound, "schedule.variant is not a variant of a recipe of this branch")
		}
		return nil, errs.FromStore(err)
	}
	if err := requireSize(ctx, tx.Sizes, variant.ConversionTypeID, sizeID, CodeSizeNotFound, "schedule.size"); err != nil {
		return nil, err
	}

	item := &model.ScheduledItem{
		BranchID:  branchID,
		VariantID: variantID,
		SizeID:    sizeID,
		Day:       model.Weekday(day),
		Quantity:  req.Quantity.Value,
	}
	if err := tx.Schedule.Create(ctx, item); err != nil {
		return nil, errs.FromStore(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, errs.FromStore(err)
	}
	return s.Get(ctx, branchID, item.ID)
}

func (s *ScheduleService) Update(ctx context.Context, branchID, id int64, req dto.ScheduleUpdateReq) (*dto.ScheduledItemResp, error) {
	if err := s.requireBranch(ctx, s.uow.Branches, branchID); err != nil {
		return nil, err
	}
	if !req.Day.Present && !req.Size.Present && !req.Quantity.Present {
		return nil, bodyEmpty(ctx, "schedule")
	}

	v := &validator.ScheduleItemValidator{}
	if req.Day.Present {
		v.Day(req.Day)
	}
	if req.Size.Present {
		v.Size(req.Size)
	}
	if req.Quantity.Present {
		v.Quantity(req.Quantity)
	}
	if !v.Ok() {
		return nil, invalid(ctx, &v.Errors)
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, errs.FromStore(err)
	}
	defer tx.Rollback()

	item, err := tx.Schedule.Get(ctx, branchID, id)
	if err != nil {
		return nil, lookup(err, "scheduled item")
	}

	fields := map[string]interface{}{}
	if req.Day.Present {
		day, _ := req.Day.Int()
		fields["day"] = day
	}
	if req.Size.Present {
		sizeID, _ := req.Size.Int()
		variant, err := tx.Variants.GetInBranch(ctx, branchID, item.VariantID)
		if err != nil {
			if errs.IsNotFound(err) {
				return nil, errs.ForeignKey(CodeVariantNotFound, "the scheduled variant is no longer offered by this branch")
			}
			return nil, errs.FromStore(err)
		}
		if err := requireSize(ctx, tx.Sizes, variant.ConversionTypeID, sizeID, CodeSizeNotFound, "schedule.size"); err != nil {
			return nil, err
		}
		fields["size_id"] = sizeID
	}
	if req.Quantity.Present {
		fields["quantity"] = req.Quantity.Value
	}
	if err := tx.Schedule.UpdateFields(ctx, branchID, id, fields); err != nil {
		return nil, errs.FromStore(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, errs.FromStore(err)
	}
	return s.Get(ctx, branchID, id)
}

func (s *ScheduleService) Delete(ctx context.Context, branchID, id int64) error {
	if err := s.requireBranch(ctx, s.uow.Branches, branchID); err != nil {
		return err
	}
	if err := s.uow.Schedule.Delete(ctx, branchID, id); err != nil {
		return lookup(err, "scheduled item")
	}
	return nil
}

func (s *ScheduleService) convertToResp(item *model.ScheduledItem) dto.ScheduledItemResp {
	return dto.ScheduledItemResp{
		ID:        item.ID,
		BranchID:  item.BranchID,
		VariantID: item.VariantID,
		Size:      sizeRef(item.Size),
		Day:       int(item.Day),
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}
