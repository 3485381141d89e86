package service

import (
	"context"

	"bakery_planner_v1/internal/api/dto"
	"bakery_planner_v1/internal/errs"
	"bakery_planner_v1/internal/model"
	"bakery_planner_v1/internal/repository"
	"bakery_planner_v1/internal/validator"
)

// ConversionService serves conversion types, their sizes and the conversions
// between those sizes.
type ConversionService struct {
	uow *repository.UnitOfWork
}

func NewConversionService(uow *repository.UnitOfWork) *ConversionService {
	return &ConversionService{uow: uow}
}

func (s *ConversionService) requireType(ctx context.Context, types repository.ConversionTypeRepository, id int64) error {
	ok, err := types.Exists(ctx, id)
	if err != nil {
		return errs.FromStore(err)
	}
	if !ok {
		return errs.NotFound("conversion type")
	}
	return nil
}

// ==================== ConversionType ====================

func (s *ConversionService) ListTypes(ctx context.Context, req dto.NameListReq) ([]dto.ConversionTypeResp, error) {
	types, err := s.uow.ConversionTypes.List(ctx, repository.ConversionTypeFilter{
		Name: repository.NameFilter(ctx, "conversionType.name", req.Name, validator.ValidAlpha, validator.ConversionTypeName),
		Page: page(req.PageQuery),
	})
	if err != nil {
		return nil, errs.FromStore(err)
	}
	out := make([]dto.ConversionTypeResp, 0, len(types))
	for i := range types {
		out = append(out, convertTypeToResp(&types[i]))
	}
	return out, nil
}

func (s *ConversionService) GetType(ctx context.Context, id int64) (*dto.ConversionTypeResp, error) {
	ct, err := s.uow.ConversionTypes.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "conversion type")
	}
	resp := convertTypeToResp(ct)
	return &resp, nil
}

func (s *ConversionService) CreateType(ctx context.Context, req dto.NameReq) (*dto.ConversionTypeResp, error) {
	v := &validator.ConversionTypeValidator{}
	if !v.Name(req.Name) {
		return nil, invalid(ctx, &v.Errors)
	}
	ct := &model.ConversionType{Name: req.Name.Value}
	if err := s.uow.ConversionTypes.Create(ctx, ct); err != nil {
		return nil, errs.FromStore(err)
	}
	resp := convertTypeToResp(ct)
	return &resp, nil
}

func (s *ConversionService) UpdateType(ctx context.Context, id int64, req dto.NameReq) (*dto.ConversionTypeResp, error) {
	if !req.Name.Present {
		return nil, bodyEmpty(ctx, "conversionType")
	}
	v := &validator.ConversionTypeValidator{}
	if !v.Name(req.Name) {
		return nil, invalid(ctx, &v.Errors)
	}
	if err := s.requireType(ctx, s.uow.ConversionTypes, id); err != nil {
		return nil, err
	}
	if err := s.uow.ConversionTypes.UpdateFields(ctx, id, map[string]interface{}{"name": req.Name.Value}); err != nil {
		return nil, errs.FromStore(err)
	}
	return s.GetType(ctx, id)
}

func (s *ConversionService) DeleteType(ctx context.Context, id int64) error {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return errs.FromStore(err)
	}
	defer tx.Rollback()

	if err := tx.ConversionTypes.Delete(ctx, id); err != nil {
		return lookup(err, "conversion type")
	}
	return errs.FromStore(tx.Commit())
}

// ==================== Size ====================

func (s *ConversionService) ListSizes(ctx context.Context, typeID int64, req dto.NameListReq) ([]dto.SizeResp, error) {
	if err := s.requireType(ctx, s.uow.ConversionTypes, typeID); err != nil {
		return nil, err
	}
	sizes, err := s.uow.Sizes.List(ctx, typeID, repository.SizeFilter{
		Name: repository.NameFilter(ctx, "size.name", req.Name, validator.ValidAlphanumeric, validator.SizeName),
		Page: page(req.PageQuery),
	})
	if err != nil {
		return nil, errs.FromStore(err)
	}
	out := make([]dto.SizeResp, 0, len(sizes))
	for i := range sizes {
		out = append(out, convertSizeToResp(&sizes[i]))
	}
	return out, nil
}

func (s *ConversionService) GetSize(ctx context.Context, typeID, id int64) (*dto.SizeResp, error) {
	if err := s.requireType(ctx, s.uow.ConversionTypes, typeID); err != nil {
		return nil, err
	}
	size, err := s.uow.Sizes.Get(ctx, typeID, id)
	if err != nil {
		return nil, lookup(err, "size")
	}
	resp := convertSizeToResp(size)
	return &resp, nil
}

func (s *ConversionService) CreateSize(ctx context.Context, typeID int64, req dto.NameReq) (*dto.SizeResp, error) {
	if err := s.requireType(ctx, s.uow.ConversionTypes, typeID); err != nil {
		return nil, err
	}
	v := &validator.SizeValidator{}
	if !v.Name(req.Name) {
		return nil, invalid(ctx, &v.Errors)
	}
	size := &model.Size{ConversionTypeID: typeID, Name: req.Name.Value}
	if err := s.uow.Sizes.Create(ctx, size); err != nil {
		return nil, errs.FromStore(err)
	}
	resp := convertSizeToResp(size)
	return &resp, nil
}

func (s *ConversionService) UpdateSize(ctx context.Context, typeID, id int64, req dto.NameReq) (*dto.SizeResp, error) {
	if err := s.requireType(ctx, s.uow.ConversionTypes, typeID); err != nil {
		return nil, err
	}
	if !req.Name.Present {
		return nil, bodyEmpty(ctx, "size")
	}
	v := &validator.SizeValidator{}
	if !v.Name(req.Name) {
		return nil, invalid(ctx, &v.Errors)
	}
	if _, err := s.uow.Sizes.Get(ctx, typeID, id); err != nil {
		return nil, lookup(err, "size")
	}
	if err := s.uow.Sizes.UpdateFields(ctx, typeID, id, map[string]interface{}{"name": req.Name.Value}); err != nil {
		return nil, errs.FromStore(err)
	}
	return s.GetSize(ctx, typeID, id)
}

// DeleteSize also removes the conversions using the size. A size still used
// by a variant or a scheduled item is refused by the store.
func (s *ConversionService) DeleteSize(ctx context.Context, typeID, id int64) error {
	if err := s.requireType(ctx, s.uow.ConversionTypes, typeID); err != nil {
		return err
	}
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return errs.FromStore(err)
	}
	defer tx.Rollback()

	if err := tx.Sizes.Delete(ctx, typeID, id); err != nil {
		return lookup(err, "size")
	}
	return errs.FromStore(tx.Commit())
}

// ==================== Conversion ====================

func (s *ConversionService) ListConversions(ctx context.Context, typeID int64, req dto.ConversionListReq) ([]dto.ConversionResp, error) {
	if err := s.requireType(ctx, s.uow.ConversionTypes, typeID); err != nil {
		return nil, err
	}
	conversions, err := s.uow.Conversions.List(ctx, typeID, repository.ConversionFilter{
		FromSize: idFilter(ctx, "fromSize", req.FromSize),
		ToSize:   idFilter(ctx, "toSize", req.ToSize),
		Page:     page(req.PageQuery),
	})
	if err != nil {
		return nil, errs.FromStore(err)
	}
	out := make([]dto.ConversionResp, 0, len(conversions))
	for i := range conversions {
		out = append(out, convertConversionToResp(&conversions[i]))
	}
	return out, nil
}

func (s *ConversionService) GetConversion(ctx context.Context, typeID, id int64) (*dto.ConversionResp, error) {
	if err := s.requireType(ctx, s.uow.ConversionTypes, typeID); err != nil {
		return nil, err
	}
	c, err := s.uow.Conversions.Get(ctx, typeID, id)
	if err != nil {
		return nil, lookup(err, "conversion")
	}
	resp := convertConversionToResp(c)
	return &resp, nil
}

// CreateConversion: identical sizes are refused before anything else about the
// body is judged; both sizes are then looked up inside the conversion type.
func (s *ConversionService) CreateConversion(ctx context.Context, typeID int64, req dto.ConversionCreateReq) (*dto.ConversionResp, error) {
	if err := s.requireType(ctx, s.uow.ConversionTypes, typeID); err != nil {
		return nil, err
	}

	v := &validator.ConversionValidator{}
	fromOK := v.FromSize(req.FromSize)
	toOK := v.ToSize(req.ToSize)
	fromID, _ := req.FromSize.Int()
	toID, _ := req.ToSize.Int()
	if fromOK && toOK && fromID == toID {
		return nil, errs.ForeignKey(CodeSizesIdentical, "conversion.fromSize and conversion.toSize must differ")
	}
	v.Multiplicator(req.Multiplicator)
	if !v.Ok() {
		return nil, invalid(ctx, &v.Errors)
	}

	if err := requireSize(ctx, s.uow.Sizes, typeID, fromID, CodeFromSizeNotFound, "conversion.fromSize"); err != nil {
		return nil, err
	}
	if err := requireSize(ctx, s.uow.Sizes, typeID, toID, CodeToSizeNotFound, "conversion.toSize"); err != nil {
		return nil, err
	}

	c := &model.Conversion{
		ConversionTypeID: typeID,
		FromSizeID:       fromID,
		ToSizeID:         toID,
		Multiplicator:    req.Multiplicator.Value,
	}
	if err := s.uow.Conversions.Create(ctx, c); err != nil {
		return nil, errs.FromStore(err)
	}
	return s.GetConversion(ctx, typeID, c.ID)
}

func (s *ConversionService) UpdateConversion(ctx context.Context, typeID, id int64, req dto.ConversionUpdateReq) (*dto.ConversionResp, error) {
	if err := s.requireType(ctx, s.uow.ConversionTypes, typeID); err != nil {
		return nil, err
	}
	v := &validator.ConversionValidator{}
	if !v.Multiplicator(req.Multiplicator) {
		return nil, invalid(ctx, &v.Errors)
	}
	if _, err := s.uow.Conversions.Get(ctx, typeID, id); err != nil {
		return nil, lookup(err, "conversion")
	}
	if err := s.uow.Conversions.UpdateFields(ctx, typeID, id, map[string]interface{}{"multiplicator": req.Multiplicator.Value}); err != nil {
		return nil, errs.FromStore(err)
	}
	return s.GetConversion(ctx, typeID, id)
}

func (s *ConversionService) DeleteConversion(ctx context.Context, typeID, id int64) error {
	if err := s.requireType(ctx, s.uow.ConversionTypes, typeID); err != nil {
		return err
	}
	if err := s.uow.Conversions.Delete(ctx, typeID, id); err != nil {
		return lookup(err, "conversion")
	}
	return nil
}

// ==================== Conversion to responses ====================

func convertSizeToResp(sz *model.Size) dto.SizeResp {
	return dto.SizeResp{
		ID:               sz.ID,
		ConversionTypeID: sz.ConversionTypeID,
		Name:             sz.Name,
		CreatedAt:        sz.CreatedAt,
		UpdatedAt:        sz.UpdatedAt,
	}
}

func convertTypeToResp(ct *model.ConversionType) dto.ConversionTypeResp {
	resp := dto.ConversionTypeResp{
		ID:        ct.ID,
		Name:      ct.Name,
		Sizes:     make([]dto.SizeResp, 0, len(ct.Sizes)),
		CreatedAt: ct.CreatedAt,
		UpdatedAt: ct.UpdatedAt,
	}
	for i := range ct.Sizes {
		resp.Sizes = append(resp.Sizes, convertSizeToResp(&ct.Sizes[i]))
	}
	return resp
}

func convertConversionToResp(c *model.Conversion) dto.ConversionResp {
	return dto.ConversionResp{
		ID:               c.ID,
		ConversionTypeID: c.ConversionTypeID,
		FromSize:         sizeRef(c.FromSize),
		ToSize:           sizeRef(c.ToSize),
		Multiplicator:    c.Multiplicator,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
