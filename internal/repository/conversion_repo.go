package repository

import (
	"context"

	"gorm.io/gorm"

	"bakery_planner_v1/internal/model"
)

// ==================== Interfaces ====================

type ConversionTypeRepository interface {
	List(ctx context.Context, filter ConversionTypeFilter) ([]model.ConversionType, error)
	GetByID(ctx context.Context, id int64) (*model.ConversionType, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, ct *model.ConversionType) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

// SizeRepository lookups are always scoped by conversion type: a size of
// another type is reported the same way as a size that does not exist.
type SizeRepository interface {
	List(ctx context.Context, conversionTypeID int64, filter SizeFilter) ([]model.Size, error)
	Get(ctx context.Context, conversionTypeID, id int64) (*model.Size, error)
	Create(ctx context.Context, size *model.Size) error
	UpdateFields(ctx context.Context, conversionTypeID, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, conversionTypeID, id int64) error
}

type ConversionRepository interface {
	List(ctx context.Context, conversionTypeID int64, filter ConversionFilter) ([]model.Conversion, error)
	Get(ctx context.Context, conversionTypeID, id int64) (*model.Conversion, error)
	// Find returns the conversion from one size to another.
	Find(ctx context.Context, fromSizeID, toSizeID int64) (*model.Conversion, error)
	Create(ctx context.Context, conversion *model.Conversion) error
	UpdateFields(ctx context.Context, conversionTypeID, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, conversionTypeID, id int64) error
}

// ==================== Filters ====================

type ConversionTypeFilter struct {
	Name string
	Page
}

type SizeFilter struct {
	Name string
	Page
}

type ConversionFilter struct {
	FromSize []int64
	ToSize   []int64
	Page
}

// ==================== ConversionType ====================

type conversionTypeRepo struct {
	db *gorm.DB
}

func NewConversionTypeRepository(db *gorm.DB) ConversionTypeRepository {
	return &conversionTypeRepo{db: db}
}

func (r *conversionTypeRepo) List(ctx context.Context, filter ConversionTypeFilter) ([]model.ConversionType, error) {
	var types []model.ConversionType
	err := r.db.WithContext(ctx).Model(&model.ConversionType{}).
		Scopes(nameScope("conversion_types", filter.Name), filter.Page.scope("conversion_types")).
		Preload("Sizes", func(db *gorm.DB) *gorm.DB { return db.Order("sizes.id ASC") }).
		Find(&types).Error
	return types, err
}

func (r *conversionTypeRepo) GetByID(ctx context.Context, id int64) (*model.ConversionType, error) {
	var ct model.ConversionType
	err := r.db.WithContext(ctx).
		Preload("Sizes", func(db *gorm.DB) *gorm.DB { return db.Order("sizes.id ASC") }).
		First(&ct, id).Error
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

func (r *conversionTypeRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ConversionType{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *conversionTypeRepo) Create(ctx context.Context, ct *model.ConversionType) error {
	return r.db.WithContext(ctx).Omit("Sizes", "Conversions").Create(ct).Error
}

func (r *conversionTypeRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.ConversionType{}).Where("id = ?", id).Updates(fields).Error
}

// Delete cascades to sizes and conversions. It fails while a variant still
// uses one of the sizes.
func (r *conversionTypeRepo) Delete(ctx context.Context, id int64) error {
	return deleteResult(r.db.WithContext(ctx).Delete(&model.ConversionType{}, id))
}

// ==================== Size ====================

type sizeRepo struct {
	db *gorm.DB
}

func NewSizeRepository(db *gorm.DB) SizeRepository {
	return &sizeRepo{db: db}
}

func (r *sizeRepo) List(ctx context.Context, conversionTypeID int64, filter SizeFilter) ([]model.Size, error) {
	var sizes []model.Size
	err := r.db.WithContext(ctx).Model(&model.Size{}).
		Where("sizes.conversion_type_id = ?", conversionTypeID).
		Scopes(nameScope("sizes", filter.Name), filter.Page.scope("sizes")).
		Find(&sizes).Error
	return sizes, err
}

func (r *sizeRepo) Get(ctx context.Context, conversionTypeID, id int64) (*model.Size, error) {
	var size model.Size
	err := r.db.WithContext(ctx).
		Where("conversion_type_id = ? AND id = ?", conversionTypeID, id).
		First(&size).Error
	if err != nil {
		return nil, err
	}
	return &size, nil
}

func (r *sizeRepo) Create(ctx context.Context, size *model.Size) error {
	return r.db.WithContext(ctx).Create(size).Error
}

func (r *sizeRepo) UpdateFields(ctx context.Context, conversionTypeID, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Size{}).
		Where("conversion_type_id = ? AND id = ?", conversionTypeID, id).
		Updates(fields).Error
}

func (r *sizeRepo) Delete(ctx context.Context, conversionTypeID, id int64) error {
	return deleteResult(r.db.WithContext(ctx).
		Where("conversion_type_id = ?", conversionTypeID).
		Delete(&model.Size{}, id))
}

// ==================== Conversion ====================

type conversionRepo struct {
	db *gorm.DB
}

func NewConversionRepository(db *gorm.DB) ConversionRepository {
	return &conversionRepo{db: db}
}

func (r *conversionRepo) List(ctx context.Context, conversionTypeID int64, filter ConversionFilter) ([]model.Conversion, error) {
	var conversions []model.Conversion
	q := r.db.WithContext(ctx).Model(&model.Conversion{}).
		Where("conversions.conversion_type_id = ?", conversionTypeID).
		Scopes(filter.Page.scope("conversions")).
		Preload("FromSize").Preload("ToSize")
	if len(filter.FromSize) > 0 {
		q = q.Where("conversions.from_size_id IN ?", filter.FromSize)
	}
	if len(filter.ToSize) > 0 {
		q = q.Where("conversions.to_size_id IN ?", filter.ToSize)
	}
	err := q.Find(&conversions).Error
	return conversions, err
}

func (r *conversionRepo) Get(ctx context.Context, conversionTypeID, id int64) (*model.Conversion, error) {
	var c model.Conversion
	err := r.db.WithContext(ctx).Preload("FromSize").Preload("ToSize").
		Where("conversion_type_id = ? AND id = ?", conversionTypeID, id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *conversionRepo) Find(ctx context.Context, fromSizeID, toSizeID int64) (*model.Conversion, error) {
	var c model.Conversion
	err := r.db.WithContext(ctx).
		Where("from_size_id = ? AND to_size_id = ?", fromSizeID, toSizeID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *conversionRepo) Create(ctx context.Context, conversion *model.Conversion) error {
	return r.db.WithContext(ctx).Omit("FromSize", "ToSize").Create(conversion).Error
}

func (r *conversionRepo) UpdateFields(ctx context.Context, conversionTypeID, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Conversion{}).
		Where("conversion_type_id = ? AND id = ?", conversionTypeID, id).
		Updates(fields).Error
}

func (r *conversionRepo) Delete(ctx context.Context, conversionTypeID, id int64) error {
	return deleteResult(r.db.WithContext(ctx).
		Where("conversion_type_id = ?", conversionTypeID).
		Delete(&model.Conversion{}, id))
}
