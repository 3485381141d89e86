package repository

import (
	"context"

	"gorm.io/gorm"

	"bakery_planner_v1/internal/model"
)

type ScheduleRepository interface {
	List(ctx context.Context, branchID int64, filter ScheduleFilter) ([]model.ScheduledItem, error)
	Get(ctx context.Context, branchID, id int64) (*model.ScheduledItem, error)
	Create(ctx context.Context, item *model.ScheduledItem) error
	UpdateFields(ctx context.Context, branchID, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, branchID, id int64) error
}

type ScheduleFilter struct {
	Days    []int64
	Variant []int64
	Size    []int64
	Page
}

type scheduleRepo struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) List(ctx context.Context, branchID int64, filter ScheduleFilter) ([]model.ScheduledItem, error) {
	var items []model.ScheduledItem
	q := r.db.WithContext(ctx).Model(&model.ScheduledItem{}).
		Where("scheduled_items.branch_id = ?", branchID).
		Preload("Size")
	if len(filter.Days) > 0 {
		q = q.Where("scheduled_items.day IN ?", filter.Days)
	}
	if len(filter.Variant) > 0 {
		q = q.Where("scheduled_items.variant_id IN ?", filter.Variant)
	}
	if len(filter.Size) > 0 {
		q = q.Where("scheduled_items.size_id IN ?", filter.Size)
	}
	err := q.Scopes(filter.Page.scope("scheduled_items")).Find(&items).Error
	return items, err
}

func (r *scheduleRepo) Get(ctx context.Context, branchID, id int64) (*model.ScheduledItem, error) {
	var item model.ScheduledItem
	err := r.db.WithContext(ctx).Preload("Size").
		Where("branch_id = ? AND id = ?", branchID, id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *scheduleRepo) Create(ctx context.Context, item *model.ScheduledItem) error {
	return r.db.WithContext(ctx).Omit("Size").Create(item).Error
}

func (r *scheduleRepo) UpdateFields(ctx context.Context, branchID, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.ScheduledItem{}).
		Where("branch_id = ? AND id = ?", branchID, id).
		Updates(fields).Error
}

func (r *scheduleRepo) Delete(ctx context.Context, branchID, id int64) error {
	return deleteResult(r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Delete(&model.ScheduledItem{}, id))
}
