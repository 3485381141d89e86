package dto

import (
	"time"

	"bakery_planner_v1/internal/validator"
)

// ================== Schedule DTO ==================

// ScheduleListReq GET /branches/:id/schedule
type ScheduleListReq struct {
	Day     []string `form:"day"`
	Variant []string `form:"variant"`
	Size    []string `form:"size"`
	PageQuery
}

type ScheduleCreateReq struct {
	Day      validator.Number `json:"day"`
	Variant  validator.Number `json:"variant"`
	Size     validator.Number `json:"size"`
	Quantity validator.Number `json:"quantity"`
}

// ScheduleUpdateReq PATCH /branches/:id/schedule/:itemId. The variant is fixed once scheduled.
type ScheduleUpdateReq struct {
	Day      validator.Number `json:"day"`
	Size     validator.Number `json:"size"`
	Quantity validator.Number `json:"quantity"`
}

type ScheduledItemResp struct {
	ID        int64     `json:"id"`
	BranchID  int64     `json:"branchId"`
	VariantID int64     `json:"variantId"`
	Size      Ref       `json:"size"`
	Day       int       `json:"day"`
	Quantity  float64   `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
