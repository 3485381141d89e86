package dto

import "bakery_planner_v1/internal/errs"

// ================== Envelopes ==================

// DataResp wraps every successful response body.
type DataResp struct {
	Data interface{} `json:"data"`
}

// ErrorResp wraps every failure.
type ErrorResp struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody code and message are those of the first detail; details lists all of them.
type ErrorBody struct {
	Code    string        `json:"code"`
	Type    errs.Type     `json:"type"`
	Message string        `json:"message"`
	Details []errs.Detail `json:"details,omitempty"`
}

// PageQuery limit/offset paging accepted by every listing.
type PageQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// Ref is the short form of a related entity.
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// SweepResp POST /tasks/upload_sweep
type SweepResp struct {
	Removed int `json:"removed"`
}

// HealthResp /health
type HealthResp struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
