package dto

import (
	"time"

	"bakery_planner_v1/internal/validator"
)

// ================== ConversionType / Size / Conversion DTO ==================

type NameListReq struct {
	Name string `form:"name"`
	PageQuery
}

// NameReq is the body of conversion type and size writes.
type NameReq struct {
	Name validator.Text `json:"name"`
}

type SizeResp struct {
	ID               int64     `json:"id"`
	ConversionTypeID int64     `json:"conversionTypeId"`
	Name             string    `json:"name"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type ConversionTypeResp struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Sizes     []SizeResp `json:"sizes"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ConversionListReq GET /conversion_types/:id/conversions
type ConversionListReq struct {
	FromSize []string `form:"fromSize"`
	ToSize   []string `form:"toSize"`
	PageQuery
}

type ConversionCreateReq struct {
	FromSize      validator.Number `json:"fromSize"`
	ToSize        validator.Number `json:"toSize"`
	Multiplicator validator.Number `json:"multiplicator"`
}

type ConversionUpdateReq struct {
	Multiplicator validator.Number `json:"multiplicator"`
}

type ConversionResp struct {
	ID               int64     `json:"id"`
	ConversionTypeID int64     `json:"conversionTypeId"`
	FromSize         Ref       `json:"fromSize"`
	ToSize           Ref       `json:"toSize"`
	Multiplicator    float64   `json:"multiplicator"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
