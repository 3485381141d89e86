package model

import "time"

// BaseModel holds the system-maintained columns. Rows are hard deleted so that slug uniqueness and
// ON DELETE cascades behave the same on postgres and sqlite.
type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
