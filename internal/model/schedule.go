package model

// Weekday 1 = Monday ... 7 = Sunday
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

func (d Weekday) Valid() bool { return d >= Monday && d <= Sunday }

// ScheduledItem is a planned production quantity of a variant in a size, for
// one branch on one weekday.
type ScheduledItem struct {
	BaseModel
	BranchID  int64   `gorm:"not null;index"`
	VariantID int64   `gorm:"not null;index"`
	SizeID    int64   `gorm:"not null;index"`
	Day       Weekday `gorm:"not null;index;check:chk_scheduled_item_day,day >= 1 AND day <= 7"`
	Quantity  float64 `gorm:"not null"`

	Size *Size `gorm:"constraint:OnDelete:RESTRICT"`
}
