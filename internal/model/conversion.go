package model

// ConversionType groups sizes that can be converted into each other (round pans, trays, ...).
type ConversionType struct {
	BaseModel
	Name string `gorm:"size:30;not null;uniqueIndex:uq_conversion_type_name"`

	Sizes       []Size       `gorm:"constraint:OnDelete:CASCADE"`
	Conversions []Conversion `gorm:"constraint:OnDelete:CASCADE"`
}

type Size struct {
	BaseModel
	ConversionTypeID int64  `gorm:"not null;uniqueIndex:uq_size_type_name,priority:1"`
	Name             string `gorm:"size:30;not null;uniqueIndex:uq_size_type_name,priority:2"`
}

// Conversion scales quantities from FromSize to ToSize. Both sizes belong to
// ConversionTypeID and differ from each other.
type Conversion struct {
	BaseModel
	ConversionTypeID int64   `gorm:"not null;uniqueIndex:uq_conversion_sizes,priority:1"`
	FromSizeID       int64   `gorm:"not null;uniqueIndex:uq_conversion_sizes,priority:2"`
	ToSizeID         int64   `gorm:"not null;uniqueIndex:uq_conversion_sizes,priority:3"`
	Multiplicator    float64 `gorm:"not null"`

	FromSize *Size `gorm:"foreignKey:FromSizeID;constraint:OnDelete:CASCADE"`
	ToSize   *Size `gorm:"foreignKey:ToSizeID;constraint:OnDelete:CASCADE"`
}
