package model

type Recipe struct {
	BaseModel
	Name        string  `gorm:"size:100;not null"`
	Slug        string  `gorm:"size:255;not null;uniqueIndex:uq_recipe_slug"`
	Description *string `gorm:"type:text"`
	ImagePath   *string `gorm:"size:512"` // forward-slash form, see utils.NormalizePath

	Branches   []Branch   `gorm:"many2many:recipe_branches;constraint:OnDelete:CASCADE"`
	Categories []Category `gorm:"many2many:recipe_categories;constraint:OnDelete:CASCADE"`
	Variants   []Variant  `gorm:"constraint:OnDelete:CASCADE"`
}

// Variant is a sized rendition of a recipe with its own ingredient list.
// Its size must be one of the sizes of its conversion type.
type Variant struct {
	BaseModel
	Name        string  `gorm:"size:255;not null"`
	Description *string `gorm:"type:text"`

	RecipeID         int64 `gorm:"not null;index"`
	ConversionTypeID int64 `gorm:"not null;index"`
	SizeID           int64 `gorm:"not null;index"`

	ConversionType *ConversionType `gorm:"constraint:OnDelete:RESTRICT"`
	Size           *Size           `gorm:"constraint:OnDelete:RESTRICT"`
	Ingredients    []Ingredient    `gorm:"constraint:OnDelete:CASCADE"`
	Schedule       []ScheduledItem `gorm:"constraint:OnDelete:CASCADE"`
}

// Ingredient is one line of a variant's ingredient list.
type Ingredient struct {
	BaseModel
	VariantID int64   `gorm:"not null;index"`
	Name      string  `gorm:"size:100;not null"`
	Quantity  float64 `gorm:"not null"`
	Unit      string  `gorm:"size:30;not null"`
	Section   string  `gorm:"size:100;not null"` // display grouping, e.g. "Teig", "Füllung"
	Order     int     `gorm:"column:sort_order;not null;default:0"`
}
