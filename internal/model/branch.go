package model

// Branch is a shop location that bakes a subset of the recipes.
type Branch struct {
	BaseModel
	Name string `gorm:"size:20;not null"`
	Slug string `gorm:"size:255;not null;uniqueIndex:uq_branch_slug"`

	Recipes  []Recipe        `gorm:"many2many:recipe_branches;constraint:OnDelete:CASCADE"`
	Schedule []ScheduledItem `gorm:"constraint:OnDelete:CASCADE"`
}

// Category groups recipes (bread, cakes, ...).
type Category struct {
	BaseModel
	Name string `gorm:"size:30;not null"`
	Slug string `gorm:"size:255;not null;uniqueIndex:uq_category_slug"`

	Recipes []Recipe `gorm:"many2many:recipe_categories;constraint:OnDelete:CASCADE"`
}
