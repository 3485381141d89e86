package model

// All lists every table for AutoMigrate, parents first.
func All() []interface{} {
	return []interface{}{
		&ConversionType{}, &Size{}, &Conversion{},
		&Branch{}, &Category{}, &Recipe{},
		&Variant{}, &Ingredient{}, &ScheduledItem{},
	}
}
