package validator

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"bakery_planner_v1/pkg/utils"
)

// Name bounds per resource.
var (
	BranchName         = Bounds{Min: 1, Max: 20}
	CategoryName       = Bounds{Min: 1, Max: 30}
	RecipeName         = Bounds{Min: 1, Max: 100}
	VariantName        = Bounds{Min: 1, Max: 255}
	ConversionTypeName = Bounds{Min: 1, Max: 30}
	SizeName           = Bounds{Min: 1, Max: 30}
	IngredientName     = Bounds{Min: 1, Max: 100}

	unitBounds    = Bounds{Min: 1, Max: 30}
	sectionBounds = Bounds{Min: 1, Max: 100}
)

// validSlugSource rejects names whose slug would be empty, e.g. digits only.
func validSlugSource(e *Errors, label string, t Text) bool {
	if utils.Slugify(t.Value) == "" {
		e.Push(NameInvalid, label+" must contain at least one letter a-z, ä, ö, ü or ß")
		return false
	}
	return true
}

// validRelationEdit checks both lists and rejects ids that appear in add and rmv.
func validRelationEdit(e *Errors, label string, r RelationEdit) bool {
	if !r.IsObject {
		e.Push(ArrayInvalid, label+" must be an object with add/rmv arrays")
		return false
	}
	ok := true
	if r.Add.Present {
		ok = ValidNumberArray(e, label+".add", r.Add) && ok
	}
	if r.Rmv.Present {
		ok = ValidNumberArray(e, label+".rmv", r.Rmv) && ok
	}
	if !ok {
		return false
	}
	rmv := make(map[int64]struct{}, len(r.Rmv.IDs))
	for _, id := range r.Rmv.IDs {
		rmv[id] = struct{}{}
	}
	for _, id := range r.Add.IDs {
		if _, dup := rmv[id]; dup {
			e.Push(RelationOverlap, fmt.Sprintf("%s: id %d is both added and removed", label, id))
			return false
		}
	}
	return true
}

// ==================== Branch / Category ====================

type BranchValidator struct{ Errors }

func (v *BranchValidator) Name(t Text) bool {
	return ValidAlpha(&v.Errors, "branch.name", t, BranchName) && validSlugSource(&v.Errors, "branch.name", t)
}

func (v *BranchValidator) RecipeIDs(r RelationEdit) bool {
	return validRelationEdit(&v.Errors, "branch.recipe_ids", r)
}

type CategoryValidator struct{ Errors }

func (v *CategoryValidator) Name(t Text) bool {
	return ValidAlpha(&v.Errors, "category.name", t, CategoryName) && validSlugSource(&v.Errors, "category.name", t)
}

func (v *CategoryValidator) RecipeIDs(r RelationEdit) bool {
	return validRelationEdit(&v.Errors, "category.recipe_ids", r)
}

// ==================== Recipe ====================

type RecipeValidator struct{ Errors }

func (v *RecipeValidator) Name(t Text) bool {
	return ValidAlphanumeric(&v.Errors, "recipe.name", t, RecipeName) && validSlugSource(&v.Errors, "recipe.name", t)
}

func (v *RecipeValidator) Description(t Text) bool {
	return ValidDescription(&v.Errors, "recipe.description", t)
}

// BranchIDs validates the plain id array sent on create.
func (v *RecipeValidator) BranchIDs(l IDList) bool {
	return ValidNumberArray(&v.Errors, "recipe.branch_ids", l)
}

func (v *RecipeValidator) CategoryIDs(l IDList) bool {
	return ValidNumberArray(&v.Errors, "recipe.category_ids", l)
}

func (v *RecipeValidator) BranchEdit(r RelationEdit) bool {
	return validRelationEdit(&v.Errors, "recipe.branch_ids", r)
}

func (v *RecipeValidator) CategoryEdit(r RelationEdit) bool {
	return validRelationEdit(&v.Errors, "recipe.category_ids", r)
}

// ==================== Variant / Ingredient ====================

// Ingredient is a checked ingredient line.
type Ingredient struct {
	Name     string
	Quantity float64
	Unit     string
	Section  string
	Order    int
}

var ingredientKeys = []string{"name", "quantity", "unit", "section", "order"}

type VariantValidator struct{ Errors }

func (v *VariantValidator) Name(t Text) bool {
	return ValidAlphanumeric(&v.Errors, "variant.name", t, VariantName)
}

func (v *VariantValidator) Description(t Text) bool {
	return ValidDescription(&v.Errors, "variant.description", t)
}

func (v *VariantValidator) ConversionType(n Number) bool {
	return ValidID(&v.Errors, "variant.conversionType", n)
}

func (v *VariantValidator) Size(n Number) bool {
	return ValidID(&v.Errors, "variant.size", n)
}

// Ingredients checks the shape of every element before its fields. Messages
// carry the failing index. The returned slice is only meaningful when ok.
func (v *VariantValidator) Ingredients(a RawArray) ([]Ingredient, bool) {
	if !ValidArray(&v.Errors, "variant.ingredients", a) {
		return nil, false
	}
	out := make([]Ingredient, 0, len(a.Items))
	ok := true
	for i, raw := range a.Items {
		label := fmt.Sprintf("variant.ingredients[%d]", i)
		ing, good := v.ingredient(label, raw)
		if !good {
			ok = false
			continue
		}
		out = append(out, ing)
	}
	return out, ok
}

func (v *VariantValidator) ingredient(label string, raw json.RawMessage) (Ingredient, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		v.Push(IngredientInvalid, label+" must be an object")
		return Ingredient{}, false
	}
	var missing []string
	for _, k := range ingredientKeys {
		if _, ok := fields[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		v.Push(IngredientInvalid, label+" is missing "+strings.Join(missing, ", "))
		return Ingredient{}, false
	}

	var name, unit, section Text
	var quantity, order Number
	_ = name.UnmarshalJSON(fields["name"])
	_ = quantity.UnmarshalJSON(fields["quantity"])
	_ = unit.UnmarshalJSON(fields["unit"])
	_ = section.UnmarshalJSON(fields["section"])
	_ = order.UnmarshalJSON(fields["order"])

	ok := ValidAlphanumeric(&v.Errors, label+".name", name, IngredientName)
	ok = ValidQuantity(&v.Errors, label+".quantity", quantity) && ok
	ok = ValidText(&v.Errors, label+".unit", unit, unitBounds, UnitMissing, UnitInvalid) && ok
	ok = ValidText(&v.Errors, label+".section", section, sectionBounds, SectionMissing, SectionInvalid) && ok
	ok = ValidOrder(&v.Errors, label+".order", order) && ok
	if !ok {
		return Ingredient{}, false
	}
	pos, _ := order.Int()
	if pos > math.MaxInt32 {
		v.Push(OrderInvalid, label+".order is too large")
		return Ingredient{}, false
	}
	return Ingredient{
		Name:     name.Value,
		Quantity: quantity.Value,
		Unit:     strings.TrimSpace(unit.Value),
		Section:  strings.TrimSpace(section.Value),
		Order:    int(pos),
	}, true
}

// ==================== ConversionType / Size / Conversion ====================

type ConversionTypeValidator struct{ Errors }

func (v *ConversionTypeValidator) Name(t Text) bool {
	return ValidAlpha(&v.Errors, "conversionType.name", t, ConversionTypeName)
}

type SizeValidator struct{ Errors }

func (v *SizeValidator) Name(t Text) bool {
	return ValidAlphanumeric(&v.Errors, "size.name", t, SizeName)
}

type ConversionValidator struct{ Errors }

func (v *ConversionValidator) FromSize(n Number) bool {
	return ValidID(&v.Errors, "conversion.fromSize", n)
}

func (v *ConversionValidator) ToSize(n Number) bool {
	return ValidID(&v.Errors, "conversion.toSize", n)
}

func (v *ConversionValidator) Multiplicator(n Number) bool {
	return ValidMultiplicator(&v.Errors, "conversion.multiplicator", n)
}

// ==================== ScheduledItem ====================

type ScheduleItemValidator struct{ Errors }

func (v *ScheduleItemValidator) Day(n Number) bool {
	return ValidDay(&v.Errors, "schedule.day", n)
}

func (v *ScheduleItemValidator) Variant(n Number) bool {
	return ValidID(&v.Errors, "schedule.variant", n)
}

func (v *ScheduleItemValidator) Size(n Number) bool {
	return ValidID(&v.Errors, "schedule.size", n)
}

func (v *ScheduleItemValidator) Quantity(n Number) bool {
	return ValidQuantity(&v.Errors, "schedule.quantity", n)
}
