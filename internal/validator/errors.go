package validator

import "bakery_planner_v1/internal/errs"

// Error codes reported by the primitives.
const (
	IDMissing            = "ID_MISSING"
	IDInvalid            = "ID_INVALID"
	NameMissing          = "NAME_MISSING"
	NameInvalid          = "NAME_INVALID"
	NameInvalidLength    = "NAME_INVALID_LENGTH"
	DescriptionMissing   = "DESCRIPTION_MISSING"
	DescriptionInvalid   = "DESCRIPTION_INVALID"
	ArrayInvalid         = "ARRAY_INVALID"
	QuantityMissing      = "QUANTITY_MISSING"
	QuantityInvalid      = "QUANTITY_INVALID"
	MultiplicatorMissing = "MULTIPLICATOR_MISSING"
	MultiplicatorInvalid = "MULTIPLICATOR_INVALID"
	DayMissing           = "DAY_MISSING"
	DayInvalid           = "DAY_INVALID"
	UnitMissing          = "UNIT_MISSING"
	UnitInvalid          = "UNIT_INVALID"
	SectionMissing       = "SECTION_MISSING"
	SectionInvalid       = "SECTION_INVALID"
	OrderMissing         = "ORDER_MISSING"
	OrderInvalid         = "ORDER_INVALID"
	IngredientInvalid    = "INGREDIENT_INVALID"
	RelationOverlap      = "RELATION_OVERLAP"
	BodyEmpty            = "BODY_EMPTY"
)

// Errors accumulates every violation found while checking one request.
// The zero value is ready to use.
type Errors struct {
	list []errs.Detail
}

func (e *Errors) Push(code, message string) {
	e.list = append(e.list, errs.Detail{Code: code, Message: message})
}

// All returns the accumulated errors in the order they were pushed.
func (e *Errors) All() []errs.Detail { return e.list }

func (e *Errors) First() (errs.Detail, bool) {
	if len(e.list) == 0 {
		return errs.Detail{}, false
	}
	return e.list[0], true
}

func (e *Errors) Ok() bool { return len(e.list) == 0 }

// Err converts the accumulated errors into a validation error, or nil.
func (e *Errors) Err() error {
	if e.Ok() {
		return nil
	}
	return errs.Validation(e.list)
}
