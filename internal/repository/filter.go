package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"bakery_planner_v1/internal/validator"
	"bakery_planner_v1/pkg/logger"
	"bakery_planner_v1/pkg/utils"
)

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// ==================== Edges ====================

// Edge describes how a listed row reaches its related rows: either through a
// join table (Table, Owner, Other) or through a foreign-key column on the row
// itself (Column).
type Edge struct {
	Table  string
	Owner  string
	Other  string
	Column string
}

var (
	RecipeBranchEdge   = Edge{Table: "recipe_branches", Owner: "recipe_id", Other: "branch_id"}
	RecipeCategoryEdge = Edge{Table: "recipe_categories", Owner: "recipe_id", Other: "category_id"}
	BranchRecipeEdge   = Edge{Table: "recipe_branches", Owner: "branch_id", Other: "recipe_id"}
	CategoryRecipeEdge = Edge{Table: "recipe_categories", Owner: "category_id", Other: "recipe_id"}
	VariantSizeEdge    = Edge{Column: "size_id"}
)

// ==================== Relation filter ====================

// RelationFilter is one include/exclude/none group. Groups are ANDed together;
// the alternatives inside a group are ORed in a single bracket.
//
//	exclude:        NOT EXISTS(link IN exclude)        rows without links still match
//	include, none:  (EXISTS(link IN include) OR NOT EXISTS(any link))
type RelationFilter struct {
	Include []int64
	Exclude []int64
	None    bool
}

// NewRelationFilter keeps only the lists that parse as ids. A malformed list
// drops that part of the filter, not the request.
func NewRelationFilter(ctx context.Context, label string, include, exclude validator.IDList, none string) RelationFilter {
	var f RelationFilter
	var e validator.Errors
	if include.Present {
		if validator.ValidNumberArray(&e, label, include) {
			f.Include = include.Unique()
		}
	}
	if exclude.Present {
		if validator.ValidNumberArray(&e, label+"Exclude", exclude) {
			f.Exclude = exclude.Unique()
		}
	}
	f.None, _ = strconv.ParseBool(strings.TrimSpace(none))

	for _, d := range e.All() {
		logger.Ctx(ctx).Debug().Str("code", d.Code).Str("filter", label).Msg("skipping relation filter: " + d.Message)
	}
	return f
}

func (f RelationFilter) IsZero() bool {
	return len(f.Include) == 0 && len(f.Exclude) == 0 && !f.None
}

// Scope applies the group to a query on table over edge e.
func (f RelationFilter) Scope(table string, e Edge) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.IsZero() {
			return db
		}
		if e.Table == "" {
			return f.columnScope(db, table+"."+e.Column)
		}

		anyLink := fmt.Sprintf("SELECT 1 FROM %s l WHERE l.%s = %s.id", e.Table, e.Owner, table)
		inLink := anyLink + " AND l." + e.Other + " IN ?"

		switch {
		case len(f.Exclude) > 0:
			return db.Where("NOT EXISTS ("+inLink+")", f.Exclude)
		case len(f.Include) > 0 && f.None:
			return db.Where("(EXISTS ("+inLink+") OR NOT EXISTS ("+anyLink+"))", f.Include)
		case len(f.Include) > 0:
			return db.Where("EXISTS ("+inLink+")", f.Include)
		default:
			return db.Where("NOT EXISTS (" + anyLink + ")")
		}
	}
}

func (f RelationFilter) columnScope(db *gorm.DB, col string) *gorm.DB {
	switch {
	case len(f.Exclude) > 0:
		return db.Where("("+col+" NOT IN ? OR "+col+" IS NULL)", f.Exclude)
	case len(f.Include) > 0 && f.None:
		return db.Where("("+col+" IN ? OR "+col+" IS NULL)", f.Include)
	case len(f.Include) > 0:
		return db.Where(col+" IN ?", f.Include)
	default:
		return db.Where(col + " IS NULL")
	}
}

// ==================== Name / slug ====================

var querySpaces = strings.NewReplacer("%20", " ", "+", " ")

// NameFilter turns ?name= into a lowercase LIKE needle. check is the resource's
// name validator; a value it rejects is skipped.
func NameFilter(ctx context.Context, label, raw string, check func(*validator.Errors, string, validator.Text, validator.Bounds) bool, b validator.Bounds) string {
	if raw == "" {
		return ""
	}
	name := querySpaces.Replace(raw)
	var e validator.Errors
	if !check(&e, label, validator.TextOf(name), b) {
		if d, ok := e.First(); ok {
			logger.Ctx(ctx).Debug().Str("code", d.Code).Str("filter", label).Msg("skipping name filter")
		}
		return ""
	}
	return strings.ToLower(name)
}

func nameScope(table, needle string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if needle == "" {
			return db
		}
		return db.Where("LOWER("+table+".name) LIKE ?", "%"+needle+"%")
	}
}

// SlugFilter normalises ?slug= with the same function used on write. nil
// means no filter; input that normalises to "" matches nothing.
func SlugFilter(raw string) *string {
	if raw == "" {
		return nil
	}
	slug := utils.Slugify(raw)
	return &slug
}

func slugScope(table string, slug *string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if slug == nil {
			return db
		}
		if *slug == "" {
			return db.Where("1 = 0")
		}
		return db.Where(table+".slug = ?", *slug)
	}
}

// ==================== Paging ====================

// Page is limit/offset paging. Listings are ordered by id.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) scope(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		limit := p.Limit
		if limit <= 0 {
			limit = DefaultLimit
		}
		if limit > MaxLimit {
			limit = MaxLimit
		}
		offset := p.Offset
		if offset < 0 {
			offset = 0
		}
		return db.Order(table + ".id ASC").Limit(limit).Offset(offset)
	}
}
