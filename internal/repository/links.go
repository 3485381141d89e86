package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// link inserts (owner, other) pairs into a join table. Existing pairs are
// left alone, so adding the same id twice never duplicates a link.
func link(ctx context.Context, db *gorm.DB, e Edge, owner int64, others []int64) error {
	if len(others) == 0 {
		return nil
	}
	rows := make([]map[string]interface{}, 0, len(others))
	for _, id := range others {
		rows = append(rows, map[string]interface{}{e.Owner: owner, e.Other: id})
	}
	return db.WithContext(ctx).Table(e.Table).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

// unlink removes the given pairs; ids that are not linked are ignored.
func unlink(ctx context.Context, db *gorm.DB, e Edge, owner int64, others []int64) error {
	if len(others) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Exec("DELETE FROM "+e.Table+" WHERE "+e.Owner+" = ? AND "+e.Other+" IN ?", owner, others).Error
}

// unlinkAll removes every link of owner.
func unlinkAll(ctx context.Context, db *gorm.DB, e Edge, owner int64) error {
	return db.WithContext(ctx).
		Exec("DELETE FROM "+e.Table+" WHERE "+e.Owner+" = ?", owner).Error
}

// missingIDs returns the ids among ids that have no row in table.
func missingIDs(ctx context.Context, db *gorm.DB, table string, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []int64
	if err := db.WithContext(ctx).Table(table).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	have := make(map[int64]struct{}, len(found))
	for _, id := range found {
		have[id] = struct{}{}
	}
	var missing []int64
	for _, id := range ids {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// deleteResult reports a delete that matched no row as not found.
func deleteResult(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
