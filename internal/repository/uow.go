package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repositories groups every repository bound to one *gorm.DB, either the pool
// or an open transaction.
type Repositories struct {
	Branches        BranchRepository
	Categories      CategoryRepository
	Recipes         RecipeRepository
	Variants        VariantRepository
	ConversionTypes ConversionTypeRepository
	Sizes           SizeRepository
	Conversions     ConversionRepository
	Schedule        ScheduleRepository
}

func newRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Branches:        NewBranchRepository(db),
		Categories:      NewCategoryRepository(db),
		Recipes:         NewRecipeRepository(db),
		Variants:        NewVariantRepository(db),
		ConversionTypes: NewConversionTypeRepository(db),
		Sizes:           NewSizeRepository(db),
		Conversions:     NewConversionRepository(db),
		Schedule:        NewScheduleRepository(db),
	}
}

// ==================== Unit of work ====================

// UnitOfWork hands out pool-bound repositories for reads and transactions for
// multi-statement writes.
type UnitOfWork struct {
	db *gorm.DB
	Repositories
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db, Repositories: newRepositories(db)}
}

// Begin opens a transaction. Callers defer Rollback right away and Commit on
// success:
//
//	tx, err := uow.Begin(ctx)
//	if err != nil { ... }
//	defer tx.Rollback()
//	... tx.Recipes.UpdateFields(...)
//	return tx.Commit()
//
// While a Tx is open only its own repositories may be used; sqlite runs on a
// single connection and the pool-bound ones would block.
func (u *UnitOfWork) Begin(ctx context.Context) (*Tx, error) {
	db := u.db.WithContext(ctx).Begin()
	if db.Error != nil {
		return nil, db.Error
	}
	return &Tx{db: db, Repositories: newRepositories(db)}, nil
}

// Ping checks that the store answers.
func (u *UnitOfWork) Ping(ctx context.Context) error {
	sqlDB, err := u.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

var ErrTxDone = errors.New("transaction already finished")

// Tx is a scoped transaction handle.
type Tx struct {
	db   *gorm.DB
	done bool
	Repositories
}

func (t *Tx) Commit() error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	return t.db.Commit().Error
}

// Rollback is a no-op once the transaction was committed or rolled back.
func (t *Tx) Rollback() {
	if t.done {
		return
	}
	t.done = true
	t.db.Rollback()
}
