package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func asError(t *testing.T, err error) *Error {
	t.Helper()
	var e *Error
	require.True(t, errors.As(err, &e), "expected *errs.Error, got %T", err)
	return e
}

func TestValidation_FirstDetailIsHeadline(t *testing.T) {
	e := Validation([]Detail{
		{Code: "NAME_MISSING", Message: "branch.name is missing"},
		{Code: "ID_INVALID", Message: "branch.recipe_ids.add is invalid"},
	})
	assert.Equal(t, http.StatusBadRequest, e.Status)
	assert.Equal(t, "NAME_MISSING", e.Code)
	assert.Len(t, e.Details, 2)
}

func TestFromStore_PassThroughAndNil(t *testing.T) {
	assert.Nil(t, FromStore(nil))

	orig := ForeignKey("SIZE_NOT_FOUND", "size not found")
	assert.Same(t, orig, asError(t, FromStore(fmt.Errorf("wrapped: %w", orig))))
}

func TestFromStore_RecordNotFound(t *testing.T) {
	e := asError(t, FromStore(gorm.ErrRecordNotFound))
	assert.Equal(t, http.StatusNotFound, e.Status)
	assert.True(t, IsNotFound(gorm.ErrRecordNotFound))
	assert.True(t, IsNotFound(e))
}

func TestFromStore_Postgres(t *testing.T) {
	e := asError(t, FromStore(&pgconn.PgError{Code: "23505", ConstraintName: "uq_branch_slug"}))
	assert.Equal(t, http.StatusConflict, e.Status)
	assert.Equal(t, TypeConstraint, e.Type)
	assert.Equal(t, "UQ_BRANCH_SLUG", e.Code)

	e = asError(t, FromStore(&pgconn.PgError{Code: "23503", ConstraintName: "fk_variants_size"}))
	assert.Equal(t, "FK_VARIANTS_SIZE", e.Code)

	e = asError(t, FromStore(&pgconn.PgError{Code: "23505"}))
	assert.Equal(t, "UNIQUE_VIOLATION", e.Code)

	e = asError(t, FromStore(&pgconn.PgError{Code: "42P01"}))
	assert.Equal(t, http.StatusInternalServerError, e.Status)
}

func TestSqliteConstraintCode(t *testing.T) {
	assert.Equal(t, "UQ_BRANCHES_SLUG", sqliteConstraintCode("UNIQUE constraint failed: branches.slug", "UQ_", "X"))
	assert.Equal(t, "UQ_SIZES_CONVERSION_TYPE_ID_SIZES_NAME",
		sqliteConstraintCode("UNIQUE constraint failed: sizes.conversion_type_id, sizes.name", "UQ_", "X"))
	assert.Equal(t, "CHK_SCHEDULED_ITEM_DAY", sqliteConstraintCode("CHECK constraint failed: chk_scheduled_item_day", "", "X"))
	assert.Equal(t, "X", sqliteConstraintCode("something else", "", "X"))
}

func TestFromStore_SqliteForeignKey(t *testing.T) {
	err := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}
	e := asError(t, FromStore(err))
	assert.Equal(t, "FOREIGN_KEY_VIOLATION", e.Code)
	assert.Equal(t, http.StatusConflict, e.Status)
}

func TestFromStore_Unknown(t *testing.T) {
	e := asError(t, FromStore(errors.New("connection reset")))
	assert.Equal(t, TypeInternal, e.Type)
	assert.Equal(t, "internal server error", e.Message)
}

func TestTooManyRequests_KeepsCause(t *testing.T) {
	cause := errors.New("cooling down")
	e := TooManyRequests("TASK_COOLING_DOWN", "retry later", cause)
	assert.Equal(t, http.StatusTooManyRequests, e.Status)
	assert.Equal(t, TypeRateLimit, e.Type)
	assert.ErrorIs(t, e, cause)
}
