package database

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bakery_planner_v1/pkg/config"
	"bakery_planner_v1/pkg/logger"
)

type parent struct {
	ID       int64
	Children []child `gorm:"constraint:OnDelete:CASCADE"`
}

type child struct {
	ID       int64
	ParentID int64
}

func TestOpen_SqliteEnforcesForeignKeys(t *testing.T) {
	db, err := Open(config.DBConfig{Driver: "sqlite", SQLitePath: ":memory:"}, logger.NewWithWriter(&bytes.Buffer{}, "error"), &parent{}, &child{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, db.Create(&parent{ID: 1, Children: []child{{ID: 1}, {ID: 2}}}).Error)
	assert.Error(t, db.Create(&child{ID: 3, ParentID: 99}).Error)

	require.NoError(t, db.Delete(&parent{}, 1).Error)
	var n int64
	require.NoError(t, db.Model(&child{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestOpen_SqliteLowerFoldsUmlauts(t *testing.T) {
	db, err := Open(config.DBConfig{Driver: "sqlite", SQLitePath: ":memory:"}, logger.NewWithWriter(&bytes.Buffer{}, "error"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	var got string
	require.NoError(t, db.Raw("SELECT LOWER(?)", "ÄPFELHOF").Scan(&got).Error)
	assert.Equal(t, "äpfelhof", got)
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	_, err := Open(config.DBConfig{Driver: "mysql"}, logger.NewWithWriter(&bytes.Buffer{}, "error"))
	assert.Error(t, err)
}

func TestGormLogger_PrefersRequestLogger(t *testing.T) {
	var base, req bytes.Buffer
	l := NewGormLogger(logger.NewWithWriter(&base, "debug"), time.Second)

	ctx := logger.Into(context.Background(), logger.NewWithWriter(&req, "debug"))
	l.Trace(ctx, time.Now(), func() (string, int64) { return "SELECT 1", 0 }, errors.New("boom"))
	assert.Contains(t, req.String(), "SELECT 1")
	assert.Empty(t, base.String())

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 2", 0 }, gorm.ErrRecordNotFound)
	assert.Empty(t, base.String())

	l.Trace(context.Background(), time.Now().Add(-2*time.Second), func() (string, int64) { return "SELECT 3", 1 }, nil)
	assert.Contains(t, base.String(), "slow query")
}
