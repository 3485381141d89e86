package database

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"bakery_planner_v1/pkg/logger"
)

// GormLogger forwards gorm's SQL trace to zerolog. The request logger stored
// in ctx wins over the base logger so SQL lines carry the request id.
type GormLogger struct {
	base          zerolog.Logger
	slowThreshold time.Duration
}

func NewGormLogger(base zerolog.Logger, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{base: base, slowThreshold: slowThreshold}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	nl := *l
	switch level {
	case gormlogger.Silent:
		nl.base = l.base.Level(zerolog.Disabled)
	case gormlogger.Error:
		nl.base = l.base.Level(zerolog.ErrorLevel)
	case gormlogger.Warn:
		nl.base = l.base.Level(zerolog.WarnLevel)
	}
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.from(ctx).Info().Msgf(msg, args...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.from(ctx).Warn().Msgf(msg, args...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.from(ctx).Error().Msgf(msg, args...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	log := l.from(ctx)
	elapsed := time.Since(begin)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		log.Debug().Err(err).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query failed")
	case l.slowThreshold > 0 && elapsed > l.slowThreshold:
		sql, rows := fc()
		log.Warn().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("slow query")
	case log.GetLevel() <= zerolog.TraceLevel:
		sql, rows := fc()
		log.Trace().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query")
	}
}

func (l *GormLogger) from(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if reqLog := logger.Ctx(ctx); reqLog.GetLevel() != zerolog.Disabled {
			return reqLog
		}
	}
	return &l.base
}
