package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormZerolog routes gorm's logging through the global zerolog logger.
type gormZerolog struct {
	level gormlogger.LogLevel
}

func newGormLogger() gormlogger.Interface {
	return &gormZerolog{level: gormlogger.Warn}
}

func (l *gormZerolog) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *gormZerolog) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		log.Ctx(ctx).Info().Msg(fmt.Sprintf(msg, data...))
	}
}

func (l *gormZerolog) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		log.Ctx(ctx).Warn().Msg(fmt.Sprintf(msg, data...))
	}
}

func (l *gormZerolog) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		log.Ctx(ctx).Error().Msg(fmt.Sprintf(msg, data...))
	}
}

func (l *gormZerolog) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level == gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	var ev *zerolog.Event
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		ev = log.Ctx(ctx).Error().Err(err)
	case elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		ev = log.Ctx(ctx).Warn().Bool("slow", true)
	case l.level >= gormlogger.Info:
		ev = log.Ctx(ctx).Debug()
	default:
		return
	}
	sql, rows := fc()
	ev.Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("gorm")
}
