package repository

import (
	"context"
	"errors"

	"github.com/Zayd-McArdle/MasjidApp/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Coordinator sequences one logical read or write across the fast and durable
// tiers of a feature. It holds both tiers but owns neither, and keeps no
// state between calls.
type Coordinator[R any] struct {
	feature string
	fast    R
	durable R
	logger  *zap.Logger
}

// NewCoordinator creates a coordinator for feature. A nil logger discards
// diagnostics.
func NewCoordinator[R any](feature string, fast, durable R, logger *zap.Logger) *Coordinator[R] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator[R]{
		feature: feature,
		fast:    fast,
		durable: durable,
		logger:  logger.With(zap.String("feature", feature)),
	}
}

func (c *Coordinator[R]) Feature() string { return c.feature }

func (c *Coordinator[R]) Fast() R { return c.fast }

func (c *Coordinator[R]) Durable() R { return c.durable }

// Read calls the fast tier and returns its result on success. On any fast
// error the durable tier is called with the same arguments and its result is
// returned unchanged.
func Read[R, T any](ctx context.Context, c *Coordinator[R], op Operation, call func(context.Context, R) (T, error)) (T, error) {
	value, err := call(ctx, c.fast)
	if err == nil {
		tierReadsTotal.WithLabelValues(c.feature, string(op), TierFast.String()).Inc()
		return value, nil
	}

	tierFallbacksTotal.WithLabelValues(c.feature, string(op), KindOf(err)).Inc()
	c.logFast(ctx, "fast tier read failed, falling back to durable tier", op, err)

	value, err = call(ctx, c.durable)
	tierReadsTotal.WithLabelValues(c.feature, string(op), TierDurable.String()).Inc()
	return value, err
}

// ReadMany is Read for collections. An empty collection from either tier is
// reported as ErrNotFound, so an empty fast tier also falls through.
func ReadMany[R, T any](ctx context.Context, c *Coordinator[R], op Operation, call func(context.Context, R) ([]T, error)) ([]T, error) {
	return Read(ctx, c, op, func(ctx context.Context, tier R) ([]T, error) {
		items, err := call(ctx, tier)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, ErrNotFound
		}
		return items, nil
	})
}

// WriteValue attempts the write on the fast tier, ignoring failure, then
// performs it on the durable tier exactly once and returns that result.
func WriteValue[R, T any](ctx context.Context, c *Coordinator[R], op Operation, call func(context.Context, R) (T, error)) (T, error) {
	if _, err := call(ctx, c.fast); err != nil {
		tierWriteFailuresTotal.WithLabelValues(c.feature, string(op), KindOf(err)).Inc()
		c.logFast(ctx, "fast tier write failed, continuing with durable tier", op, err)
	}
	return call(ctx, c.durable)
}

// Write is WriteValue for operations that only report an error.
func Write[R any](ctx context.Context, c *Coordinator[R], op Operation, call func(context.Context, R) error) error {
	_, err := WriteValue(ctx, c, op, func(ctx context.Context, tier R) (struct{}, error) {
		return struct{}{}, call(ctx, tier)
	})
	return err
}

// logFast records an absorbed fast tier error. Cache misses and a fast tier
// that is not configured are routine and go to debug.
func (c *Coordinator[R]) logFast(ctx context.Context, msg string, op Operation, err error) {
	level := zapcore.WarnLevel
	if IsNotFound(err) || errors.Is(err, ErrNotImplemented) {
		level = zapcore.DebugLevel
	}
	if ce := utils.LoggerFromContext(ctx, c.logger).Check(level, msg); ce != nil {
		ce.Write(zap.String("operation", string(op)), zap.Error(err))
	}
}
