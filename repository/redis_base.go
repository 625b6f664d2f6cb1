package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBase provides the fast tier's shared plumbing: key naming, CBOR
// values and prefix invalidation.
type RedisBase struct {
	Client  redis.UniversalClient
	Prefix  string
	Feature string
	TTL     time.Duration
}

func NewRedisBase(client redis.UniversalClient, prefix, feature string, ttl time.Duration) RedisBase {
	return RedisBase{Client: client, Prefix: prefix, Feature: feature, TTL: ttl}
}

// key joins the prefix, feature, operation and any arguments with ':'.
func (r RedisBase) key(op Operation, args ...string) string {
	var b strings.Builder
	b.WriteString(r.Prefix)
	b.WriteString(r.Feature)
	b.WriteByte(':')
	b.WriteString(string(op))
	for _, a := range args {
		b.WriteByte(':')
		b.WriteString(a)
	}
	return b.String()
}

// load reads key into v. A missing key is ErrNotFound.
func (r RedisBase) load(ctx context.Context, op Operation, key string, v any) error {
	data, err := r.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return opError(TierFast, op, ErrNotFound, nil)
	}
	if err != nil {
		return opError(TierFast, op, ErrUnavailable, err)
	}
	if err := decodeValue(data, v); err != nil {
		return opError(TierFast, op, ErrUnavailable, err)
	}
	return nil
}

// replace writes key and bumps the generation in one transaction.
func (r RedisBase) replace(ctx context.Context, op Operation, key string, v any) error {
	data, err := encodeValue(v)
	if err != nil {
		return opError(TierFast, op, ErrUnavailable, err)
	}
	_, err = r.Client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, key, data, r.TTL)
		p.Incr(ctx, r.generationKey())
		return nil
	})
	if err != nil {
		return opError(TierFast, op, ErrUnavailable, err)
	}
	return nil
}

func (r RedisBase) store(ctx context.Context, op Operation, key string, v any) error {
	data, err := encodeValue(v)
	if err != nil {
		return opError(TierFast, op, ErrUnavailable, err)
	}
	if err := r.Client.Set(ctx, key, data, r.TTL).Err(); err != nil {
		return opError(TierFast, op, ErrUnavailable, err)
	}
	return nil
}

// opGeneration labels errors from the generation counter.
const opGeneration Operation = "generation"

// generationKey sits outside the feature's key pattern so invalidation does
// not delete it.
func (r RedisBase) generationKey() string {
	return r.Prefix + r.Feature + ".generation"
}

// Generation returns how many times the feature's cached keys have been
// replaced or dropped.
func (r RedisBase) Generation(ctx context.Context) (int64, error) {
	n, err := r.Client.Get(ctx, r.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, opError(TierFast, opGeneration, ErrUnavailable, err)
	}
	return n, nil
}

// Invalidate drops every cached key of the feature.
func (r RedisBase) Invalidate(ctx context.Context) error {
	return r.invalidate(ctx, opGeneration)
}

// invalidate bumps the generation, then drops every cached key of the
// feature.
func (r RedisBase) invalidate(ctx context.Context, op Operation) error {
	if err := r.Client.Incr(ctx, r.generationKey()).Err(); err != nil {
		return opError(TierFast, op, ErrUnavailable, err)
	}
	pattern := r.Prefix + r.Feature + ":*"
	var keys []string
	iter := r.Client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return opError(TierFast, op, ErrUnavailable, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.Client.Del(ctx, keys...).Err(); err != nil {
		return opError(TierFast, op, ErrUnavailable, err)
	}
	return nil
}
