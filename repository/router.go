package repository

import (
	"context"
	"errors"
	"fmt"
)

// Presence is a bitmask of which optional filters a request carries. Bit i
// is set when filter i is present, so k filters give 2^k combinations.
type Presence uint8

// PresenceOf builds a Presence from flags in filter order.
func PresenceOf(present ...bool) Presence {
	var p Presence
	for i, ok := range present {
		if ok {
			p |= 1 << i
		}
	}
	return p
}

// Query binds one filter combination to the operation that serves it. Run
// receives the whole filter and must only read the filters its combination
// marks as present.
type Query[R, F, T any] struct {
	Op  Operation
	Run func(ctx context.Context, tier R, filter F) ([]T, error)
}

// Router maps a filter onto exactly one specialized query and runs it
// through the coordinator. key returns the table slot for a filter; every
// slot holds a distinct operation.
type Router[R, F, T any] struct {
	coordinator *Coordinator[R]
	key         func(F) int
	table       []Query[R, F, T]
}

var errRouterTable = errors.New("invalid router table")

// NewRouter checks that every slot of table is bound and that no operation
// serves two slots.
func NewRouter[R, F, T any](c *Coordinator[R], key func(F) int, table []Query[R, F, T]) (*Router[R, F, T], error) {
	if c == nil || key == nil {
		return nil, fmt.Errorf("%w: coordinator and key func are required", errRouterTable)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: empty table", errRouterTable)
	}

	seen := make(map[Operation]int, len(table))
	for i, q := range table {
		if q.Op == "" || q.Run == nil {
			return nil, fmt.Errorf("%w: slot %d has no operation", errRouterTable, i)
		}
		if j, dup := seen[q.Op]; dup {
			return nil, fmt.Errorf("%w: %s bound to slots %d and %d", errRouterTable, q.Op, j, i)
		}
		seen[q.Op] = i
	}

	return &Router[R, F, T]{coordinator: c, key: key, table: table}, nil
}

// MustRouter is NewRouter for tables fixed at compile time.
func MustRouter[R, F, T any](c *Coordinator[R], key func(F) int, table []Query[R, F, T]) *Router[R, F, T] {
	r, err := NewRouter(c, key, table)
	if err != nil {
		panic(err)
	}
	return r
}

// Select returns the query that serves filter.
func (r *Router[R, F, T]) Select(filter F) (Query[R, F, T], error) {
	k := r.key(filter)
	if k < 0 || k >= len(r.table) {
		return Query[R, F, T]{}, fmt.Errorf("%w: key %d outside table of %d", errRouterTable, k, len(r.table))
	}
	return r.table[k], nil
}

// Route runs the query selected for filter as a coordinator read.
func (r *Router[R, F, T]) Route(ctx context.Context, filter F) ([]T, error) {
	q, err := r.Select(filter)
	if err != nil {
		return nil, err
	}
	return ReadMany(ctx, r.coordinator, q.Op, func(ctx context.Context, tier R) ([]T, error) {
		return q.Run(ctx, tier, filter)
	})
}
