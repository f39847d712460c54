package services

import (
	"context"
	"errors"
	"iter"

	"github.com/yukikurage/list-task-api/internal/repository"
)

var errStoreDown = errors.New("store unavailable")

// faultyCollection fails the configured operations and delegates the rest.
type faultyCollection[T any] struct {
	repository.Collection[T]
	failInsert     bool
	failFindOne    bool
	failFindMany   bool
	failDeleteOne  bool
	failDeleteMany bool
}

func (c *faultyCollection[T]) Insert(ctx context.Context, rec *T) error {
	if c.failInsert {
		return errStoreDown
	}
	return c.Collection.Insert(ctx, rec)
}

func (c *faultyCollection[T]) FindOne(ctx context.Context, filter repository.Filter) (*T, error) {
	if c.failFindOne {
		return nil, errStoreDown
	}
	return c.Collection.FindOne(ctx, filter)
}

func (c *faultyCollection[T]) FindMany(ctx context.Context, filter repository.Filter) iter.Seq2[*T, error] {
	if c.failFindMany {
		return func(yield func(*T, error) bool) { yield(nil, errStoreDown) }
	}
	return c.Collection.FindMany(ctx, filter)
}

func (c *faultyCollection[T]) DeleteOne(ctx context.Context, filter repository.Filter) (int64, error) {
	if c.failDeleteOne {
		return 0, errStoreDown
	}
	return c.Collection.DeleteOne(ctx, filter)
}

func (c *faultyCollection[T]) DeleteMany(ctx context.Context, filter repository.Filter) (int64, error) {
	if c.failDeleteMany {
		return 0, errStoreDown
	}
	return c.Collection.DeleteMany(ctx, filter)
}
