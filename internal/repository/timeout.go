package repository

import (
	"context"
	"iter"
	"time"

	"github.com/yukikurage/list-task-api/internal/models"
)

// WithTimeout bounds every store call by d. A zero or negative d returns
// store unchanged.
func WithTimeout(store *Store, d time.Duration) *Store {
	if d <= 0 {
		return store
	}
	return &Store{
		Users: &timeoutCollection[models.User]{next: store.Users, timeout: d},
		Lists: &timeoutCollection[models.List]{next: store.Lists, timeout: d},
		Tasks: &timeoutCollection[models.Task]{next: store.Tasks, timeout: d},
	}
}

type timeoutCollection[T any] struct {
	next    Collection[T]
	timeout time.Duration
}

func (c *timeoutCollection[T]) Insert(ctx context.Context, rec *T) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.next.Insert(ctx, rec)
}

func (c *timeoutCollection[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.next.FindOne(ctx, filter)
}

// FindMany bounds the whole iteration, not each row.
func (c *timeoutCollection[T]) FindMany(ctx context.Context, filter Filter) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		ctx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()
		for rec, err := range c.next.FindMany(ctx, filter) {
			if !yield(rec, err) {
				return
			}
		}
	}
}

func (c *timeoutCollection[T]) Update(ctx context.Context, filter Filter, patch Patch) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.next.Update(ctx, filter, patch)
}

func (c *timeoutCollection[T]) DeleteOne(ctx context.Context, filter Filter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.next.DeleteOne(ctx, filter)
}

func (c *timeoutCollection[T]) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.next.DeleteMany(ctx, filter)
}
