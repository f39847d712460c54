package repository

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"github.com/yukikurage/list-task-api/internal/models"
)

// MemoryCollection keeps records in process memory. Records are returned as
// copies so callers never alias stored state.
type MemoryCollection[T any, PT recordPtr[T]] struct {
	mu      sync.RWMutex
	records []*T
	unique  []string
}

// NewMemoryStore creates a Store that lives entirely in memory, with the
// same unique columns the database backends index.
func NewMemoryStore() *Store {
	return &Store{
		Users: NewMemoryCollection[models.User](models.ColumnUsername),
		Lists: NewMemoryCollection[models.List](),
		Tasks: NewMemoryCollection[models.Task](models.ColumnTaskID),
	}
}

// NewMemoryCollection creates an empty collection enforcing uniqueness on
// the given columns.
func NewMemoryCollection[T any, PT recordPtr[T]](unique ...string) *MemoryCollection[T, PT] {
	return &MemoryCollection[T, PT]{unique: unique}
}

func (c *MemoryCollection[T, PT]) Insert(ctx context.Context, rec *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	candidate := PT(rec)
	for _, column := range c.unique {
		value, _ := candidate.Column(column)
		for _, stored := range c.records {
			if existing, _ := PT(stored).Column(column); existing == value {
				return fmt.Errorf("%w: %s %v", ErrDuplicateKey, column, value)
			}
		}
	}

	candidate.SetID(NewID())
	stored := *rec
	c.records = append(c.records, &stored)
	return nil
}

func (c *MemoryCollection[T, PT]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(filter); i >= 0 {
		found := *c.records[i]
		return &found, nil
	}
	return nil, ErrNotFound
}

// FindMany yields from a snapshot taken when iteration starts.
func (c *MemoryCollection[T, PT]) FindMany(ctx context.Context, filter Filter) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		if err := ctx.Err(); err != nil {
			yield(nil, err)
			return
		}

		c.mu.RLock()
		snapshot := make([]T, 0, len(c.records))
		for _, rec := range c.records {
			if matches(PT(rec), filter) {
				snapshot = append(snapshot, *rec)
			}
		}
		c.mu.RUnlock()

		for i := range snapshot {
			if !yield(&snapshot[i], nil) {
				return
			}
		}
	}
}

func (c *MemoryCollection[T, PT]) Update(ctx context.Context, filter Filter, patch Patch) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(filter)
	if i < 0 {
		return nil, ErrNotFound
	}

	// Patch a copy first so a rejected column leaves the record untouched.
	patched := *c.records[i]
	for column, value := range patch {
		if err := PT(&patched).SetColumn(column, value); err != nil {
			return nil, err
		}
	}
	*c.records[i] = patched

	out := patched
	return &out, nil
}

func (c *MemoryCollection[T, PT]) DeleteOne(ctx context.Context, filter Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(filter)
	if i < 0 {
		return 0, nil
	}
	c.records = append(c.records[:i], c.records[i+1:]...)
	return 1, nil
}

func (c *MemoryCollection[T, PT]) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.records[:0]
	var deleted int64
	for _, rec := range c.records {
		if matches(PT(rec), filter) {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	clear(c.records[len(kept):])
	c.records = kept
	return deleted, nil
}

// indexOf must be called with mu held.
func (c *MemoryCollection[T, PT]) indexOf(filter Filter) int {
	for i, rec := range c.records {
		if matches(PT(rec), filter) {
			return i
		}
	}
	return -1
}

func matches(rec Record, filter Filter) bool {
	for column, want := range filter {
		got, ok := rec.Column(column)
		if !ok || got != want {
			return false
		}
	}
	return true
}
