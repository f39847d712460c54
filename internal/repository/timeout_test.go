package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/list-task-api/internal/models"
)

type blockingCollection struct {
	Collection[models.List]
}

func (blockingCollection) FindOne(ctx context.Context, _ Filter) (*models.List, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestWithTimeout(t *testing.T) {
	base := NewMemoryStore()
	assert.Same(t, base, WithTimeout(base, 0))

	base.Lists = blockingCollection{Collection: base.Lists}
	store := WithTimeout(base, 10*time.Millisecond)

	_, err := store.Lists.FindOne(context.Background(), Filter{models.ColumnName: "Groceries"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
