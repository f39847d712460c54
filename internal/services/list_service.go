package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yukikurage/list-task-api/internal/logging"
	"github.com/yukikurage/list-task-api/internal/models"
	"github.com/yukikurage/list-task-api/internal/repository"
)

var (
	ErrListNotFound = errors.New("list not found")
	// ErrCascadeFailed means the tasks of a list could not be removed; the list is untouched.
	ErrCascadeFailed = errors.New("failed to delete tasks of list")
	// ErrListDeleteIncomplete means the tasks were removed but the list itself was not.
	ErrListDeleteIncomplete = errors.New("tasks deleted but list deletion failed")
)

// ListService provides business logic for list operations.
type ListService struct {
	lists repository.Collection[models.List]
	tasks repository.Collection[models.Task]
}

// NewListService creates a new ListService.
func NewListService(store *repository.Store) *ListService {
	return &ListService{
		lists: store.Lists,
		tasks: store.Tasks,
	}
}

// CreateListInput represents parameters to create a new list.
type CreateListInput struct {
	Name    string
	Creator string
	Shared  bool
}

// CreateList stores a new list. The creator is not checked against the
// registered users.
func (s *ListService) CreateList(ctx context.Context, input CreateListInput) (*models.List, error) {
	if err := requireFields(
		field{models.ColumnName, input.Name},
		field{models.ColumnCreator, input.Creator},
	); err != nil {
		return nil, err
	}

	list := &models.List{
		Name:    input.Name,
		Creator: input.Creator,
		Shared:  input.Shared,
	}
	if err := s.lists.Insert(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	return list, nil
}

// ListLists returns every list.
func (s *ListService) ListLists(ctx context.Context) ([]models.List, error) {
	lists, err := repository.Collect(s.lists.FindMany(ctx, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to list lists: %w", err)
	}
	return lists, nil
}

// DeleteList removes the list named name owned by username and all of its
// tasks. Tasks go first, then the list, as two separate store calls: a task
// created for the list between them is orphaned, and a failure of the second
// call leaves an empty list behind. Neither case is compensated.
func (s *ListService) DeleteList(ctx context.Context, username, name string) error {
	list, err := s.lists.FindOne(ctx, repository.Filter{
		models.ColumnName:    name,
		models.ColumnCreator: username,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrListNotFound
		}
		return fmt.Errorf("failed to find list: %w", err)
	}

	log := logging.FromContext(ctx).With(
		slog.String("list_id", list.ID),
		slog.String("list_name", list.Name),
		slog.String("creator", list.Creator),
	)

	deleted, err := s.tasks.DeleteMany(ctx, repository.Filter{models.ColumnList: list.ID})
	if err != nil {
		log.ErrorContext(ctx, "cascade delete of tasks failed", slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrCascadeFailed, err)
	}

	if _, err := s.lists.DeleteOne(ctx, repository.Filter{models.ColumnID: list.ID}); err != nil {
		log.ErrorContext(ctx, "list left without tasks after failed delete",
			slog.Int64("tasks_deleted", deleted),
			slog.Any("error", err),
		)
		return fmt.Errorf("%w: %w", ErrListDeleteIncomplete, err)
	}

	log.InfoContext(ctx, "list deleted", slog.Int64("tasks_deleted", deleted))
	return nil
}
