package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/list-task-api/internal/models"
	"github.com/yukikurage/list-task-api/internal/repository"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrTaskIDTaken   = errors.New("taskId already exists")
	ErrInvalidTaskID = errors.New("invalid task ID")
)

// TaskService handles task business logic
type TaskService struct {
	lists repository.Collection[models.List]
	tasks repository.Collection[models.Task]
}

// NewTaskService creates a new TaskService
func NewTaskService(store *repository.Store) *TaskService {
	return &TaskService{
		lists: store.Lists,
		tasks: store.Tasks,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Name     string
	ListName string
	Done     bool
	TaskID   string
}

// CreateTask adds a task to the list named input.ListName
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if err := requireFields(
		field{models.ColumnName, input.Name},
		field{models.ColumnList, input.ListName},
		field{"taskId", input.TaskID},
	); err != nil {
		return nil, err
	}

	list, err := s.findListByName(ctx, input.ListName)
	if err != nil {
		return nil, err
	}

	_, err = s.tasks.FindOne(ctx, repository.Filter{models.ColumnTaskID: input.TaskID})
	if err == nil {
		return nil, ErrTaskIDTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check taskId: %w", err)
	}

	task := &models.Task{
		Name:   input.Name,
		ListID: list.ID,
		Done:   input.Done,
		TaskID: input.TaskID,
	}
	if err := s.tasks.Insert(ctx, task); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrTaskIDTaken
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTaskDone sets done on the task identified by taskID. When no task
// matches it returns (nil, nil) rather than an error.
func (s *TaskService) UpdateTaskDone(ctx context.Context, taskID string, done bool) (*models.Task, error) {
	if err := requireFields(field{"taskId", taskID}); err != nil {
		return nil, err
	}

	task, err := s.tasks.Update(ctx,
		repository.Filter{models.ColumnTaskID: taskID},
		repository.Patch{models.ColumnDone: done},
	)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes a task by its store ID
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	id, ok := repository.CanonicalID(id)
	if !ok {
		return ErrInvalidTaskID
	}

	deleted, err := s.tasks.DeleteOne(ctx, repository.Filter{models.ColumnID: id})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if deleted == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// ListTasksForList returns every task of the list named listName
func (s *TaskService) ListTasksForList(ctx context.Context, listName string) ([]models.Task, error) {
	list, err := s.findListByName(ctx, listName)
	if err != nil {
		return nil, err
	}

	tasks, err := repository.Collect(s.tasks.FindMany(ctx, repository.Filter{models.ColumnList: list.ID}))
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// findListByName resolves a list by name alone; with several lists of the
// same name the first one found wins.
func (s *TaskService) findListByName(ctx context.Context, name string) (*models.List, error) {
	list, err := s.lists.FindOne(ctx, repository.Filter{models.ColumnName: name})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("failed to find list: %w", err)
	}
	return list, nil
}
