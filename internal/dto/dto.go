package dto

import "github.com/yukikurage/list-task-api/internal/models"

// MessageResponse is the body of every mutation that returns no record
type MessageResponse struct {
	Message string `json:"message"`
}

// ListDTO represents a list in API responses
type ListDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Creator string `json:"creator"`
	Shared  bool   `json:"shared"`
}

// TaskDTO represents a task in API responses. List is the owning list's ID.
type TaskDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	List   string `json:"list"`
	Done   bool   `json:"done"`
	TaskID string `json:"taskId"`
}

// SuggestionsResponse carries AI suggested task names
type SuggestionsResponse struct {
	List        string   `json:"list"`
	Suggestions []string `json:"suggestions"`
}

// ToListDTO converts a List model to ListDTO
func ToListDTO(list models.List) ListDTO {
	return ListDTO{
		ID:      list.ID,
		Name:    list.Name,
		Creator: list.Creator,
		Shared:  list.Shared,
	}
}

// ToListDTOs converts lists, returning an empty slice rather than nil
func ToListDTOs(lists []models.List) []ListDTO {
	out := make([]ListDTO, len(lists))
	for i, list := range lists {
		out[i] = ToListDTO(list)
	}
	return out
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:     task.ID,
		Name:   task.Name,
		List:   task.ListID,
		Done:   task.Done,
		TaskID: task.TaskID,
	}
}

// ToTaskDTOs converts tasks, returning an empty slice rather than nil
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		out[i] = ToTaskDTO(task)
	}
	return out
}
