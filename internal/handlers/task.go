package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/list-task-api/internal/dto"
	apierrors "github.com/yukikurage/list-task-api/internal/errors"
	"github.com/yukikurage/list-task-api/internal/services"
)

type TaskHandler struct {
	taskService       *services.TaskService
	suggestionService *services.SuggestionService
}

func NewTaskHandler(taskService *services.TaskService, suggestionService *services.SuggestionService) *TaskHandler {
	return &TaskHandler{
		taskService:       taskService,
		suggestionService: suggestionService,
	}
}

// CreateTask adds a task to the list named in the body
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Name   string `json:"name" form:"name" binding:"required"`
		List   string `json:"list" form:"list" binding:"required"`
		Done   *bool  `json:"done" form:"done" binding:"required"`
		TaskID string `json:"taskId" form:"taskId" binding:"required"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	_, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		Name:     req.Name,
		ListName: req.List,
		Done:     *req.Done,
		TaskID:   req.TaskID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task created successfully"})
}

// UpdateTask sets done on the task with the given taskId.
// An unknown taskId yields 200 with a null body.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	type UpdateTaskRequest struct {
		TaskID string `json:"taskId" form:"taskId" binding:"required"`
		Done   *bool  `json:"done" form:"done" binding:"required"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTaskDone(c.Request.Context(), req.TaskID, *req.Done)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	if task == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task by its store ID
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task deleted successfully"})
}

// GetTasksByList returns the tasks of the list named :list
func (h *TaskHandler) GetTasksByList(c *gin.Context) {
	tasks, err := h.taskService.ListTasksForList(c.Request.Context(), c.Param("list"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// SuggestTasks asks the AI service for task names for the list named :list
func (h *TaskHandler) SuggestTasks(c *gin.Context) {
	type SuggestTasksRequest struct {
		Text string `json:"text" form:"text" binding:"required"`
	}

	var req SuggestTasksRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	listName := c.Param("list")
	names, err := h.suggestionService.SuggestTasks(c.Request.Context(), listName, req.Text)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuggestionsResponse{List: listName, Suggestions: names})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingField),
		errors.Is(err, services.ErrSuggestionTextRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidTaskID):
		apierrors.BadRequest(c, "Invalid task ID")
	case errors.Is(err, services.ErrListNotFound):
		apierrors.NotFound(c, "List not found")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTaskIDTaken):
		apierrors.Conflict(c, "Task already exists")
	case errors.Is(err, services.ErrAIServiceNotConfigured),
		errors.Is(err, services.ErrAIServiceUnavailable):
		apierrors.ServiceUnavailable(c, err.Error())
	default:
		respondInternalError(c, err)
	}
}
