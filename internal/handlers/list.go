package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/list-task-api/internal/dto"
	apierrors "github.com/yukikurage/list-task-api/internal/errors"
	"github.com/yukikurage/list-task-api/internal/services"
)

type ListHandler struct {
	listService *services.ListService
}

func NewListHandler(listService *services.ListService) *ListHandler {
	return &ListHandler{
		listService: listService,
	}
}

// CreateList creates a list owned by the given creator
func (h *ListHandler) CreateList(c *gin.Context) {
	type CreateListRequest struct {
		Name    string `json:"name" form:"name" binding:"required"`
		Creator string `json:"creator" form:"creator" binding:"required"`
		Shared  *bool  `json:"shared" form:"shared" binding:"required"`
	}

	var req CreateListRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	_, err := h.listService.CreateList(c.Request.Context(), services.CreateListInput{
		Name:    req.Name,
		Creator: req.Creator,
		Shared:  *req.Shared,
	})
	if err != nil {
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "List created successfully"})
}

// GetLists returns every list
func (h *ListHandler) GetLists(c *gin.Context) {
	lists, err := h.listService.ListLists(c.Request.Context())
	if err != nil {
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListDTOs(lists))
}

// DeleteList deletes the list :name created by :username, tasks included
func (h *ListHandler) DeleteList(c *gin.Context) {
	err := h.listService.DeleteList(c.Request.Context(), c.Param("username"), c.Param("name"))
	if err != nil {
		respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "List deleted successfully"})
}

func respondListError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingField):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrListNotFound):
		apierrors.NotFound(c, "List not found")
	default:
		// Cascade failures land here as well: the client only sees a 500.
		respondInternalError(c, err)
	}
}
