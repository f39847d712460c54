package handlers

import (
	"github.com/gin-gonic/gin"
)

// Handlers bundles every handler mounted by RegisterRoutes.
type Handlers struct {
	Accounts *AccountHandler
	Lists    *ListHandler
	Tasks    *TaskHandler
}

// RegisterRoutes mounts the API on r.
func RegisterRoutes(r gin.IRouter, h Handlers) {
	r.GET("/", Root)
	r.GET("/health", Health)

	r.POST("/users", h.Accounts.CreateUser)
	r.POST("/login", h.Accounts.Login)

	r.POST("/lists", h.Lists.CreateList)
	r.GET("/lists", h.Lists.GetLists)
	r.DELETE("/lists/:username/:name", h.Lists.DeleteList)

	r.POST("/tasks", h.Tasks.CreateTask)
	r.PUT("/tasks", h.Tasks.UpdateTask)
	r.DELETE("/tasks/:id", h.Tasks.DeleteTask)
	r.GET("/tasks/:list", h.Tasks.GetTasksByList)
	r.POST("/tasks/:list/suggestions", h.Tasks.SuggestTasks)
}
