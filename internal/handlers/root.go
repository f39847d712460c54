package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/list-task-api/internal/errors"
	"github.com/yukikurage/list-task-api/internal/logging"
)

const rootBanner = "<h1>PiARS server</h1>"

// Root serves the static banner used as a liveness probe.
func Root(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(rootBanner))
}

// Health reports that the process is serving requests.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "List API is running",
	})
}

// respondInternalError logs err and hides it from the client.
func respondInternalError(c *gin.Context, err error) {
	_ = c.Error(err)
	logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "request failed",
		slog.String("path", c.FullPath()),
		slog.Any("error", err),
	)
	apierrors.InternalError(c, "")
}
