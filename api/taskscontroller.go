package api

import (
	"errors"
	"net/http"
	"strconv"

	"alfredhub/widgets"

	"github.com/gin-gonic/gin"
)

// RegisterTaskRoutes registers the task widget endpoints.
func RegisterTaskRoutes(r *gin.Engine, tasks *widgets.Tasks) {
	r.GET("/tasks", handleListTasks(tasks))
	r.POST("/tasks", handleCreateTask(tasks))
	r.PUT("/tasks/:id", handleUpdateTask(tasks))
	r.DELETE("/tasks/:id", handleDeleteTask(tasks))
}

func handleListTasks(tasks *widgets.Tasks) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := tasks.List()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"tasks": all})
	}
}

// CreateTaskRequest is the payload for POST /tasks.
type CreateTaskRequest struct {
	Text       string `json:"text"`
	Importance string `json:"importance"`
	Note       string `json:"note"`
}

func handleCreateTask(tasks *widgets.Tasks) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'text'"})
			return
		}
		if req.Importance == "" {
			req.Importance = "medium"
		}

		task, err := tasks.Create(req.Text, req.Importance, req.Note)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"task": task})
	}
}

func handleUpdateTask(tasks *widgets.Tasks) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		var patch widgets.TaskPatch
		_ = c.ShouldBindJSON(&patch)

		task, err := tasks.Update(id, patch)
		if err != nil {
			if errors.Is(err, widgets.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"task": task})
	}
}

func handleDeleteTask(tasks *widgets.Tasks) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		deleted, err := tasks.Delete(id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": deleted})
	}
}
