package api

import (
	"errors"
	"net/http"
	"strconv"

	"alfredhub/widgets"

	"github.com/gin-gonic/gin"
)

// RegisterEventRoutes registers the calendar widget endpoints.
func RegisterEventRoutes(r *gin.Engine, events *widgets.Events) {
	r.GET("/events", handleListEvents(events))
	r.POST("/events", handleCreateEvent(events))
	r.PUT("/events/:id", handleUpdateEvent(events))
	r.DELETE("/events/:id", handleDeleteEvent(events))
}

func handleListEvents(events *widgets.Events) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := events.List()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"events": all})
	}
}

// CreateEventRequest is the payload for POST /events.
type CreateEventRequest struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Note  string `json:"note"`
}

func handleCreateEvent(events *widgets.Events) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateEventRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.Date == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'title' or 'date'"})
			return
		}

		ev, err := events.Create(req.Title, req.Date, req.Time, req.Note)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"event": ev})
	}
}

func handleUpdateEvent(events *widgets.Events) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		var patch widgets.EventPatch
		_ = c.ShouldBindJSON(&patch)

		ev, err := events.Update(id, patch)
		if err != nil {
			if errors.Is(err, widgets.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"event": ev})
	}
}

func handleDeleteEvent(events *widgets.Events) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		deleted, err := events.Delete(id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": deleted})
	}
}
