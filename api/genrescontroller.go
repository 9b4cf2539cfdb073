package api

import (
	"errors"
	"math"
	"net/http"
	"strings"

	"alfredhub/myblog"
	"alfredhub/types"

	"github.com/gin-gonic/gin"
)

// RegisterGenreRoutes registers genre-ranking endpoints.
func RegisterGenreRoutes(r *gin.Engine, blog *myblog.Store) {
	r.GET("/genres", handleListGenres(blog))
	r.POST("/genres", handleAddGenre(blog))
	r.PUT("/genres/:id", handleUpdateGenreRank(blog))
	r.DELETE("/genres/:id", handleDeleteGenre(blog))
}

// handleListGenres seeds the defaults on first access, then returns all
// genres sorted by rank.
func handleListGenres(blog *myblog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := blog.SeedDefaultGenres(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		genres, err := blog.Genres()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"genres": genres})
	}
}

// AddGenreRequest is the payload for POST /genres.
type AddGenreRequest struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Rank *float64 `json:"rank"`
}

// handleAddGenre validates and appends a genre. A case-insensitive name
// collision is a no-op but still answers ok, matching the UI contract.
func handleAddGenre(blog *myblog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddGenreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid genre payload"})
			return
		}
		name := strings.TrimSpace(req.Name)
		if req.ID == "" || name == "" || req.Rank == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid genre payload"})
			return
		}

		rank := int(math.Floor(*req.Rank))
		if rank < 1 {
			rank = 1
		}
		_, err := blog.AddGenre(types.Genre{ID: req.ID, Name: name, Rank: rank})
		if err != nil && !errors.Is(err, myblog.ErrDuplicateName) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// UpdateGenreRankRequest is the payload for PUT /genres/:id.
type UpdateGenreRankRequest struct {
	Rank *float64 `json:"rank"`
}

func handleUpdateGenreRank(blog *myblog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateGenreRankRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Rank == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing/invalid rank"})
			return
		}

		genre, err := blog.UpdateGenreRank(c.Param("id"), *req.Rank)
		if err != nil {
			if errors.Is(err, myblog.ErrGenreNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Genre not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "genre": genre})
	}
}

// handleDeleteGenre removes by id; an absent id still answers ok.
func handleDeleteGenre(blog *myblog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := blog.DeleteGenre(c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
