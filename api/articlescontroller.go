package api

import (
	"net/http"
	"strconv"
	"strings"

	"alfredhub/agent"
	"alfredhub/config"
	"alfredhub/myblog"
	"alfredhub/types"

	"github.com/gin-gonic/gin"
)

// RegisterArticleRoutes registers the article feed, ingest and refresh
// endpoints.
func RegisterArticleRoutes(r *gin.Engine, blog *myblog.Store, agentClient *agent.Client, ingestToken string) {
	r.GET("/articles", handleRecentArticles(blog))
	r.GET("/articles/today", handleTodaysFeed(blog))
	r.POST("/ingest", handleIngest(blog, ingestToken))
	r.POST("/refresh", handleRefresh(blog, agentClient))
}

// handleRecentArticles is the sliding-window read path: everything fetched
// within sinceHours, newest first.
func handleRecentArticles(blog *myblog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := intQuery(c, "limit", config.DefaultListLimit)
		sinceHours := intQuery(c, "sinceHours", config.DefaultSinceHours)

		articles, err := blog.RecentArticles(sinceHours, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"articles": articles})
	}
}

// handleTodaysFeed is the ranked read path: today's articles ordered by
// genre priority, score and recency.
func handleTodaysFeed(blog *myblog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := intQuery(c, "limit", config.DefaultListLimit)

		articles, err := blog.TodaysFeed(limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"articles": articles})
	}
}

// IngestRequest is the payload for POST /ingest.
type IngestRequest struct {
	Articles []types.Article `json:"articles"`
}

// handleIngest accepts article batches from the agent. Bearer auth; records
// missing url, title or genre are dropped rather than failing the batch.
func handleIngest(blog *myblog.Store, token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		presented := strings.TrimPrefix(auth, "Bearer ")
		if token == "" || presented == auth || presented != token {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req IngestRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Articles) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No articles"})
			return
		}

		// Ensure defaults exist before ranking against genre names
		if _, err := blog.SeedDefaultGenres(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		cleaned := make([]types.Article, 0, len(req.Articles))
		for _, a := range req.Articles {
			if a.URL == "" || a.Title == "" || a.Genre == "" {
				continue
			}
			cleaned = append(cleaned, a)
		}

		if err := blog.UpsertArticles(cleaned); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "count": len(cleaned)})
	}
}

// RefreshRequest is the payload for POST /refresh.
type RefreshRequest struct {
	Genres []string `json:"genres"`
	Limit  *int     `json:"limit"`
}

// handleRefresh forwards the request to the external agent. When the agent
// is down the response is still 200 with ok:false so the UI degrades
// instead of failing the whole request.
func handleRefresh(blog *myblog.Store, agentClient *agent.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshRequest
		_ = c.ShouldBindJSON(&req)
		limit := config.DefaultListLimit
		if req.Limit != nil {
			limit = *req.Limit
		}
		genres := req.Genres
		if genres == nil {
			genres = []string{}
		}

		if _, err := blog.SeedDefaultGenres(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := blog.MarkRefreshRequested(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		res, err := agentClient.RequestRefresh(c.Request.Context(), genres, limit)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"ok": false, "error": err.Error(), "genres": genres, "limit": limit})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": res.StatusOK, "agent": res.Body, "genres": genres, "limit": limit})
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
