package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"alfredhub/widgets"

	"github.com/gin-gonic/gin"
)

// RegisterNoteRoutes registers the notes and folders widget endpoints.
func RegisterNoteRoutes(r *gin.Engine, notes *widgets.Notes, folders *widgets.Folders) {
	r.GET("/notes", handleListNotes(notes))
	r.POST("/notes", handleCreateNote(notes))
	r.GET("/notes/:id", handleGetNote(notes))
	r.PATCH("/notes/:id", handlePatchNote(notes))
	r.DELETE("/notes/:id", handleDeleteNote(notes))

	r.GET("/folders", handleListFolders(folders))
	r.POST("/folders", handleCreateFolder(folders))
	r.GET("/folders/:id", handleGetFolder(folders))
	r.PATCH("/folders/:id", handleRenameFolder(folders))
	r.DELETE("/folders/:id", handleDeleteFolder(folders))
}

func handleListNotes(notes *widgets.Notes) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := notes.List()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"notes": all})
	}
}

// handleCreateNote accepts both "content" and "body" for the note text,
// matching the clients that send either.
func handleCreateNote(notes *widgets.Notes) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request"})
			return
		}

		title := stringField(body, "title")
		content := stringField(body, "content")
		if content == "" {
			content = stringField(body, "body")
		}
		folderID := folderIDField(body)

		note, err := notes.Create(title, content, folderID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, note)
	}
}

func handleGetNote(notes *widgets.Notes) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		note, err := notes.Get(id)
		if err != nil {
			if errors.Is(err, widgets.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, note)
	}
}

func handlePatchNote(notes *widgets.Notes) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request"})
			return
		}

		patch := widgets.NotePatch{}
		if v, ok := body["title"]; ok {
			s := fmt.Sprint(v)
			patch.Title = &s
		}
		if v, ok := body["content"]; ok {
			s := fmt.Sprint(v)
			patch.Content = &s
		} else if v, ok := body["body"]; ok {
			s := fmt.Sprint(v)
			patch.Content = &s
		}
		if v, present := body["folderId"]; present {
			switch fv := v.(type) {
			case nil:
				// explicit null clears the folder
				patch.SetFolderID = true
			case float64:
				id := int(fv)
				patch.FolderID = &id
				patch.SetFolderID = true
			case string:
				// empty string means "leave unchanged"
				if fv != "" {
					if n, err := strconv.Atoi(fv); err == nil {
						patch.FolderID = &n
						patch.SetFolderID = true
					}
				}
			}
		}

		note, err := notes.Update(id, patch)
		if err != nil {
			if errors.Is(err, widgets.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, note)
	}
}

func handleDeleteNote(notes *widgets.Notes) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		if err := notes.Delete(id); err != nil {
			if errors.Is(err, widgets.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func handleListFolders(folders *widgets.Folders) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := folders.List()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"folders": all})
	}
}

// CreateFolderRequest is the payload for POST /folders.
type CreateFolderRequest struct {
	Name string `json:"name"`
}

func handleCreateFolder(folders *widgets.Folders) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateFolderRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'name'"})
			return
		}

		folder, err := folders.Create(req.Name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, folder)
	}
}

func handleGetFolder(folders *widgets.Folders) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		folder, err := folders.Get(id)
		if err != nil {
			if errors.Is(err, widgets.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, folder)
	}
}

func handleRenameFolder(folders *widgets.Folders) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		var req CreateFolderRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'name'"})
			return
		}

		folder, err := folders.Rename(id, req.Name)
		if err != nil {
			if errors.Is(err, widgets.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, folder)
	}
}

func handleDeleteFolder(folders *widgets.Folders) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		if err := folders.Delete(id); err != nil {
			if errors.Is(err, widgets.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func stringField(body map[string]any, key string) string {
	v, ok := body[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func folderIDField(body map[string]any) *int {
	v, ok := body["folderId"]
	if !ok || v == nil {
		return nil
	}
	switch fv := v.(type) {
	case float64:
		id := int(fv)
		return &id
	case string:
		if fv == "" {
			return nil
		}
		if n, err := strconv.Atoi(fv); err == nil {
			return &n
		}
	}
	return nil
}
