package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"alfredhub/agent"
	"alfredhub/myblog"
	"alfredhub/store"
	"alfredhub/widgets"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIngestToken = "test-token"

func newTestRouter(t *testing.T, agentURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	return NewRouter(Deps{
		Blog:        myblog.NewStore(store.NewFileBackend(filepath.Join(dir, "myblog-db.json"))),
		Agent:       agent.NewClient(agentURL),
		Tasks:       widgets.NewTasks(dir),
		Events:      widgets.NewEvents(dir),
		Notes:       widgets.NewNotes(dir),
		Folders:     widgets.NewFolders(dir),
		IngestToken: testIngestToken,
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, "http://unused")
	w := doJSON(t, r, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenresSeededOnFirstList(t *testing.T) {
	r := newTestRouter(t, "http://unused")

	w := doJSON(t, r, http.MethodGet, "/genres", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	genres := decodeBody(t, w)["genres"].([]any)
	require.Len(t, genres, 3)
	first := genres[0].(map[string]any)
	assert.Equal(t, "NBA", first["name"])
	assert.Equal(t, float64(1), first["rank"])
}

func TestAddGenreValidation(t *testing.T) {
	r := newTestRouter(t, "http://unused")

	w := doJSON(t, r, http.MethodPost, "/genres", map[string]any{"name": "Climate"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/genres", map[string]any{
		"id": "g-climate", "name": "  Climate  ", "rank": 4.7,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/genres", nil, nil)
	genres := decodeBody(t, w)["genres"].([]any)
	last := genres[len(genres)-1].(map[string]any)
	assert.Equal(t, "Climate", last["name"])
	assert.Equal(t, float64(4), last["rank"])
}

func TestAddGenreDuplicateIsSilentOK(t *testing.T) {
	r := newTestRouter(t, "http://unused")

	// seed the defaults first
	w := doJSON(t, r, http.MethodGet, "/genres", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// seeded AI already exists, so this add is a no-op
	w = doJSON(t, r, http.MethodPost, "/genres", map[string]any{"id": "1", "name": "ai", "rank": 9}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/genres", nil, nil)
	genres := decodeBody(t, w)["genres"].([]any)
	names := 0
	for _, g := range genres {
		if g.(map[string]any)["name"] == "AI" {
			names++
		}
	}
	assert.Equal(t, 1, names)
}

func TestUpdateGenreRank(t *testing.T) {
	r := newTestRouter(t, "http://unused")

	w := doJSON(t, r, http.MethodGet, "/genres", nil, nil)
	genres := decodeBody(t, w)["genres"].([]any)
	aiID := ""
	for _, g := range genres {
		gm := g.(map[string]any)
		if gm["name"] == "AI" {
			aiID = gm["id"].(string)
		}
	}
	require.NotEmpty(t, aiID)

	w = doJSON(t, r, http.MethodPut, "/genres/"+aiID, map[string]any{"rank": 0}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	genre := decodeBody(t, w)["genre"].(map[string]any)
	assert.Equal(t, float64(1), genre["rank"])

	w = doJSON(t, r, http.MethodPut, "/genres/nope", map[string]any{"rank": 2}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPut, "/genres/"+aiID, map[string]any{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteGenreAlwaysOK(t *testing.T) {
	r := newTestRouter(t, "http://unused")

	w := doJSON(t, r, http.MethodDelete, "/genres/does-not-exist", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["ok"])
}

func TestIngestRequiresBearerToken(t *testing.T) {
	r := newTestRouter(t, "http://unused")
	payload := map[string]any{"articles": []map[string]any{
		{"genre": "AI", "title": "t", "url": "https://x.com/a"},
	}}

	w := doJSON(t, r, http.MethodPost, "/ingest", payload, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/ingest", payload, map[string]string{
		"Authorization": "Bearer wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/ingest", payload, map[string]string{
		"Authorization": "Bearer " + testIngestToken,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])
}

func TestIngestRejectsEmptyBatchAndDropsInvalidRecords(t *testing.T) {
	r := newTestRouter(t, "http://unused")
	auth := map[string]string{"Authorization": "Bearer " + testIngestToken}

	w := doJSON(t, r, http.MethodPost, "/ingest", map[string]any{"articles": []any{}}, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/ingest", map[string]any{"articles": []map[string]any{
		{"genre": "AI", "title": "kept", "url": "https://x.com/a"},
		{"genre": "AI", "url": "https://x.com/missing-title"},
		{"title": "missing genre", "url": "https://x.com/b"},
	}}, auth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])
}

func TestIngestThenTodaysFeedRanksByGenre(t *testing.T) {
	r := newTestRouter(t, "http://unused")
	auth := map[string]string{"Authorization": "Bearer " + testIngestToken}

	w := doJSON(t, r, http.MethodPost, "/ingest", map[string]any{"articles": []map[string]any{
		{"genre": "AI", "title": "ai story", "url": "https://x.com/ai", "score": 50},
		{"genre": "NBA", "title": "nba story", "url": "https://x.com/nba", "score": 1},
	}}, auth)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/articles/today?limit=25", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	articles := decodeBody(t, w)["articles"].([]any)
	require.Len(t, articles, 2)
	assert.Equal(t, "nba story", articles[0].(map[string]any)["title"])
}

func TestRecentArticlesWindow(t *testing.T) {
	r := newTestRouter(t, "http://unused")
	auth := map[string]string{"Authorization": "Bearer " + testIngestToken}

	w := doJSON(t, r, http.MethodPost, "/ingest", map[string]any{"articles": []map[string]any{
		{"genre": "AI", "title": "fresh", "url": "https://x.com/a"},
		{"genre": "AI", "title": "stale", "url": "https://x.com/b", "fetchedAt": "2020-01-01T00:00:00Z"},
	}}, auth)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/articles?limit=10&sinceHours=36", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	articles := decodeBody(t, w)["articles"].([]any)
	require.Len(t, articles, 1)
	assert.Equal(t, "fresh", articles[0].(map[string]any)["title"])
}

func TestRefreshForwardsToAgent(t *testing.T) {
	var gotBody map[string]any
	agentSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"status":"queued"}`))
	}))
	defer agentSrv.Close()

	r := newTestRouter(t, agentSrv.URL)
	w := doJSON(t, r, http.MethodPost, "/refresh", map[string]any{
		"genres": []string{"AI"}, "limit": 10,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, float64(10), body["limit"])
	assert.Equal(t, []any{"AI"}, gotBody["genres"])
	agentReply := body["agent"].(map[string]any)
	assert.Equal(t, "queued", agentReply["status"])
}

func TestRefreshDegradesWhenAgentDown(t *testing.T) {
	agentSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	agentSrv.Close()

	r := newTestRouter(t, agentSrv.URL)
	w := doJSON(t, r, http.MethodPost, "/refresh", map[string]any{}, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["ok"])
	assert.NotEmpty(t, body["error"])
	assert.Equal(t, float64(25), body["limit"])
}

func TestTaskRoutes(t *testing.T) {
	r := newTestRouter(t, "http://unused")

	w := doJSON(t, r, http.MethodPost, "/tasks", map[string]any{"note": "no text"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/tasks", map[string]any{"text": "buy milk"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	task := decodeBody(t, w)["task"].(map[string]any)
	assert.Equal(t, "medium", task["importance"])

	w = doJSON(t, r, http.MethodPut, "/tasks/1", map[string]any{"completed": true}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	task = decodeBody(t, w)["task"].(map[string]any)
	assert.Equal(t, true, task["completed"])
	assert.Equal(t, "buy milk", task["text"])

	w = doJSON(t, r, http.MethodPut, "/tasks/99", map[string]any{"completed": true}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/tasks/1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["deleted"])

	w = doJSON(t, r, http.MethodDelete, "/tasks/1", nil, nil)
	assert.Equal(t, false, decodeBody(t, w)["deleted"])

	w = doJSON(t, r, http.MethodDelete, "/tasks/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventRoutes(t *testing.T) {
	r := newTestRouter(t, "http://unused")

	w := doJSON(t, r, http.MethodPost, "/events", map[string]any{"title": "dentist"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/events", map[string]any{
		"title": "dentist", "date": "2025-09-12", "time": "14:30",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPut, "/events/1", map[string]any{"time": "15:00"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	ev := decodeBody(t, w)["event"].(map[string]any)
	assert.Equal(t, "15:00", ev["time"])
}

func TestNoteAndFolderRoutes(t *testing.T) {
	r := newTestRouter(t, "http://unused")

	w := doJSON(t, r, http.MethodPost, "/folders", map[string]any{"name": "work"}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	folder := decodeBody(t, w)
	folderID := folder["id"].(float64)

	w = doJSON(t, r, http.MethodPost, "/notes", map[string]any{
		"body": "remember the milk", "folderId": folderID,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	note := decodeBody(t, w)
	assert.Equal(t, "Untitled", note["title"])
	assert.Equal(t, "remember the milk", note["content"])
	assert.Equal(t, folderID, note["folderId"])

	w = doJSON(t, r, http.MethodPatch, "/notes/1", map[string]any{"folderId": nil}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	note = decodeBody(t, w)
	assert.Nil(t, note["folderId"])

	w = doJSON(t, r, http.MethodPatch, "/folders/1", map[string]any{"name": "projects"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "projects", decodeBody(t, w)["name"])

	w = doJSON(t, r, http.MethodDelete, "/folders/1", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodDelete, "/folders/1", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/notes/1", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodDelete, "/notes/1", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodGet, "/notes/1", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
