package api

import (
	"alfredhub/agent"
	"alfredhub/myblog"
	"alfredhub/widgets"

	"github.com/gin-gonic/gin"
)

// Deps carries the collaborators the route handlers need.
type Deps struct {
	Blog    *myblog.Store
	Agent   *agent.Client
	Tasks   *widgets.Tasks
	Events  *widgets.Events
	Notes   *widgets.Notes
	Folders *widgets.Folders
	// IngestToken guards POST /ingest. An empty token rejects all ingest
	// requests.
	IngestToken string
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	// Register resource routers
	RegisterHealthRoutes(r)
	RegisterGenreRoutes(r, deps.Blog)
	RegisterArticleRoutes(r, deps.Blog, deps.Agent, deps.IngestToken)
	RegisterTaskRoutes(r, deps.Tasks)
	RegisterEventRoutes(r, deps.Events)
	RegisterNoteRoutes(r, deps.Notes, deps.Folders)
	return r
}
