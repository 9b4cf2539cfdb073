package tui

import (
	"alfredhub/types"

	tea "github.com/charmbracelet/bubbletea"
)

const feedLimit = 15

// Model represents the TUI viewer state
type Model struct {
	Client *APIClient

	Genres   []types.Genre
	Articles []types.Article

	// ShowRecent toggles between the ranked today view and the
	// sliding-window recent view
	ShowRecent bool

	Loading    bool
	Refreshing bool
	Err        error
}

// NewModel creates a new TUI model
func NewModel(apiURL string) Model {
	return Model{
		Client:  NewAPIClient(apiURL),
		Loading: true,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadGenres(m.Client),
		loadFeed(m.Client, false, feedLimit),
	)
}
