package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case GenresLoadedMsg:
		return m.handleGenresLoaded(msg)
	case FeedLoadedMsg:
		return m.handleFeedLoaded(msg)
	case RefreshTriggeredMsg:
		return m.handleRefreshTriggered(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab", "t":
		m.ShowRecent = !m.ShowRecent
		m.Loading = true
		return m, loadFeed(m.Client, m.ShowRecent, feedLimit)
	case "f", "F":
		m.Loading = true
		return m, tea.Batch(
			loadGenres(m.Client),
			loadFeed(m.Client, m.ShowRecent, feedLimit),
		)
	case "r", "R":
		if !m.Refreshing {
			m.Refreshing = true
			return m, triggerRefresh(m.Client)
		}
	}
	return m, nil
}

func (m Model) handleGenresLoaded(msg GenresLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Err = msg.Err
		return m, nil
	}
	m.Err = nil
	m.Genres = msg.Genres
	return m, nil
}

func (m Model) handleFeedLoaded(msg FeedLoadedMsg) (tea.Model, tea.Cmd) {
	m.Loading = false
	if msg.Err != nil {
		m.Err = msg.Err
		return m, nil
	}
	// Ignore stale responses from the other view
	if msg.Recent != m.ShowRecent {
		return m, nil
	}
	m.Err = nil
	m.Articles = msg.Articles
	return m, nil
}

func (m Model) handleRefreshTriggered(msg RefreshTriggeredMsg) (tea.Model, tea.Cmd) {
	m.Refreshing = false
	if msg.Err != nil {
		m.Err = msg.Err
		return m, nil
	}
	// Reload the feed so newly ingested articles show up
	m.Loading = true
	return m, loadFeed(m.Client, m.ShowRecent, feedLimit)
}
