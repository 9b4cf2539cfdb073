package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// loadGenres creates a command to fetch the genre list
func loadGenres(client *APIClient) tea.Cmd {
	return func() tea.Msg {
		genres, err := client.GetGenres()
		return GenresLoadedMsg{Genres: genres, Err: err}
	}
}

// loadFeed creates a command to fetch the selected article view
func loadFeed(client *APIClient, recent bool, limit int) tea.Cmd {
	return func() tea.Msg {
		var msg FeedLoadedMsg
		msg.Recent = recent
		if recent {
			msg.Articles, msg.Err = client.GetRecentArticles(limit)
		} else {
			msg.Articles, msg.Err = client.GetTodaysFeed(limit)
		}
		return msg
	}
}

// triggerRefresh creates a command to forward a refresh to the agent
func triggerRefresh(client *APIClient) tea.Cmd {
	return func() tea.Msg {
		return RefreshTriggeredMsg{Err: client.TriggerRefresh()}
	}
}
