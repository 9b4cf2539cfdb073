package tui

import "alfredhub/types"

// GenresLoadedMsg is sent when the genre list arrives
type GenresLoadedMsg struct {
	Genres []types.Genre
	Err    error
}

// FeedLoadedMsg is sent when an article list arrives
type FeedLoadedMsg struct {
	Articles []types.Article
	Recent   bool
	Err      error
}

// RefreshTriggeredMsg is sent when the refresh request returns
type RefreshTriggeredMsg struct {
	Err error
}
