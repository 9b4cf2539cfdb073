package rssfeeds

// GenreFeeds maps genre names to the RSS feeds the local pull tool reads
// for them. Matching is exact on the genre name as stored.
var GenreFeeds = map[string][]string{
	"NBA": {
		"https://www.espn.com/espn/rss/nba/news",
	},
	"Tech company IPO": {
		"https://techcrunch.com/feed/",
	},
	"AI": {
		"https://www.technologyreview.com/feed/",
		"https://hnrss.org/newest?q=AI",
	},
}

// ResolveFeeds returns the feed URLs for a genre, or nil when no preset
// exists. Unknown genres are simply skipped by the pull tool; the external
// agent handles arbitrary topics.
func ResolveFeeds(genre string) []string {
	return GenreFeeds[genre]
}
