package rssfeeds

import (
	"fmt"
	"time"

	"alfredhub/types"

	"github.com/mmcdole/gofeed"
)

// FetchGenreFeed retrieves and parses an RSS/Atom feed, returning articles
// tagged with the given genre name.
func FetchGenreFeed(feedURL, genre string, maxCount int) ([]types.Article, error) {
	parser := gofeed.NewParser()
	feed, err := parser.ParseURL(feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	count := min(len(feed.Items), maxCount)
	articles := make([]types.Article, 0, count)

	for i := 0; i < count; i++ {
		item := feed.Items[i]
		if item.Link == "" {
			continue
		}

		// Parse published date
		var publishedAt *time.Time
		if item.PublishedParsed != nil {
			publishedAt = item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			publishedAt = item.UpdatedParsed
		}

		article := types.Article{
			ID:          types.GenerateID(item.Link),
			Genre:       genre,
			Title:       item.Title,
			Snippet:     item.Description,
			Source:      feed.Title,
			URL:         item.Link,
			PublishedAt: publishedAt,
			FetchedAt:   time.Now(),
		}

		// Extract image if available
		if item.Image != nil {
			article.ImageURL = item.Image.URL
		}

		articles = append(articles, article)
	}

	return articles, nil
}
