package rssfeeds

import (
	"log"
	"sync"
	"time"

	"alfredhub/types"

	readability "github.com/go-shiori/go-readability"
)

const (
	WorkerCount      = 5
	extractorTimeout = 30 * time.Second
)

// FillMissingSnippets fetches each article page and fills the snippet and
// image from the extracted content, using a fixed worker pool. Articles
// that already carry a snippet are skipped; extraction failures leave the
// article untouched.
func FillMissingSnippets(articles []types.Article) {
	var wg sync.WaitGroup
	articleChan := make(chan *types.Article, len(articles))

	// Start worker pool
	for i := 0; i < WorkerCount; i++ {
		go func(workerID int) {
			for article := range articleChan {
				if err := extractSnippet(article); err != nil {
					log.Printf("[Worker %d] Failed to extract %s: %v", workerID, article.URL, err)
				}
				wg.Done()
			}
		}(i)
	}

	// Queue only the articles that need extraction
	for i := range articles {
		if articles[i].Snippet != "" {
			continue
		}
		wg.Add(1)
		articleChan <- &articles[i]
	}

	wg.Wait()
	close(articleChan)
}

func extractSnippet(article *types.Article) error {
	extracted, err := readability.FromURL(article.URL, extractorTimeout)
	if err != nil {
		return err
	}

	article.Snippet = extracted.Excerpt
	if article.ImageURL == "" {
		article.ImageURL = extracted.Image
	}
	return nil
}
