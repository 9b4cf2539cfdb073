// Command pull fetches articles from the preset RSS feeds and pushes them
// into a running alfredhub server through POST /ingest. It stands in for the
// external agent during local development.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"alfredhub/common"
	"alfredhub/rssfeeds"
	"alfredhub/types"

	"github.com/joho/godotenv"
)

type genresResponse struct {
	Genres []types.Genre `json:"genres"`
}

func main() {
	_ = godotenv.Load()

	apiURL := flag.String("api", common.GetEnvOrDefault("ALFREDHUB_API_URL", "http://localhost:8080"), "base URL of the alfredhub API")
	token := flag.String("token", os.Getenv("MYBLOG_INGEST_TOKEN"), "ingest bearer token")
	count := flag.Int("count", 10, "max articles per feed")
	extract := flag.Bool("extract", true, "fill missing snippets via page extraction")
	flag.Parse()

	if *token == "" {
		log.Fatal("no ingest token: set MYBLOG_INGEST_TOKEN or pass -token")
	}

	genres, err := fetchGenres(*apiURL)
	if err != nil {
		log.Fatalf("failed to list genres: %v", err)
	}

	var batch []types.Article
	for _, g := range genres {
		feeds := rssfeeds.ResolveFeeds(g.Name)
		if len(feeds) == 0 {
			log.Printf("no preset feeds for genre %q, skipping", g.Name)
			continue
		}
		for _, feedURL := range feeds {
			articles, err := rssfeeds.FetchGenreFeed(feedURL, g.Name, *count)
			if err != nil {
				log.Printf("feed %s failed: %v", feedURL, err)
				continue
			}
			log.Printf("fetched %d articles for %q from %s", len(articles), g.Name, feedURL)
			batch = append(batch, articles...)
		}
	}

	if len(batch) == 0 {
		log.Fatal("nothing fetched, not ingesting")
	}

	if *extract {
		rssfeeds.FillMissingSnippets(batch)
	}

	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		uploadSnapshots(bucket, batch)
	}

	if err := ingest(*apiURL, *token, batch); err != nil {
		log.Fatalf("ingest failed: %v", err)
	}
	log.Printf("ingested %d articles", len(batch))
}

func fetchGenres(apiURL string) ([]types.Genre, error) {
	resp, err := http.Get(apiURL + "/genres")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var out genresResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.Genres, nil
}

func ingest(apiURL, token string, articles []types.Article) error {
	body, err := json.Marshal(map[string]any{"articles": articles})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, apiURL+"/ingest", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

// uploadSnapshots writes each article as a JSON object to S3, keyed by
// article ID. Failures are logged and skipped so a bad object never blocks
// the ingest.
func uploadSnapshots(bucket string, articles []types.Article) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	s3Client, err := common.NewS3(ctx, common.S3Config{Region: os.Getenv("AWS_REGION")})
	if err != nil {
		log.Printf("s3 init failed, skipping snapshots: %v", err)
		return
	}

	for _, a := range articles {
		key := "articles/" + a.ID + ".json"
		exists, err := s3Client.Exists(ctx, bucket, key)
		if err != nil {
			log.Printf("s3 head %s failed: %v", key, err)
			continue
		}
		if exists {
			continue
		}

		data, err := json.Marshal(a)
		if err != nil {
			continue
		}
		if err := s3Client.Put(ctx, bucket, key, bytes.NewReader(data), "application/json"); err != nil {
			log.Printf("s3 put %s failed: %v", key, err)
		}
	}
}
