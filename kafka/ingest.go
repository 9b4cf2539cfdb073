package kafka

import (
	"context"

	"alfredhub/myblog"
	"alfredhub/types"
)

// ingestMessage is the payload published to the ingest topic, identical to
// the POST /ingest body.
type ingestMessage struct {
	Articles []types.Article `json:"articles"`
}

// NewIngestHandler builds the handler that upserts consumed article
// batches. Records missing url, title or genre are dropped, matching the
// HTTP ingest path. Invalid or empty messages are marked so they are not
// redelivered; a store write failure leaves the message unmarked for retry.
func NewIngestHandler(blog *myblog.Store) MessageHandler {
	return &TypedMessageHandler[ingestMessage]{
		Validate: func(msg *ingestMessage) bool {
			return len(msg.Articles) > 0
		},
		Process: func(ctx context.Context, msg *ingestMessage) error {
			cleaned := make([]types.Article, 0, len(msg.Articles))
			for _, a := range msg.Articles {
				if a.URL == "" || a.Title == "" || a.Genre == "" {
					continue
				}
				cleaned = append(cleaned, a)
			}
			if len(cleaned) == 0 {
				return nil
			}
			return blog.UpsertArticles(cleaned)
		},
		AlwaysMark: true,
	}
}
