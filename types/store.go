package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Genre is a user-defined topic with a display priority.
// Lower rank sorts first; ranks are not required to be unique or contiguous.
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

// Article is a single ingested content record. Articles are keyed by a
// normalized form of URL, not by ID: two records with different IDs but the
// same normalized URL collapse into one.
type Article struct {
	ID          string     `json:"id"`
	Genre       string     `json:"genre"`
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle,omitempty"`
	Snippet     string     `json:"snippet,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Source      string     `json:"source,omitempty"`
	URL         string     `json:"url"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Score       *float64   `json:"score,omitempty"`
	FetchedAt   time.Time  `json:"fetchedAt"`
}

// Database is the whole persisted document. It is read in full and rewritten
// in full on every mutation.
type Database struct {
	Genres                 []Genre   `json:"genres"`
	Articles               []Article `json:"articles"`
	LastRefreshRequestedAt string    `json:"lastRefreshRequestedAt,omitempty"`
}

// GenerateID creates a short, stable ID by hashing the provided string input
func GenerateID(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}
