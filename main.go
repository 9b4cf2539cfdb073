package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"alfredhub/agent"
	"alfredhub/api"
	"alfredhub/common"
	"alfredhub/config"
	"alfredhub/kafka"
	"alfredhub/myblog"
	"alfredhub/store"
	"alfredhub/widgets"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	backend := newBackend()
	blog := myblog.NewStore(backend)

	dataDir := common.GetEnvOrDefault("WIDGET_DATA_DIR", config.WidgetDataDir)
	deps := api.Deps{
		Blog:        blog,
		Agent:       agent.NewClient(os.Getenv("AGENT_HTTP_URL")),
		Tasks:       widgets.NewTasks(dataDir),
		Events:      widgets.NewEvents(dataDir),
		Notes:       widgets.NewNotes(dataDir),
		Folders:     widgets.NewFolders(dataDir),
		IngestToken: os.Getenv("MYBLOG_INGEST_TOKEN"),
	}

	startKafkaConsumer(blog)

	r := api.NewRouter(deps)
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET    /health")
	log.Println("  GET    /genres")
	log.Println("  POST   /genres")
	log.Println("  PUT    /genres/:id")
	log.Println("  DELETE /genres/:id")
	log.Println("  POST   /ingest")
	log.Println("  POST   /refresh")
	log.Println("  GET    /articles")
	log.Println("  GET    /articles/today")
	log.Println("  GET/POST /tasks, /events, /notes, /folders (+ item routes)")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// newBackend selects the document store: Redis when MYBLOG_REDIS_ADDR is
// set, the local JSON file otherwise.
func newBackend() store.Backend {
	if os.Getenv("MYBLOG_REDIS_ADDR") != "" {
		backend, err := store.NewRedisBackendFromEnv()
		if err != nil {
			log.Fatalf("failed to init redis store: %v", err)
		}
		log.Println("Using Redis document store")
		return backend
	}
	return store.NewFileBackend(common.GetEnvOrDefault("MYBLOG_DB_PATH", config.DBPath))
}

// startKafkaConsumer wires the optional message-bus ingest path. A missing
// KAFKA_BROKERS leaves it disabled.
func startKafkaConsumer(blog *myblog.Store) {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return
	}

	consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: strings.Split(brokers, ","),
		Topic:   common.GetEnvOrDefault("KAFKA_TOPIC", config.DefaultKafkaTopic),
		GroupID: common.GetEnvOrDefault("KAFKA_GROUP_ID", config.DefaultKafkaGroupID),
		Handler: kafka.NewIngestHandler(blog),
	})
	if err != nil {
		log.Fatalf("failed to create Kafka consumer: %v", err)
	}
	if err := consumer.Start(context.Background()); err != nil {
		log.Fatalf("failed to start Kafka consumer: %v", err)
	}
}
