package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	httpadapter "github.com/Na1awut/NDLP/internal/adapters/http"
	"github.com/Na1awut/NDLP/internal/adapters/llm"
	firestorestore "github.com/Na1awut/NDLP/internal/adapters/storage/firestore"
	memstore "github.com/Na1awut/NDLP/internal/adapters/storage/memory"
	"github.com/Na1awut/NDLP/internal/adapters/storage/redisstore"
	sqlitestore "github.com/Na1awut/NDLP/internal/adapters/storage/sqlite"
	"github.com/Na1awut/NDLP/internal/app/chat"
	"github.com/Na1awut/NDLP/internal/config"
	"github.com/Na1awut/NDLP/internal/domain"
)

func main() {
	ctx := context.Background()

	// Local .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := config.Load()

	var (
		llmClient domain.LLMClient
		err       error
	)

	if cfg.UseMockLLM {
		log.Println("[LLM] Using MOCK LLM client")
		llmClient = llm.NewMockLLM()
	} else {
		log.Println("[LLM] Using Vertex LLM client")
		llmClient, err = llm.NewVertexClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.ModelName)
		if err != nil {
			log.Fatalf("error initializing Vertex LLM client: %v", err)
		}
	}

	var (
		stateStore   domain.StateStore
		messageStore domain.MessageStore
	)

	switch cfg.StorageBackend {
	case "firestore":
		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}
		stateStore = fsStore
		messageStore = fsStore

	case "redis":
		log.Printf("[STORE] Using Redis storage (addr=%s db=%d)", cfg.RedisAddr, cfg.RedisDB)
		rStore, err := redisstore.NewStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("error initializing Redis store: %v", err)
		}
		defer rStore.Close()
		stateStore = rStore
		messageStore = rStore

	case "sqlite":
		log.Printf("[STORE] Using SQLite storage (path=%s)", cfg.SQLitePath)
		sStore, err := sqlitestore.NewStore(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("error initializing SQLite store: %v", err)
		}
		defer sStore.Close()
		stateStore = sStore
		messageStore = sStore

	default:
		log.Println("[STORE] Using in-memory storage")
		stateStore = memstore.NewStateStore()
		messageStore = memstore.NewMessageStore()
	}

	svc := chat.NewService(llmClient, stateStore, messageStore)
	handler := httpadapter.NewServer(svc)

	addr := ":" + cfg.Port
	log.Println("CareBot API listening on", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
