package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/rs/cors"

	"github.com/rcliao/triage/internal/api"
	"github.com/rcliao/triage/internal/config"
	"github.com/rcliao/triage/internal/domain"
	"github.com/rcliao/triage/internal/engine"
	"github.com/rcliao/triage/internal/service"
	"github.com/rcliao/triage/internal/storage"
)

func main() {
	// Check for CLI mode flag
	if len(os.Args) > 1 && os.Args[1] == "--cli" {
		runCLI(os.Args[2:])
		return
	}

	// Default to HTTP server mode
	runServer()
}

func runServer() {
	cfg := config.Load()

	store, cleanup, err := openStorage(cfg)
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}
	defer cleanup()

	taskService := service.NewTaskService(store)
	analysisService := service.NewAnalysisService(store, time.Now)

	server := api.NewServer(analysisService, taskService)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	handler := c.Handler(server.Handler())

	log.Printf("triage server listening on %s (storage: %s)", cfg.Addr, cfg.Storage)
	log.Fatal(http.ListenAndServe(cfg.Addr, handler))
}

func openStorage(cfg *config.Config) (service.TaskStorage, func(), error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return storage.NewMemoryStorage(), func() {}, nil
	case config.StorageFile:
		fs, err := storage.NewFileStorage(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() {}, nil
	case config.StoragePostgres:
		ps, err := storage.NewPostgresStorage(cfg.ConnString())
		if err != nil {
			return nil, nil, err
		}
		return ps, func() { ps.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}

// runCLI analyzes a batch file (or stdin) once and prints the ranking.
func runCLI(args []string) {
	input := os.Stdin
	if len(args) > 0 && args[0] != "-" {
		file, err := os.Open(args[0])
		if err != nil {
			log.Fatal("Failed to open batch file:", err)
		}
		defer file.Close()
		input = file
	}

	data, err := io.ReadAll(input)
	if err != nil {
		log.Fatal("Failed to read batch:", err)
	}

	var req struct {
		Tasks    []domain.TaskInput `json:"tasks"`
		Strategy string             `json:"strategy,omitempty"`
		Weights  *domain.Weights    `json:"weights,omitempty"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		log.Fatal("Invalid batch JSON:", err)
	}

	eng := engine.New()
	scored, err := eng.Analyze(engine.Request{
		Tasks:    req.Tasks,
		Strategy: req.Strategy,
		Weights:  req.Weights,
		Now:      domain.DateOf(time.Now()),
	})
	if err != nil {
		log.Fatal("Analysis failed:", err)
	}

	fmt.Printf("%-5s %-6s %-40s %s\n", "ID", "SCORE", "TITLE", "REASON")
	for _, task := range scored {
		title := task.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		fmt.Printf("%-5d %-6d %-40s %s\n", task.ID, task.Score, title, task.Reason)
	}

	suggestions := engine.TopSuggestions(scored, engine.DefaultSuggestionCount)
	fmt.Println()
	fmt.Println("Suggested next:")
	for i, s := range suggestions {
		fmt.Printf("  %d. %s (%d) - %s\n", i+1, s.Title, s.Score, s.Why)
	}
}
