package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"brainy-ai/api/internal/config"
	"brainy-ai/api/internal/handle"
	"brainy-ai/api/internal/httpserver"
	"brainy-ai/api/internal/prompt"
	"brainy-ai/api/internal/solve"
	"brainy-ai/api/internal/solve/gemini"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	instruction, err := prompt.Load(cfg.InstructionFile)
	if err != nil {
		log.Fatalf("prompt: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("gemini: %v", err)
	}
	defer engine.Close()

	solver := solve.NewSolver(engine, instruction, solve.DefaultPolicy())

	mux := http.NewServeMux()
	handle.New(solver, cfg.RequestTimeout, cfg.MaxUploadBytes).Register(mux)

	log.Printf("brainy-api: model=%s", engine.GetModel())
	if err := httpserver.Serve(ctx, ":"+cfg.Port, mux); err != nil {
		log.Fatal(err)
	}
}
