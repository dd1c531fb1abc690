package main

import (
	"fmt"

	"trackpulse/internal/answer"
	"trackpulse/internal/embedding"
	"trackpulse/internal/llm"
	"trackpulse/internal/store"
)

// services bundles the wired subsystems for one command invocation.
type services struct {
	index    *store.LocalIndex
	answerer *answer.Orchestrator
}

// openIndex wires the embedding engine and the local vector index.
// Enough for commands that never call the completion service.
func openIndex() (*store.LocalIndex, error) {
	engine, err := embedding.NewEngine(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("embedding engine: %w", err)
	}
	index, err := store.Open(cfg.Index.DatabasePath, engine)
	if err != nil {
		return nil, fmt.Errorf("vector index: %w", err)
	}
	return index, nil
}

// openServices wires the full pipeline: index, ingestor, and answerer.
func openServices() (*services, error) {
	index, err := openIndex()
	if err != nil {
		return nil, err
	}

	completer, err := llm.NewCompleter(cfg.LLM)
	if err != nil {
		index.Close()
		return nil, fmt.Errorf("completion service: %w", err)
	}

	return &services{
		index:    index,
		answerer: answer.New(index, completer, cfg.RoleText),
	}, nil
}

func (s *services) close() {
	if s.index != nil {
		_ = s.index.Close()
	}
}
