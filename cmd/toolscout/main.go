// Command toolscout runs a one-shot retrieval-augmented agent over a large
// registry of math tools. It indexes every tool description into the
// configured store, then lets the model discover and call tools via
// retrieve_tools.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/toolscout-io/toolscout/internal/agent"
	"github.com/toolscout-io/toolscout/internal/config"
	"github.com/toolscout-io/toolscout/internal/mathtool"
	"github.com/toolscout-io/toolscout/internal/provider"
	"github.com/toolscout-io/toolscout/internal/store"
)

func main() {
	configPath := flag.String("config", "toolscout.yaml", "Path to config YAML file")
	prompt := flag.String("prompt", "", "User prompt to run")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	if *prompt == "" {
		fmt.Fprintln(os.Stderr, "usage: toolscout -prompt \"...\" [-config toolscout.yaml] [-v]")
		os.Exit(2)
	}

	if err := run(*configPath, *prompt, logger); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, prompt string, logger *slog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, cleanup, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer cleanup()

	reg := mathtool.Registry()
	for id, tl := range reg.Entries() {
		entry := store.Entry{
			Name:        tl.Name(),
			Description: fmt.Sprintf("%s: %s", tl.Name(), tl.Description()),
		}
		if err := st.Put(ctx, id, entry); err != nil {
			return fmt.Errorf("index tool %s: %w", tl.Name(), err)
		}
	}
	logger.Info("tool registry indexed", "tools", reg.Len(), "backend", cfg.Store.Backend)

	var provOpts []provider.OpenAIOption
	if cfg.Provider.BaseURL != "" {
		provOpts = append(provOpts, provider.WithBaseURL(cfg.Provider.BaseURL))
	}
	if cfg.Provider.Model != "" {
		provOpts = append(provOpts, provider.WithModel(cfg.Provider.Model))
	}
	prov := provider.NewOpenAI(cfg.Provider.APIKey, provOpts...)

	opts := []agent.Option{
		agent.WithLogger(logger),
		agent.WithRetrieveLimit(cfg.Agent.RetrieveLimit),
		agent.WithMaxIterations(cfg.Agent.MaxIterations),
	}
	if cfg.Agent.SystemPrompt != "" {
		opts = append(opts, agent.WithSystemPrompt(cfg.Agent.SystemPrompt))
	}

	a, err := agent.New(prov, reg, st, opts...)
	if err != nil {
		return err
	}

	result, err := a.Invoke(ctx, agent.UserInput(prompt))
	if err != nil {
		return err
	}

	final := result.Messages[len(result.Messages)-1]
	fmt.Println(final.Content)
	logger.Info("run finished",
		"messages", len(result.Messages),
		"selected_tool_ids", strings.Join(result.SelectedToolIDs, ","),
	)
	return nil
}

func openStore(cfg config.StoreConfig) (store.Store, func(), error) {
	embedder := store.HashEmbedder{Size: cfg.EmbeddingSize}
	switch cfg.Backend {
	case "sqlite":
		s, err := store.NewSQLiteStore(cfg.Path, embedder)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	default:
		return store.NewMemoryStore(embedder), func() {}, nil
	}
}
