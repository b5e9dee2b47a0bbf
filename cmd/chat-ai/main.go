// Copyright 2025 Amazee Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	chatai "github.com/AmazeeLabs/chat-ai"
	"github.com/AmazeeLabs/chat-ai/ai"
	"github.com/AmazeeLabs/chat-ai/core"
	"github.com/AmazeeLabs/chat-ai/index"
	"github.com/AmazeeLabs/chat-ai/server"
	"github.com/AmazeeLabs/chat-ai/vectorstore/supabase"
)

func main() {
	// Optional .env file for local development
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "chat-ai",
		Usage: "Retrieval-augmented chat assistant for website content",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   "./chat-ai-db",
			},
			&cli.StringFlag{
				Name:    "supabase-url",
				Usage:   "Supabase project URL",
				EnvVars: []string{"SUPABASE_URL"},
			},
			&cli.StringFlag{
				Name:    "supabase-key",
				Usage:   "Supabase service key",
				EnvVars: []string{"SUPABASE_KEY"},
			},
			&cli.StringFlag{
				Name:    "openai-host",
				Usage:   "OpenAI-compatible API host",
				EnvVars: []string{"OPENAI_HOST"},
			},
			&cli.StringFlag{
				Name:    "openai-key",
				Usage:   "OpenAI API key",
				EnvVars: []string{"OPENAI_API_KEY"},
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name",
			},
			&cli.StringFlag{
				Name:  "chat-model",
				Usage: "Chat model name",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the chat completion endpoint and drain the queue periodically",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address",
						Value: ":8080",
					},
					&cli.StringSliceFlag{
						Name:  "allowed-origin",
						Usage: "Origin allowed to call the completion endpoint (repeatable)",
					},
					&cli.DurationFlag{
						Name:  "drain-interval",
						Usage: "How often the indexing queue is drained",
						Value: time.Minute,
					},
				},
			},
			{
				Name:      "enqueue",
				Usage:     "Queue a content item for indexing",
				ArgsUsage: "<owner-id>",
				Action:    enqueueCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "owner-type",
						Usage: "Owner entity type",
						Value: "node",
					},
					&cli.StringFlag{
						Name:     "category",
						Usage:    "Owner category (bundle)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "langcode",
						Usage: "Language code of the content",
						Value: "en",
					},
					&cli.StringFlag{
						Name:     "source",
						Usage:    "Content source (URL or file path)",
						Required: true,
					},
				},
			},
			{
				Name:   "drain",
				Usage:  "Process all pending queue items now",
				Action: drainCommand,
			},
			{
				Name:   "status",
				Usage:  "Show indexing totals",
				Action: statusCommand,
			},
			{
				Name:      "ask",
				Usage:     "Ask a question against the indexed content",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "langcode",
						Usage: "Language code for the answer",
						Value: "en",
					},
				},
			},
			{
				Name:   "clear",
				Usage:  "Remove indexed content from the vector store and local state",
				Action: clearCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "owner-type",
						Usage: "Limit clearing to one owner type and category",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Limit clearing to one owner type and category",
					},
					&cli.StringFlag{
						Name:  "except",
						Usage: "When clearing everything, keep this owner type in the vector store",
					},
				},
			},
			{
				Name:   "history",
				Usage:  "Show the log of answered questions",
				Action: historyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "query",
						Usage: "Only show entries whose question contains this text",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries to show",
						Value: 20,
					},
				},
			},
			{
				Name:   "setup",
				Usage:  "Verify connectivity to the vector store",
				Action: setupCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newAssistant(c *cli.Context) (*chatai.Assistant, error) {
	vectors, err := supabase.NewClient(c.String("supabase-url"), c.String("supabase-key"))
	if err != nil {
		return nil, fmt.Errorf("failed to create vector store client: %w", err)
	}

	var configOpts []ai.ConfigOption
	if host := c.String("openai-host"); host != "" {
		configOpts = append(configOpts, ai.WithHost(host))
	}
	if key := c.String("openai-key"); key != "" {
		configOpts = append(configOpts, ai.WithAPIKey(key))
	}
	if model := c.String("embedding-model"); model != "" {
		configOpts = append(configOpts, ai.WithEmbeddingModel(model))
	}
	if model := c.String("chat-model"); model != "" {
		configOpts = append(configOpts, ai.WithChatModel(model))
	}

	assistant, err := chatai.NewAssistant(c.String("db"), vectors,
		chatai.WithAIConfig(ai.NewConfig(configOpts...)))
	if err != nil {
		return nil, fmt.Errorf("failed to create assistant: %w", err)
	}
	return assistant, nil
}

func serveCommand(c *cli.Context) error {
	assistant, err := newAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go assistant.Worker().RunEvery(ctx, c.Duration("drain-interval"))

	srv := server.New(server.Config{
		Addr:           c.String("addr"),
		AllowedOrigins: c.StringSlice("allowed-origin"),
	}, assistant, slog.Default())

	return srv.Run(ctx)
}

func enqueueCommand(c *cli.Context) error {
	ownerID := c.Args().First()
	if ownerID == "" {
		return fmt.Errorf("owner-id argument is required")
	}

	assistant, err := newAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	item := &core.QueueItem{
		Key: core.IndexKey{
			OwnerID:   ownerID,
			OwnerType: c.String("owner-type"),
			Category:  c.String("category"),
			Language:  c.String("langcode"),
		},
		Source: c.String("source"),
		Policy: core.DefaultChunkPolicy(),
	}

	queued, err := assistant.Tracker().Enqueue(c.Context, item)
	if err != nil {
		return fmt.Errorf("failed to enqueue: %w", err)
	}
	if queued {
		fmt.Fprintf(os.Stderr, "Queued %s\n", item.Key.String())
	} else {
		fmt.Fprintf(os.Stderr, "%s is already pending\n", item.Key.String())
	}
	return nil
}

func drainCommand(c *cli.Context) error {
	assistant, err := newAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	pending, err := assistant.Tracker().Pending(c.Context)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Fprintln(os.Stderr, "Queue is empty")
		return nil
	}

	progress := index.NewProgressTracker(os.Stderr, len(pending), 1)
	worker := assistant.Worker()
	if err := index.WithProgress(progress)(worker); err != nil {
		return err
	}

	indexed, err := worker.Drain(c.Context)
	if err != nil {
		return fmt.Errorf("drain failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d of %d items in %s\n", indexed, len(pending), progress.Elapsed().Round(time.Millisecond))
	return nil
}

func statusCommand(c *cli.Context) error {
	assistant, err := newAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	status, err := assistant.Tracker().Totals(c.Context)
	if err != nil {
		return err
	}

	fmt.Printf("Tracked: %d\nIndexed: %d\nQueued:  %d\n", status.Total, status.Indexed, status.Queued)
	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("question argument is required")
	}

	assistant, err := newAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	answer, err := assistant.Answer(c.Context, "cli", question, c.String("langcode"), nil)
	if err != nil {
		return fmt.Errorf("failed to answer: %w", err)
	}

	fmt.Println(answer)
	return nil
}

func clearCommand(c *cli.Context) error {
	assistant, err := newAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	ownerType := c.String("owner-type")
	category := c.String("category")
	if (ownerType == "") != (category == "") {
		return fmt.Errorf("owner-type and category must be used together")
	}

	if ownerType != "" {
		if err := assistant.Tracker().ClearByCategory(c.Context, ownerType, category); err != nil {
			return fmt.Errorf("failed to clear category: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Cleared %s/%s\n", ownerType, category)
		return nil
	}

	if err := assistant.Tracker().ClearAll(c.Context, c.String("except")); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Cleared index")
	return nil
}

func historyCommand(c *cli.Context) error {
	assistant, err := newAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	var entries []*core.HistoryEntry
	if query := c.String("query"); query != "" {
		entries, err = assistant.Chat().HistoryByQuery(c.Context, query)
	} else {
		entries, err = assistant.Chat().RecentHistory(c.Context, c.Int("limit"))
	}
	if err != nil {
		return err
	}

	for _, entry := range entries {
		fmt.Printf("[%s] %s\n  Q: %s\n  A: %s\n", entry.Created.Format(time.RFC3339), entry.UserID, entry.Query, entry.Response)
	}
	return nil
}

func setupCommand(c *cli.Context) error {
	assistant, err := newAssistant(c)
	if err != nil {
		return err
	}
	defer assistant.Close()

	if err := assistant.Setup(c.Context); err != nil {
		return fmt.Errorf("vector store is not reachable: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Vector store is reachable")
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
