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


package chatai

import (
	"context"
	"errors"
	"log/slog"

	"github.com/AmazeeLabs/chat-ai/ai"
	"github.com/AmazeeLabs/chat-ai/ai/openai"
	"github.com/AmazeeLabs/chat-ai/chat"
	"github.com/AmazeeLabs/chat-ai/core"
	"github.com/AmazeeLabs/chat-ai/extract"
	"github.com/AmazeeLabs/chat-ai/index"
	"github.com/AmazeeLabs/chat-ai/retrieval"
	"github.com/AmazeeLabs/chat-ai/storage"
	"github.com/AmazeeLabs/chat-ai/storage/badger"
	"github.com/AmazeeLabs/chat-ai/vectorstore"
)

// Assistant wires the whole system together: local bookkeeping, the AI
// provider, the vector store, the indexing worker, and the chat service.
type Assistant struct {
	backend   *badger.Backend
	states    storage.IndexStateRepository
	queue     storage.QueueRepository
	history   storage.HistoryRepository
	provider  ai.Provider
	vectors   vectorstore.Store
	tracker   *index.Tracker
	worker    *index.Worker
	retriever *retrieval.Orchestrator
	chat      *chat.Service
	logger    *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(config *ai.Config) AssistantOption {
	return func(o *assistantOptions) {
		o.aiConfig = config
	}
}

// WithProvider replaces the AI provider entirely, bypassing the OpenAI
// client. Used by tests.
func WithProvider(provider ai.Provider) AssistantOption {
	return func(o *assistantOptions) {
		o.provider = provider
	}
}

// NewAssistant creates an assistant with its local database at filePath
// and the given vector store.
func NewAssistant(filePath string, vectors vectorstore.Store, opts ...AssistantOption) (*Assistant, error) {
	options := &assistantOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}
	return newAssistant(backend, vectors, options)
}

// NewMemoryAssistant creates an assistant backed by an in-memory
// database, for tests and local development.
func NewMemoryAssistant(vectors vectorstore.Store, opts ...AssistantOption) (*Assistant, error) {
	options := &assistantOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend("", true)
	if err != nil {
		return nil, err
	}
	return newAssistant(backend, vectors, options)
}

func newAssistant(backend *badger.Backend, vectors vectorstore.Store, options *assistantOptions) (*Assistant, error) {
	states, err := badger.NewIndexStateRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	queue, err := badger.NewQueueRepository(backend)
	if err != nil {
		states.Close()
		backend.Close()
		return nil, err
	}

	history, err := badger.NewHistoryRepository(backend)
	if err != nil {
		queue.Close()
		states.Close()
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			history.Close()
			queue.Close()
			states.Close()
			backend.Close()
			return nil, err
		}
	}

	tracker, err := index.NewTracker(states, queue, vectors)
	if err != nil {
		provider.Close()
		history.Close()
		queue.Close()
		states.Close()
		backend.Close()
		return nil, err
	}

	worker, err := index.NewWorker(tracker, extract.NewComposite(), provider.Embedder(), vectors)
	if err != nil {
		provider.Close()
		history.Close()
		queue.Close()
		states.Close()
		backend.Close()
		return nil, err
	}

	chatService, err := chat.NewService(provider.ChatModel(), history)
	if err != nil {
		worker.Release()
		provider.Close()
		history.Close()
		queue.Close()
		states.Close()
		backend.Close()
		return nil, err
	}

	retriever, err := retrieval.NewOrchestrator(provider.Embedder(), vectors, chatService)
	if err != nil {
		worker.Release()
		provider.Close()
		history.Close()
		queue.Close()
		states.Close()
		backend.Close()
		return nil, err
	}

	return &Assistant{
		backend:   backend,
		states:    states,
		queue:     queue,
		history:   history,
		provider:  provider,
		vectors:   vectors,
		tracker:   tracker,
		worker:    worker,
		retriever: retriever,
		chat:      chatService,
		logger:    slog.Default(),
	}, nil
}

// Close releases all resources.
func (a *Assistant) Close() error {
	a.worker.Release()

	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}

	if err := a.history.Close(); err != nil {
		a.logger.Error("error closing history repository", "err", err)
		return err
	}
	if err := a.queue.Close(); err != nil {
		a.logger.Error("error closing queue repository", "err", err)
		return err
	}
	if err := a.states.Close(); err != nil {
		a.logger.Error("error closing state repository", "err", err)
		return err
	}

	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Tracker exposes the indexing tracker.
func (a *Assistant) Tracker() *index.Tracker {
	return a.tracker
}

// Worker exposes the indexing worker.
func (a *Assistant) Worker() *index.Worker {
	return a.worker
}

// Chat exposes the chat service.
func (a *Assistant) Chat() *chat.Service {
	return a.chat
}

// Retriever exposes the retrieval orchestrator.
func (a *Assistant) Retriever() *retrieval.Orchestrator {
	return a.retriever
}

// Setup verifies that the assistant can reach its vector store.
func (a *Assistant) Setup(ctx context.Context) error {
	return a.vectors.Ping(ctx)
}

// Answer runs the full query path: retrieve context for the question,
// generate the answer, and log the exchange under userID. When the
// upstream model is unreachable the localized apology is returned
// instead, and still logged, so the widget always has something to show.
func (a *Assistant) Answer(ctx context.Context, userID, question, langcode string, turns []chat.Turn) (string, error) {
	contextChunks, err := a.retriever.Retrieve(ctx, question, langcode)
	if err != nil {
		if errors.Is(err, core.ErrUpstream) {
			return a.apologize(ctx, userID, question, langcode), nil
		}
		return "", err
	}

	answers, err := a.chat.Chat(ctx, question, contextChunks, langcode, turns)
	if err != nil {
		if errors.Is(err, core.ErrUpstream) {
			return a.apologize(ctx, userID, question, langcode), nil
		}
		return "", err
	}

	answer := chat.FormatAnswer(answers)
	if err := a.chat.RecordHistory(ctx, userID, question, answer); err != nil {
		a.logger.Error("failed to record history", "err", err)
	}
	return answer, nil
}

func (a *Assistant) apologize(ctx context.Context, userID, question, langcode string) string {
	answer := chat.FormatAnswer([]string{chat.Apology(langcode)})
	if err := a.chat.RecordHistory(ctx, userID, question, answer); err != nil {
		a.logger.Error("failed to record history", "err", err)
	}
	return answer
}
