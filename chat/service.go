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


package chat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/AmazeeLabs/chat-ai/ai"
	"github.com/AmazeeLabs/chat-ai/core"
	"github.com/AmazeeLabs/chat-ai/storage"
)

const defaultQueryVariants = 3

// Turn is one prior exchange of a conversation, passed back by the
// client with each request.
type Turn struct {
	User      string
	Assistant string
}

// Service generates answers from retrieved context and keeps the log of
// answered questions.
type Service struct {
	model    ai.ChatModel
	history  storage.HistoryRepository
	variants int
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithQueryVariants sets how many alternative phrasings MultiQuery asks
// the model for. Default is 3.
func WithQueryVariants(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.variants = n
		}
	}
}

// WithServiceLogger sets a custom logger.
// Default is slog.Default().
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger.With("component", "chat")
	}
}

// NewService creates a chat service. The history repository is required;
// every answered question is logged.
func NewService(model ai.ChatModel, history storage.HistoryRepository, opts ...ServiceOption) (*Service, error) {
	if model == nil {
		return nil, ErrChatModelRequired
	}
	if history == nil {
		return nil, ErrHistoryRepositoryRequired
	}

	s := &Service{
		model:    model,
		history:  history,
		variants: defaultQueryVariants,
		logger:   slog.Default().With("component", "chat"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Chat answers a question from retrieved context chunks, in the language
// of the given langcode. Prior turns are replayed so the model can
// resolve references like "and what about the second one?".
func (s *Service) Chat(ctx context.Context, question string, contextChunks []string, langcode string, turns []Turn) ([]string, error) {
	if question == "" {
		return nil, core.ErrEmptyQuery
	}

	messages := make([]ai.Message, 0, 2*len(turns)+2)
	messages = append(messages, ai.Message{
		Role:    ai.RoleSystem,
		Content: answerPrompt(contextChunks, LanguageName(langcode)),
	})
	for _, turn := range turns {
		if turn.User != "" {
			messages = append(messages, ai.Message{Role: ai.RoleUser, Content: turn.User})
		}
		if turn.Assistant != "" {
			messages = append(messages, ai.Message{Role: ai.RoleAssistant, Content: turn.Assistant})
		}
	}
	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: question})

	answers, err := s.model.GenerateChat(ctx, messages)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("question answered",
		"langcode", langcode,
		"contextChunks", len(contextChunks),
		"turns", len(turns))
	return answers, nil
}

// MultiQuery asks the model for alternative phrasings of a question.
// The variants come back one per line; blank lines are dropped. A model
// that returns nothing yields no variants and no error.
func (s *Service) MultiQuery(ctx context.Context, question, langcode string) ([]string, error) {
	messages := []ai.Message{
		{Role: ai.RoleUser, Content: multiQueryPrompt(question, LanguageName(langcode), s.variants)},
	}

	answers, err := s.model.GenerateChat(ctx, messages)
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return nil, nil
	}

	var variants []string
	for _, line := range strings.Split(answers[0], "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			variants = append(variants, line)
		}
	}
	return variants, nil
}

// RecordHistory appends an answered question to the history log.
func (s *Service) RecordHistory(ctx context.Context, userID, question, answer string) error {
	_, err := s.history.Append(ctx, &core.HistoryEntry{
		UserID:   userID,
		Query:    question,
		Response: answer,
	})
	return err
}

// HistoryByQuery returns past entries whose question contains the given
// substring, most recent first.
func (s *Service) HistoryByQuery(ctx context.Context, query string) ([]*core.HistoryEntry, error) {
	return s.history.FindByQuery(ctx, query)
}

// RecentHistory returns up to limit entries, most recent first.
func (s *Service) RecentHistory(ctx context.Context, limit int) ([]*core.HistoryEntry, error) {
	return s.history.Recent(ctx, limit)
}

// ClearHistory removes the entire history log.
func (s *Service) ClearHistory(ctx context.Context) error {
	return s.history.Clear(ctx)
}
