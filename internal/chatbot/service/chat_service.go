package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/nordiccodeworks/portfolio-backend/internal/chatbot/domain"
	"github.com/nordiccodeworks/portfolio-backend/internal/queue"
)

const (
	fallbackEN = "Sorry, I can't answer right now. Please try again in a moment."
	fallbackSV = "Tyvärr kan jag inte svara just nu. Försök igen om en stund."
)

// Detector classifies a message into a language tag.
type Detector interface {
	Detect(text string) string
}

// Completer generates a reply from the external completion provider.
type Completer interface {
	Complete(ctx context.Context, query, language string) (string, error)
}

// ResponseCache serves replies for recently seen identical queries.
type ResponseCache interface {
	Get(ctx context.Context, query string) (string, bool)
	Set(ctx context.Context, query, response string)
}

// LogPublisher enqueues chat-log persistence jobs.
type LogPublisher interface {
	PublishChatLog(ctx context.Context, job queue.ChatLogJob) error
}

// ChatService orchestrates one chatbot exchange: detect the language, answer
// from cache or the completion provider, and hand the log entry to the queue.
// The response path never waits for the log write.
type ChatService struct {
	detector  Detector
	completer Completer
	cache     ResponseCache
	publisher LogPublisher
}

// NewChatService creates a new chat service.
func NewChatService(detector Detector, completer Completer, cache ResponseCache, publisher LogPublisher) *ChatService {
	return &ChatService{
		detector:  detector,
		completer: completer,
		cache:     cache,
		publisher: publisher,
	}
}

// Handle answers a visitor query. On upstream failure the visitor receives a
// generic fallback message in the detected language and no log entry is
// written; the raw error never reaches the caller.
func (s *ChatService) Handle(ctx context.Context, query, sessionID string) (*domain.Reply, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	language := s.detector.Detect(query)

	if cached, ok := s.cache.Get(ctx, query); ok {
		s.enqueueLog(ctx, sessionID, query, cached, language)
		return &domain.Reply{Response: cached, Language: language}, nil
	}

	response, err := s.completer.Complete(ctx, query, language)
	if err != nil {
		if !errors.Is(err, domain.ErrUpstream) {
			err = errors.Join(domain.ErrUpstream, err)
		}
		log.Printf("[error] operation=chat_complete session_id=%s error=%v", sessionID, err)
		return &domain.Reply{Response: fallback(language), Language: language, Fallback: true}, nil
	}

	s.cache.Set(ctx, query, response)
	s.enqueueLog(ctx, sessionID, query, response, language)

	return &domain.Reply{Response: response, Language: language}, nil
}

// enqueueLog submits the persistence job. Enqueue failures are logged and
// swallowed: the visitor already has their answer.
func (s *ChatService) enqueueLog(ctx context.Context, sessionID, query, response, language string) {
	job := queue.ChatLogJob{
		SessionID: sessionID,
		Query:     query,
		Response:  response,
		Language:  language,
		Status:    domain.StatusSuccess,
		Timestamp: time.Now().UTC(),
	}
	if err := s.publisher.PublishChatLog(ctx, job); err != nil {
		log.Printf("[error] operation=chat_log_enqueue session_id=%s error=%v", sessionID, err)
	}
}

func fallback(language string) string {
	if language == "sv" {
		return fallbackSV
	}
	return fallbackEN
}
