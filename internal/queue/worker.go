package queue

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/nordiccodeworks/portfolio-backend/internal/chatbot/domain"
)

// ChatLogWriter is the slice of the chat repository the worker needs.
type ChatLogWriter interface {
	Insert(ctx context.Context, entry *domain.ChatLog) error
}

// Worker consumes chat-log jobs and persists them. Insert failures nack the
// message so the broker redelivers it; malformed payloads are dropped.
type Worker struct {
	sub    message.Subscriber
	topic  string
	logs   ChatLogWriter
	logger watermill.LoggerAdapter
}

// NewWorker wires a subscriber to the chat log store.
func NewWorker(sub message.Subscriber, topic string, logs ChatLogWriter, logger watermill.LoggerAdapter) *Worker {
	if logger == nil {
		logger = watermill.NewStdLogger(false, false)
	}
	return &Worker{sub: sub, topic: topic, logs: logs, logger: logger}
}

// Router builds the watermill router for this worker. The caller runs it and
// owns its lifecycle.
func (w *Worker) Router() (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, w.logger)
	if err != nil {
		return nil, err
	}
	router.AddNoPublisherHandler("chatlog_persist", w.topic, w.sub, w.Handle)
	return router, nil
}

// Handle processes one chat-log job message.
func (w *Worker) Handle(msg *message.Message) error {
	job, err := UnmarshalChatLogJob(msg.Payload)
	if err != nil {
		// A payload that cannot be decoded will never succeed; ack and move on.
		log.Printf("[error] operation=chatlog_persist msg_id=%s error=bad payload: %v", msg.UUID, err)
		return nil
	}

	entry := &domain.ChatLog{
		SessionID: job.SessionID,
		Query:     job.Query,
		Response:  job.Response,
		Language:  job.Language,
		Status:    job.Status,
		Timestamp: job.Timestamp,
	}

	if err := w.logs.Insert(msg.Context(), entry); err != nil {
		log.Printf("[error] operation=chatlog_persist job_id=%s error=%v", job.JobID, err)
		return err
	}
	return nil
}
