package queue

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// Publisher enqueues jobs on a topic. The underlying transport is any
// watermill publisher (NATS JetStream in production, gochannel in tests).
type Publisher struct {
	pub   message.Publisher
	topic string
}

// NewPublisher wraps a watermill publisher for the given topic.
func NewPublisher(pub message.Publisher, topic string) *Publisher {
	return &Publisher{pub: pub, topic: topic}
}

// PublishChatLog enqueues a chat-log persistence job. The call returns as
// soon as the broker accepts the message; execution is decoupled from the
// caller's response path.
func (p *Publisher) PublishChatLog(ctx context.Context, job ChatLogJob) error {
	if job.JobID == "" {
		job.JobID = uuid.New().String()
	}

	payload, err := job.Marshal()
	if err != nil {
		return fmt.Errorf("marshal chat log job: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	if err := p.pub.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("publish chat log job: %w", err)
	}
	return nil
}

// Close releases the underlying transport.
func (p *Publisher) Close() error {
	return p.pub.Close()
}
