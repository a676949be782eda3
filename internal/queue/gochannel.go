package queue

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// NewInProcessPubSub returns an in-memory pub/sub. It backs local development
// without a broker and the queue round-trip tests.
func NewInProcessPubSub(logger watermill.LoggerAdapter) *gochannel.GoChannel {
	if logger == nil {
		logger = watermill.NewStdLogger(false, false)
	}
	return gochannel.NewGoChannel(gochannel.Config{}, logger)
}
