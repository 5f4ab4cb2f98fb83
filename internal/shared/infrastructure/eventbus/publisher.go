package eventbus

import "context"

// Publisher sends raw event payloads to the bus under a routing key.
// Implementations: RabbitMQPublisher, InProcessEventBus, NoopPublisher.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
	Close() error
}
