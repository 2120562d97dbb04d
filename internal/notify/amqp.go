package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"trashapp/internal/logger"
)

// AMQPNotifier publishes events as persistent JSON messages to a durable
// queue. A connection is dialed per publish so a broker restart never
// leaves the process holding a dead channel; publish volume here is low
// (one event per auth or lifecycle mutation).
type AMQPNotifier struct {
	URL   string
	Queue string
}

// NewAMQPNotifier creates a notifier for the given broker URL and queue.
func NewAMQPNotifier(url, queue string) *AMQPNotifier {
	return &AMQPNotifier{URL: url, Queue: queue}
}

// Publish sends the event. Errors are logged and returned; callers may
// ignore them since notification delivery is best-effort.
func (n *AMQPNotifier) Publish(ctx context.Context, event Event) error {
	conn, err := amqp.Dial(n.URL)
	if err != nil {
		logger.Get().Warnf("amqp: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Get().Warnf("amqp: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(n.Queue, true, false, false, false, nil); err != nil {
		logger.Get().Warnf("amqp: queue declare failed: %v", err)
		return err
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	body, err := json.Marshal(event)
	if err != nil {
		logger.Get().Warnf("amqp: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.Timestamp,
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", n.Queue, false, false, pub); err != nil {
		logger.Get().Warnf("amqp: publish failed: %v", err)
		return err
	}

	return nil
}
