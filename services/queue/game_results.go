package queue

import (
	"context"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// GameResultQueue publishes finished games to a durable RabbitMQ queue for
// downstream consumers (stats, notifications).
type GameResultQueue struct {
	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
	q    amqp.Queue
}

func NewGameResultQueue(url, name string) (*GameResultQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("fail to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("fail to open channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		name,  // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("fail to declare queue %s: %w", name, err)
	}

	log.Printf("[QUEUE] Publishing game results to %s", q.Name)
	return &GameResultQueue{conn: conn, ch: ch, q: q}, nil
}

// Publish sends one persistent JSON message.
func (gq *GameResultQueue) Publish(ctx context.Context, body []byte) error {
	gq.mu.Lock()
	defer gq.mu.Unlock()

	err := gq.ch.PublishWithContext(ctx,
		"",        // exchange
		gq.q.Name, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("fail to publish message: %w", err)
	}
	return nil
}

func (gq *GameResultQueue) Close() error {
	gq.mu.Lock()
	defer gq.mu.Unlock()
	if err := gq.ch.Close(); err != nil {
		gq.conn.Close()
		return err
	}
	return gq.conn.Close()
}
