// Package service provides the RabbitMQ publisher for task activity events.
// Publishing is best effort: errors are logged and returned so callers can
// ignore them without interrupting the request flow.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/todo-api/internal/queue"
)

// ActivityPublisher publishes TaskActivityEvents to the task.activity
// queue. The zero value is usable; each publish opens a short-lived
// connection so a broker outage never pins resources in the server.
type ActivityPublisher struct{}

// Publish sends a TaskActivityEvent to the durable task.activity queue.
// Messages are marked persistent so they survive broker restarts. The
// function never panics; any error is logged and returned.
func (ActivityPublisher) Publish(ctx context.Context, event queue.TaskActivityEvent) error {
	conn, err := amqp.Dial(queue.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queue.ActivityQueueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                      // default exchange
		queue.ActivityQueueName, // routing key = queue name
		false,                   // mandatory
		false,                   // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
