package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — тип для имени обменника.
type Exchange string

// Queue — тип для имени очереди.
type Queue string

// RoutingKey — тип для ключа маршрутизации.
type RoutingKey string

// ExchangeEvents — topic-обменник событий выполнения.
const ExchangeEvents Exchange = "conduit.events"

// Queues — имена очередей.
const (
	QueueRunEvents  Queue = "events.runs"
	QueueNodeEvents Queue = "events.nodes"
)

// Routing keys событий. Очереди подписаны по шаблонам run.* и node.*.
const (
	RoutingKeyRunStarted    RoutingKey = "run.started"
	RoutingKeyRunCompleted  RoutingKey = "run.completed"
	RoutingKeyRunFailed     RoutingKey = "run.failed"
	RoutingKeyNodeStarted   RoutingKey = "node.started"
	RoutingKeyNodeCompleted RoutingKey = "node.completed"
	RoutingKeyNodeFailed    RoutingKey = "node.failed"
)

// SetupTopology объявляет обменник и очереди событий.
//
// Сам Conduit ничего из очередей не читает: выполнение happens
// in-process. Очереди — точка подписки для внешних систем (аудит,
// нотификации, интеграции).
func SetupTopology(ctx context.Context, conn *Connection) error {
	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.ExchangeDeclare(
			string(ExchangeEvents), // name
			"topic",                // type
			true,                   // durable
			false,                  // auto-deleted
			false,                  // internal
			false,                  // no-wait
			nil,                    // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", ExchangeEvents, err)
		}

		bindings := []struct {
			queue   Queue
			pattern string
		}{
			{QueueRunEvents, "run.*"},
			{QueueNodeEvents, "node.*"},
		}

		for _, b := range bindings {
			_, err := ch.QueueDeclare(
				string(b.queue), // name
				true,            // durable
				false,           // delete when unused
				false,           // exclusive
				false,           // no-wait
				nil,             // arguments
			)
			if err != nil {
				return fmt.Errorf("declare queue %s: %w", b.queue, err)
			}

			err = ch.QueueBind(
				string(b.queue),        // queue name
				b.pattern,              // routing key pattern
				string(ExchangeEvents), // exchange
				false,                  // no-wait
				nil,                    // arguments
			)
			if err != nil {
				return fmt.Errorf("bind queue %s: %w", b.queue, err)
			}
		}

		return nil
	})
}

// TopologyInfo возвращает описание топологии для логирования.
func TopologyInfo() string {
	return `
  Conduit RabbitMQ Topology:

    conduit.events (topic)
    ├── events.runs  [binding: run.*]
    │       run.started / run.completed / run.failed
    └── events.nodes [binding: node.*]
            node.started / node.completed / node.failed

    Consumers: external systems only (audit, notifications).
  `
}
