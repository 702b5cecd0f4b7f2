package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaiso/Conduit/internal/domain"
)

// Publisher публикует события выполнения в RabbitMQ.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: logger,
	}
}

// Message — конверт публикуемого события.
type Message struct {
	// ID — уникальный идентификатор сообщения.
	ID string `json:"id"`

	// RunID — run, к которому относится событие.
	RunID uuid.UUID `json:"run_id"`

	// WorkflowID — workflow этого run.
	WorkflowID uuid.UUID `json:"workflow_id"`

	// Event — событие выполнения.
	Event domain.ExecutionEvent `json:"event"`

	// Timestamp — время публикации.
	Timestamp time.Time `json:"timestamp"`
}

// PublishEvent публикует событие выполнения в conduit.events.
//
// Маршрутизация по типу события: run.* для событий workflow,
// node.* для событий узлов.
func (p *Publisher) PublishEvent(ctx context.Context, runID, workflowID uuid.UUID, event domain.ExecutionEvent) error {
	key, ok := routingKeyFor(event.Type)
	if !ok {
		return fmt.Errorf("no routing key for event type %q", event.Type)
	}

	msg := &Message{
		ID:         uuid.New().String(),
		RunID:      runID,
		WorkflowID: workflowID,
		Event:      event,
		Timestamp:  time.Now(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	return p.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			string(ExchangeEvents), // exchange
			string(key),            // routing key
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent, // сообщение переживёт рестарт RabbitMQ
				MessageId:    msg.ID,
				Timestamp:    msg.Timestamp,
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to %s/%s: %w", ExchangeEvents, key, err)
		}

		p.logger.Debug("published event",
			"routing_key", key,
			"run_id", runID,
			"event_type", event.Type,
			"node_id", event.NodeID,
		)

		return nil
	})
}

// routingKeyFor сопоставляет тип события с ключом маршрутизации.
func routingKeyFor(t domain.EventType) (RoutingKey, bool) {
	switch t {
	case domain.EventWorkflowStart:
		return RoutingKeyRunStarted, true
	case domain.EventWorkflowComplete:
		return RoutingKeyRunCompleted, true
	case domain.EventWorkflowError:
		return RoutingKeyRunFailed, true
	case domain.EventNodeStart:
		return RoutingKeyNodeStarted, true
	case domain.EventNodeComplete:
		return RoutingKeyNodeCompleted, true
	case domain.EventNodeError:
		return RoutingKeyNodeFailed, true
	default:
		return "", false
	}
}
