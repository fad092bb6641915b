package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// PushExchange is consumed by the external WebSocket relay; the relay resolves
// the agent id to open sockets and delivers. Delivery is best-effort.
const PushExchange = "moltdin.push"

type PushEvent struct {
	AgentID uuid.UUID `json:"agent_id"`
}

type RabbitMQ struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func New(connString string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(connString)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(PushExchange, "fanout", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &RabbitMQ{
		conn: conn,
		ch:   ch,
	}, nil
}

// PublishPush notifies the relay that agentID has something new. Callers must
// treat this as fire-and-forget: log on error, never retry.
func (r *RabbitMQ) PublishPush(ctx context.Context, agentID uuid.UUID) error {
	body, err := json.Marshal(PushEvent{AgentID: agentID})
	if err != nil {
		return err
	}

	return r.ch.PublishWithContext(ctx, PushExchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

func (r *RabbitMQ) Close() {
	r.ch.Close()
	r.conn.Close()
}
