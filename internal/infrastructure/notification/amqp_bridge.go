package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/infrastructure/logging"
)

const publishTimeout = 5 * time.Second

// envelope é o formato trafegado na exchange entre instâncias
type envelope struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	UserIDs   []string        `json:"user_ids,omitempty"`
}

// AMQPBridge publica eventos numa exchange fanout para que todas as instâncias
// entreguem pelo seu Hub local.
type AMQPBridge struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	queue    string
	publish  sync.Mutex

	local  ports.Notifier
	logger ports.Logger
}

// NewAMQPBridge conecta ao broker e declara a exchange e a fila exclusiva desta instância
func NewAMQPBridge(url, exchange string, local ports.Notifier, logger ports.Logger) (*AMQPBridge, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	b := &AMQPBridge{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		local:    local,
		logger:   logging.Component(logger, "amqp_bridge"),
	}

	if err := b.setup(); err != nil {
		b.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}
	return b, nil
}

func (b *AMQPBridge) setup() error {
	err := b.channel.ExchangeDeclare(
		b.exchange, // name
		"fanout",   // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	// Fila anônima: cada instância recebe sua própria cópia
	q, err := b.channel.QueueDeclare(
		"",    // name
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	b.queue = q.Name

	if err := b.channel.QueueBind(b.queue, "", b.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// Notify publica o evento para todas as instâncias.
// Se a publicação falhar, entrega apenas localmente.
func (b *AMQPBridge) Notify(ctx context.Context, event ports.Event, userIDs ...string) bool {
	body, err := encodeEnvelope(event, userIDs)
	if err != nil {
		b.logger.Error("failed to marshal event", "type", event.Type, logging.FieldError, err)
		return false
	}

	if err := b.publishBody(ctx, body); err != nil {
		b.logger.Warn("failed to publish event, delivering locally", "type", event.Type, logging.FieldError, err)
		return b.local.Notify(ctx, event, userIDs...)
	}
	return true
}

func (b *AMQPBridge) publishBody(ctx context.Context, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	b.publish.Lock()
	defer b.publish.Unlock()

	return b.channel.PublishWithContext(
		ctx,
		b.exchange, // exchange
		"",         // routing key (ignorada em fanout)
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Timestamp:   time.Now(),
			Body:        body,
		},
	)
}

// Consume lê a fila desta instância e entrega cada evento pelo Hub local até o contexto acabar
func (b *AMQPBridge) Consume(ctx context.Context) error {
	msgs, err := b.channel.Consume(
		b.queue, // queue
		"",      // consumer
		true,    // auto-ack
		true,    // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	b.logger.Info("consuming events", "exchange", b.exchange, "queue", b.queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}
			b.deliver(ctx, delivery.Body)
		}
	}
}

func (b *AMQPBridge) deliver(ctx context.Context, body []byte) bool {
	event, userIDs, err := decodeEnvelope(body)
	if err != nil {
		b.logger.Error("dropping invalid message", logging.FieldError, err)
		return false
	}
	return b.local.Notify(ctx, event, userIDs...)
}

func (b *AMQPBridge) Close() error {
	if b.channel != nil {
		b.channel.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}

func encodeEnvelope(event ports.Event, userIDs []string) ([]byte, error) {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{
		Type:      event.Type,
		Data:      data,
		Timestamp: event.Timestamp,
		UserIDs:   userIDs,
	})
}

func decodeEnvelope(body []byte) (ports.Event, []string, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ports.Event{}, nil, err
	}
	if env.Type == "" {
		return ports.Event{}, nil, fmt.Errorf("missing event type")
	}

	event := ports.Event{Type: env.Type, Timestamp: env.Timestamp}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		event.Data = env.Data
	}
	return event, env.UserIDs, nil
}
