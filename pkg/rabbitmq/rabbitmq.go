package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"

	"styleshop/internal/models"
)

const (
	// OrderEventsQueue carries order.created events for the fulfillment
	// process.
	OrderEventsQueue = "order_events"
	// FulfillmentQueue carries status updates coming back from fulfillment.
	FulfillmentQueue = "fulfillment_updates"
)

// OrderCreatedEvent is the message published after a checkout commits.
type OrderCreatedEvent struct {
	OrderID     uint      `json:"orderId"`
	UserID      uint      `json:"userId"`
	TotalAmount float64   `json:"totalAmount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// StatusUpdate is the fulfillment message applied back onto order rows.
type StatusUpdate struct {
	OrderID        uint   `json:"orderId"`
	Status         string `json:"status"`
	TrackingNumber string `json:"trackingNumber"`
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  zerolog.Logger
}

// NewClient connects to RabbitMQ, opens a channel and declares the order
// and fulfillment queues.
func NewClient(cfg Config, logger zerolog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	for _, queue := range []string{OrderEventsQueue, FulfillmentQueue} {
		_, err = ch.QueueDeclare(
			queue,
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
		}
	}

	logger.Info().Msg("RabbitMQ client connected, queues declared")

	return &Client{
		conn:    conn,
		channel: ch,
		logger:  logger,
	}, nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing RabbitMQ client: %v", errs)
	}
	return nil
}

// PublishOrderCreated publishes an order.created event to the order events
// queue. The order row is already committed when this runs, so the caller
// treats failures as log-and-continue.
func (c *Client) PublishOrderCreated(order *models.Order) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(OrderCreatedEvent{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal order created event: %w", err)
	}

	err = c.channel.Publish(
		"",               // exchange: default
		OrderEventsQueue, // routing key: the queue name
		false,            // mandatory
		false,            // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			MessageId:    uuid.New().String(),
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish order created event: %w", err)
	}

	c.logger.Debug().Uint("order_id", order.ID).Msg("order created event sent")
	return nil
}

// ConsumeStatusUpdates starts a goroutine that applies fulfillment status
// updates via the given handler. Messages are acked on success and
// requeued on handler error.
func (c *Client) ConsumeStatusUpdates(handler func(update StatusUpdate) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		FulfillmentQueue,
		"",    // consumer tag
		false, // auto-ack: manual acknowledgement
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register fulfillment consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			var update StatusUpdate
			if err := json.Unmarshal(msg.Body, &update); err != nil {
				c.logger.Error().Err(err).Msg("discarding malformed fulfillment message")
				// Malformed payloads will never parse, do not requeue.
				if nackErr := msg.Nack(false, false); nackErr != nil {
					c.logger.Error().Err(nackErr).Msg("failed to nack message")
				}
				continue
			}

			if err := handler(update); err != nil {
				c.logger.Error().Err(err).Uint("order_id", update.OrderID).
					Msg("failed to apply fulfillment update")
				if nackErr := msg.Nack(false, true); nackErr != nil {
					c.logger.Error().Err(nackErr).Msg("failed to nack message")
				}
				continue
			}

			if ackErr := msg.Ack(false); ackErr != nil {
				c.logger.Error().Err(ackErr).Msg("failed to ack message")
			}
		}
	}()

	return nil
}
