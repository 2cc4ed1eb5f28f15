package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/diagnosis/hotel-backoffice/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data any) error
	Close() error
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url,
		nats.Name("hotel-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Close() error {
	if err := n.conn.Drain(); err != nil {
		n.conn.Close()
		return err
	}
	return nil
}

// NopPublisher drops events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, subject string, _ any) error {
	logger.DebugContext(ctx, "Event dropped, no broker configured", "subject", subject)
	return nil
}

func (NopPublisher) Close() error { return nil }

const (
	ReservationCreated  = "reservation.created"
	ReservationCanceled = "reservation.canceled"
	RoomDeactivated     = "room.deactivated"
)

type ReservationCreatedEvent struct {
	ReservationID int64     `json:"reservation_id"`
	RoomID        int64     `json:"room_id"`
	GuestID       int64     `json:"guest_id"`
	CheckIn       string    `json:"check_in"`
	CheckOut      string    `json:"check_out"`
	GuestsCount   int       `json:"guests_count"`
	TotalPrice    string    `json:"total_price"`
	CreatedAt     time.Time `json:"created_at"`
}

type ReservationCanceledEvent struct {
	ReservationID int64     `json:"reservation_id"`
	RoomID        int64     `json:"room_id"`
	CheckIn       string    `json:"check_in"`
	CanceledAt    time.Time `json:"canceled_at"`
}

type RoomDeactivatedEvent struct {
	RoomID        int64     `json:"room_id"`
	Number        string    `json:"number"`
	DeactivatedAt time.Time `json:"deactivated_at"`
}
