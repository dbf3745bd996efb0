// Package notifier publishes order notifications to Kafka. A mail worker downstream
// renders and sends them; this side only guarantees the broker accepted the batch.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the notifier uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Notifier implements ports.NotificationDispatcher.
type Notifier struct {
	writer messageWriter
	logger *slog.Logger
	now    func() time.Time
}

// NewWriter builds a synchronous writer that waits for all in-sync replicas, so a
// nil error from Dispatch means the notifications are durable.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

// NewNotifier sends through writer; NewWriter builds the production one.
func NewNotifier(writer messageWriter, logger *slog.Logger) *Notifier {
	return &Notifier{
		writer: writer,
		logger: logger.With("component", "notifier"),
		now:    time.Now,
	}
}

// Dispatch writes one message per notification in a single batch, keyed by recipient
// so that one recipient's messages stay ordered.
func (n *Notifier) Dispatch(ctx context.Context, notifications []ports.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	sentAt := n.now().UTC()
	msgs := make([]kafka.Message, 0, len(notifications))
	for _, notification := range notifications {
		value, err := json.Marshal(newMessage(notification, sentAt))
		if err != nil {
			return fmt.Errorf("encode %s notification: %w", notification.Audience, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(notification.Recipient.ID.String()),
			Value: value,
			Time:  sentAt,
			Headers: []kafka.Header{
				{Key: "audience", Value: []byte(notification.Audience)},
			},
		})
	}

	if err := n.writer.WriteMessages(ctx, msgs...); err != nil {
		n.logger.Error("failed to publish notifications", "count", len(msgs), "error", err)
		return fmt.Errorf("publish notifications: %w", err)
	}

	n.logger.Debug("notifications published", "count", len(msgs))
	return nil
}

// Close flushes and closes the writer.
func (n *Notifier) Close() error {
	return n.writer.Close()
}

type message struct {
	Audience  string      `json:"audience"`
	Recipient recipient   `json:"recipient"`
	Orders    []orderInfo `json:"orders"`
	Total     string      `json:"total"`
	SentAt    time.Time   `json:"sentAt"`
}

type recipient struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type orderInfo struct {
	ID         string     `json:"id"`
	ShopID     string     `json:"shopId"`
	Status     string     `json:"status"`
	TotalPrice string     `json:"totalPrice"`
	Items      []itemInfo `json:"items"`
}

type itemInfo struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

func newMessage(n ports.Notification, sentAt time.Time) message {
	orders := make([]orderInfo, 0, len(n.Orders))
	total := kernel.ZeroMoney()
	for _, o := range n.Orders {
		orders = append(orders, newOrderInfo(o))
		total = total.Add(o.TotalPrice())
	}

	return message{
		Audience: string(n.Audience),
		Recipient: recipient{
			ID:          n.Recipient.ID.String(),
			Name:        n.Recipient.Name,
			Email:       n.Recipient.Email,
			PhoneNumber: n.Recipient.PhoneNumber,
		},
		Orders: orders,
		Total:  total.String(),
		SentAt: sentAt,
	}
}

func newOrderInfo(o *order.Order) orderInfo {
	lines := o.Lines()
	items := make([]itemInfo, 0, len(lines))
	for _, line := range lines {
		items = append(items, itemInfo{
			ProductID: line.ProductID().String(),
			Name:      line.Name(),
			Quantity:  line.Quantity(),
			UnitPrice: line.UnitPrice().String(),
		})
	}

	return orderInfo{
		ID:         o.ID().String(),
		ShopID:     o.ShopID().String(),
		Status:     o.Status().String(),
		TotalPrice: o.TotalPrice().String(),
		Items:      items,
	}
}
