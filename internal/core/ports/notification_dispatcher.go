package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// Audience tells the delivery side which template a notification needs.
type Audience string

const (
	AudienceCustomer Audience = "customer"
	AudienceShop     Audience = "shop"
)

// Recipient is the contact a notification is addressed to.
type Recipient struct {
	ID          kernel.UUID
	Name        string
	Email       string
	PhoneNumber string
}

// Notification summarises placed orders for one recipient. A customer notification
// carries every order of the checkout; a shop notification carries only that shop's.
type Notification struct {
	Audience  Audience
	Recipient Recipient
	Orders    []*order.Order
}

// NotificationDispatcher hands notifications to the delivery pipeline. Dispatch returns
// once every notification is accepted; actual email delivery happens later.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, notifications []Notification) error
}
