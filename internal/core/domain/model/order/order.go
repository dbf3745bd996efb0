package order

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder
	// or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrStockAlreadyCommitted is returned when a second handover would deduct stock twice.
	ErrStockAlreadyCommitted = errors.New("order stock is already committed")
)

// Order is one seller's share of a checkout. It is the aggregate root for the lifecycle:
// every status change goes through one of its transition methods.
//
// Invariants:
//   - id, shopID, customer, shipping address and total price are valid
//   - there is at least one line and every line belongs to shopID
//   - stockCommitted is true exactly between a handover and the refund that reverses it
//   - settledAmount is the seller credit not yet reversed (zero before delivery)
type Order struct {
	id              kernel.UUID
	shopID          kernel.UUID
	lines           []Line
	shippingAddress ShippingAddress
	customer        Customer
	totalPrice      kernel.Money
	paymentInfo     PaymentInfo
	status          Status
	stockCommitted  bool
	settledAmount   kernel.Money
	createdAt       time.Time
	deliveredAt     *time.Time
	version         int64

	isConstructed bool
}

// NewOrder places an order in Processing status.
//
//	o, err := order.NewOrder(kernel.NewUUID(), shopID, lines, address, customer, total, payment, time.Now())
//	if err != nil {
//	    // one or more validation errors joined together
//	}
func NewOrder(
	id kernel.UUID,
	shopID kernel.UUID,
	lines []Line,
	shippingAddress ShippingAddress,
	customer Customer,
	totalPrice kernel.Money,
	paymentInfo PaymentInfo,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Processing,
		paymentInfo:   paymentInfo,
		settledAmount: kernel.ZeroMoney(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setLines(shopID, lines),
		o.setShippingAddress(shippingAddress),
		o.setCustomer(customer),
		o.setTotalPrice(totalPrice),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the full persisted state of an order, used to rebuild it from storage.
type Snapshot struct {
	ID              kernel.UUID
	ShopID          kernel.UUID
	Lines           []Line
	ShippingAddress ShippingAddress
	Customer        Customer
	TotalPrice      kernel.Money
	PaymentInfo     PaymentInfo
	Status          Status
	StockCommitted  bool
	SettledAmount   kernel.Money
	CreatedAt       time.Time
	DeliveredAt     *time.Time
	Version         int64
}

// RestoreOrder rebuilds an order in any status. It applies the same validation as
// NewOrder plus the status checks that only make sense for a persisted order.
func RestoreOrder(s Snapshot) (*Order, error) {
	o, err := NewOrder(s.ID, s.ShopID, s.Lines, s.ShippingAddress, s.Customer, s.TotalPrice, s.PaymentInfo, s.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err = s.Status.Validate(); err != nil {
		return nil, err
	}
	if err = s.SettledAmount.Validate(); err != nil {
		return nil, err
	}
	if s.Version < 0 {
		return nil, errs.NewValueIsOutOfRangeError("version", s.Version, 0, "unbounded")
	}

	o.status = s.Status
	o.stockCommitted = s.StockCommitted
	o.settledAmount = s.SettledAmount
	o.deliveredAt = s.DeliveredAt
	o.version = s.Version
	return o, nil
}

// Validate ensures the order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by ID.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ShopID is the seller every line of this order belongs to.
func (o *Order) ShopID() kernel.UUID {
	return o.shopID
}

// Lines returns a copy of the snapshotted cart lines in submission order.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// ShippingAddress returns where the order ships to.
func (o *Order) ShippingAddress() ShippingAddress {
	return o.shippingAddress
}

// Customer returns the buyer.
func (o *Order) Customer() Customer {
	return o.customer
}

// TotalPrice is the amount the shop is settled against.
func (o *Order) TotalPrice() kernel.Money {
	return o.totalPrice
}

// PaymentInfo returns the client-side payment result.
func (o *Order) PaymentInfo() PaymentInfo {
	return o.paymentInfo
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// StockCommitted reports whether product stock is currently deducted for this order.
func (o *Order) StockCommitted() bool {
	return o.stockCommitted
}

// SettledAmount is the seller credit booked at delivery and not yet reversed.
func (o *Order) SettledAmount() kernel.Money {
	return o.settledAmount
}

// CreatedAt returns when the checkout placed the order.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DeliveredAt is nil until the order is delivered.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// Version is the optimistic concurrency token of the persisted row.
func (o *Order) Version() int64 {
	return o.version
}

// TransferToDeliveryPartner hands the goods to the carrier. The caller is expected to
// deduct the line quantities from stock in the same unit of work.
func (o *Order) TransferToDeliveryPartner() error {
	if o.stockCommitted {
		return ErrStockAlreadyCommitted
	}

	next, err := o.status.TransitionTo(TransferredToDeliveryPartner)
	if err != nil {
		return err
	}

	o.status = next
	o.stockCommitted = true
	return nil
}

// Deliver closes the success path: deliveredAt is stamped and the payment is marked
// as succeeded. The payout is recorded separately with RecordSettlement.
func (o *Order) Deliver(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("delivered at")
	}

	next, err := o.status.TransitionTo(Delivered)
	if err != nil {
		return err
	}

	deliveredAt := at
	o.status = next
	o.deliveredAt = &deliveredAt
	o.paymentInfo = o.paymentInfo.WithStatus(PaymentSucceeded)
	return nil
}

// RecordSettlement books the amount credited to the seller for this order.
func (o *Order) RecordSettlement(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	if o.status != Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"settlement is invalid",
			fmt.Errorf("%s order cannot be settled", o.status.String()),
		)
	}
	if !o.settledAmount.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("settlement is invalid", errors.New("order is already settled"))
	}

	o.settledAmount = amount
	return nil
}

// RequestRefund records the buyer's intent. Nothing else changes.
func (o *Order) RequestRefund() error {
	next, err := o.status.TransitionTo(RefundRequested)
	if err != nil {
		return err
	}

	o.status = next
	return nil
}

// AcceptRefund moves the order into Refund Success. Reversing stock and payout is a
// separate step (ReleaseStock, ReverseSettlement) so it can run after the response.
func (o *Order) AcceptRefund() error {
	next, err := o.status.TransitionTo(RefundSuccess)
	if err != nil {
		return err
	}

	o.status = next
	return nil
}

// ReleaseStock clears the committed-stock mark after the quantities went back to stock.
func (o *Order) ReleaseStock() error {
	if o.status != RefundSuccess {
		return errs.NewValueIsInvalidErrorWithCause(
			"stock release is invalid",
			fmt.Errorf("%s order cannot release stock", o.status.String()),
		)
	}
	if !o.stockCommitted {
		return errs.NewValueIsInvalidErrorWithCause("stock release is invalid", errors.New("no stock is committed"))
	}

	o.stockCommitted = false
	return nil
}

// ReverseSettlement zeroes the booked payout and returns what has to be taken back
// from the seller.
func (o *Order) ReverseSettlement() (kernel.Money, error) {
	if o.status != RefundSuccess {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause(
			"settlement reversal is invalid",
			fmt.Errorf("%s order cannot reverse its settlement", o.status.String()),
		)
	}

	reversed := o.settledAmount
	o.settledAmount = kernel.ZeroMoney()
	return reversed, nil
}

// NeedsRefundReconciliation reports whether an accepted refund still has stock or
// payout to reverse.
func (o *Order) NeedsRefundReconciliation() bool {
	return o.status == RefundSuccess && (o.stockCommitted || !o.settledAmount.IsZero())
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setLines(shopID kernel.UUID, lines []Line) error {
	if err := shopID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shop id", err)
	}
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("order lines")
	}

	for i, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
		if !line.ShopID().IsEqual(shopID) {
			return errs.NewValueIsInvalidErrorWithCause(
				"order lines are invalid",
				fmt.Errorf("line %d belongs to shop %s, not %s", i, line.ShopID(), shopID),
			)
		}
	}

	o.shopID = shopID
	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)
	return nil
}

func (o *Order) setShippingAddress(address ShippingAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.shippingAddress = address
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setTotalPrice(total kernel.Money) error {
	if err := total.Validate(); err != nil {
		return err
	}
	o.totalPrice = total
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	o.createdAt = createdAt
	return nil
}
