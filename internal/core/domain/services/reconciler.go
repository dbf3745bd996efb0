package services

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DefaultServiceChargeRate is the platform's cut of every delivered order.
var DefaultServiceChargeRate = decimal.RequireFromString("0.10")

// Reconciler applies the stock and balance side effects of order transitions.
//
// Key responsibilities:
//   - Handover: every line's quantity moves from product stock to soldOut, once
//   - Delivery: the shop is credited with the total minus the service charge
//   - Refund: whatever handover and delivery did is undone, once
//
// Business rules:
//   - The transition is checked before any aggregate is touched
//   - Per-line failures are joined and returned, never skipped
//   - On error the aggregates passed in must be discarded; callers run the reconciler
//     inside a unit of work and roll it back
//
// Example usage:
//
//	r := services.NewReconciler()
//	if err := r.HandOver(o, products); err != nil {
//	    return err // roll back
//	}
//	// persist o and products in the same transaction
type Reconciler struct {
	serviceChargeRate decimal.Decimal
}

// NewReconciler uses DefaultServiceChargeRate.
func NewReconciler() Reconciler {
	return Reconciler{serviceChargeRate: DefaultServiceChargeRate}
}

// ServiceCharge is the part of total kept by the platform.
func (r Reconciler) ServiceCharge(total kernel.Money) (kernel.Money, error) {
	return total.Percent(r.serviceChargeRate)
}

// HandOver moves the order to "Transferred to delivery partner" and deducts every line
// from its product. products must contain every product referenced by the order.
func (r Reconciler) HandOver(o *order.Order, products []*catalog.Product) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if _, err := o.Status().TransitionTo(order.TransferredToDeliveryPartner); err != nil {
		return err
	}
	if o.StockCommitted() {
		return order.ErrStockAlreadyCommitted
	}

	if err := r.applyLines(o.Lines(), products, (*catalog.Product).Sell); err != nil {
		return err
	}
	return o.TransferToDeliveryPartner()
}

// Deliver marks the order delivered and credits its shop. It returns the payout.
func (r Reconciler) Deliver(o *order.Order, shop *catalog.Shop, at time.Time) (kernel.Money, error) {
	if err := errors.Join(o.Validate(), shop.Validate()); err != nil {
		return kernel.Money{}, err
	}
	if !shop.ID().IsEqual(o.ShopID()) {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause(
			"shop is invalid",
			fmt.Errorf("order %s belongs to shop %s, not %s", o.ID(), o.ShopID(), shop.ID()),
		)
	}

	charge, err := r.ServiceCharge(o.TotalPrice())
	if err != nil {
		return kernel.Money{}, err
	}
	payout, err := o.TotalPrice().Sub(charge)
	if err != nil {
		return kernel.Money{}, err
	}

	if err = o.Deliver(at); err != nil {
		return kernel.Money{}, err
	}
	if err = shop.Credit(payout); err != nil {
		return kernel.Money{}, err
	}
	if err = o.RecordSettlement(payout); err != nil {
		return kernel.Money{}, err
	}

	return payout, nil
}

// SettleRefund reverses the effects of an accepted refund. Stock goes back only when it
// was committed, and the shop is debited only by what it was actually credited; a
// balance that no longer covers it leaves the rest as shop debt, so the restock is
// never held back by the debit. Calling
// it again on a settled order does nothing, so shop may be nil when nothing was paid out.
func (r Reconciler) SettleRefund(o *order.Order, products []*catalog.Product, shop *catalog.Shop) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.Status() != order.RefundSuccess {
		return errs.NewValueIsInvalidErrorWithCause(
			"refund settlement is invalid",
			fmt.Errorf("%s order has no accepted refund", o.Status().String()),
		)
	}
	if !o.NeedsRefundReconciliation() {
		return nil
	}

	if o.StockCommitted() {
		if err := r.applyLines(o.Lines(), products, (*catalog.Product).Return); err != nil {
			return err
		}
		if err := o.ReleaseStock(); err != nil {
			return err
		}
	}

	if o.SettledAmount().IsZero() {
		return nil
	}
	if err := shop.Validate(); err != nil {
		return err
	}
	if !shop.ID().IsEqual(o.ShopID()) {
		return errs.NewValueIsInvalidErrorWithCause(
			"shop is invalid",
			fmt.Errorf("order %s belongs to shop %s, not %s", o.ID(), o.ShopID(), shop.ID()),
		)
	}

	amount, err := o.ReverseSettlement()
	if err != nil {
		return err
	}
	return shop.Debit(amount)
}

func (r Reconciler) applyLines(
	lines []order.Line,
	products []*catalog.Product,
	apply func(*catalog.Product, int) error,
) error {
	byID := make(map[kernel.UUID]*catalog.Product, len(products))
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return err
		}
		byID[p.ID()] = p
	}

	var lineErrs []error
	for i, line := range lines {
		p, ok := byID[line.ProductID()]
		if !ok {
			lineErrs = append(lineErrs, errs.NewObjectNotFoundError("productId", line.ProductID()))
			continue
		}
		if err := apply(p, line.Quantity()); err != nil {
			lineErrs = append(lineErrs, fmt.Errorf("line %d (%s): %w", i, line.Name(), err))
		}
	}

	return errors.Join(lineErrs...)
}
