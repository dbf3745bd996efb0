package order

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// ErrLineIsNotConstructed is returned when using an improperly initialized Line.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line is one cart item as it was when the order was placed. It is copied into the
// order and never follows later changes of the product.
//
// The shop id may be zero: an unassigned line is still a valid cart item, it is the
// checkout command that refuses to place it.
type Line struct {
	productID kernel.UUID
	shopID    kernel.UUID
	name      string
	quantity  int
	unitPrice kernel.Money

	guard guard.ConstructorGuard
}

// NewLine snapshots one cart entry. shopID may be zero; partitioning groups such
// lines as unassigned.
func NewLine(productID, shopID kernel.UUID, name string, quantity int, unitPrice kernel.Money) (Line, error) {
	line := Line{
		productID: productID,
		shopID:    shopID,
		name:      strings.TrimSpace(name),
		quantity:  quantity,
		unitPrice: unitPrice,
		guard:     guard.NewConstructorGuard(),
	}

	var nameErr, quantityErr error
	if line.name == "" {
		nameErr = errs.NewValueIsRequiredError("line name")
	}
	if quantity <= 0 {
		quantityErr = errs.NewValueIsOutOfRangeError("line quantity", quantity, 1, "unbounded")
	}

	if err := errors.Join(productID.Validate(), nameErr, quantityErr, unitPrice.Validate()); err != nil {
		return Line{}, err
	}
	return line, nil
}

// Validate reports whether the line was built by NewLine.
func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// ProductID returns the product the line was bought from.
func (l Line) ProductID() kernel.UUID {
	return l.productID
}

// ShopID returns the shop selling the product; zero when the client sent none.
func (l Line) ShopID() kernel.UUID {
	return l.shopID
}

// HasShop reports whether the line names the seller it belongs to.
func (l Line) HasShop() bool {
	return !l.shopID.IsZero()
}

// Name is the product name at checkout time.
func (l Line) Name() string {
	return l.name
}

// Quantity is always positive.
func (l Line) Quantity() int {
	return l.quantity
}

// UnitPrice is the price at checkout time.
func (l Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

// Subtotal is quantity × unit price.
func (l Line) Subtotal() kernel.Money {
	subtotal, err := l.unitPrice.MulInt(l.quantity)
	if err != nil {
		return kernel.ZeroMoney()
	}
	return subtotal
}
