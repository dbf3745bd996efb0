package catalog

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrProductIsNotConstructed is returned when using an improperly initialized Product.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")
)

// Product is an item sold by exactly one shop.
//
// Business rules:
//   - stock and soldOut never go below zero
//   - a sale moves quantity from stock to soldOut, a return moves it back
//
// Example usage:
//
//	p, err := catalog.NewProduct(kernel.NewUUID(), shopID, "Desk lamp", 10)
//	if err != nil {
//	    // Handle construction error
//	}
//	err = p.Sell(2) // stock 8, soldOut 2
type Product struct {
	id      kernel.UUID
	shopID  kernel.UUID
	name    string
	stock   int
	soldOut int
	version int64

	isConstructed bool
}

// NewProduct creates a product with nothing sold yet.
func NewProduct(id, shopID kernel.UUID, name string, stock int) (*Product, error) {
	return RestoreProduct(id, shopID, name, stock, 0, 0)
}

// RestoreProduct rebuilds a persisted product.
func RestoreProduct(id, shopID kernel.UUID, name string, stock, soldOut int, version int64) (*Product, error) {
	p := &Product{
		id:            id,
		shopID:        shopID,
		name:          strings.TrimSpace(name),
		stock:         stock,
		soldOut:       soldOut,
		version:       version,
		isConstructed: true,
	}

	var nameErr, stockErr, soldOutErr error
	if p.name == "" {
		nameErr = errs.NewValueIsRequiredError("product name")
	}
	if stock < 0 {
		stockErr = errs.NewValueIsOutOfRangeError("stock", stock, 0, "unbounded")
	}
	if soldOut < 0 {
		soldOutErr = errs.NewValueIsOutOfRangeError("sold out", soldOut, 0, "unbounded")
	}

	if err := errors.Join(id.Validate(), shopID.Validate(), nameErr, stockErr, soldOutErr); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate reports whether the product was built by NewProduct or RestoreProduct.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// ShopID returns the shop selling the product.
func (p *Product) ShopID() kernel.UUID {
	return p.shopID
}

// Name returns the product name.
func (p *Product) Name() string {
	return p.name
}

// Stock returns the units on hand.
func (p *Product) Stock() int {
	return p.stock
}

// SoldOut returns the units handed over and not returned.
func (p *Product) SoldOut() int {
	return p.soldOut
}

// Version is the stored version the product was loaded with.
func (p *Product) Version() int64 {
	return p.version
}

// Sell takes quantity out of stock. The product is left untouched on error.
func (p *Product) Sell(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	if quantity > p.stock {
		return errs.NewValueIsOutOfRangeError("stock", p.stock-quantity, 0, "unbounded")
	}

	p.stock -= quantity
	p.soldOut += quantity
	return nil
}

// Return puts quantity back into stock, undoing an earlier Sell.
func (p *Product) Return(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	if quantity > p.soldOut {
		return errs.NewValueIsOutOfRangeError("sold out", p.soldOut-quantity, 0, "unbounded")
	}

	p.stock += quantity
	p.soldOut -= quantity
	return nil
}
