// Package kernel holds the primitives shared by every storefront aggregate.
//
// The package includes:
//   - UUID: identifier value object used for orders, products, shops and customers
//   - Money: non-negative monetary amount backed by an arbitrary-precision decimal
//
// Both are immutable values whose zero value is rejected by Validate, so an
// identifier or amount that never went through a constructor cannot reach persistence.
package kernel
