// Package order models the per-seller order placed from a storefront cart.
//
// The package includes:
//   - Order: aggregate root holding the snapshotted cart lines, the copied checkout data
//     (shipping address, customer, payment info) and the reconciliation bookkeeping
//   - Status: closed set of lifecycle states with an explicit transition table
//   - Line, Customer, ShippingAddress, PaymentInfo: immutable value objects
//
// Lifecycle:
//
//	Processing ──> Transferred to delivery partner ──> Delivered
//	    │  └──────────────────────────────────────────────┘ │
//	    └──────────────> Refund requested <─────────────────┘
//	                          │
//	                          v
//	                    Refund Success
//
// Anything outside the table is rejected before the order is touched. The aggregate
// only records what happened to stock and seller balance (stockCommitted, settledAmount);
// the products and shops themselves are adjusted by services.Reconciler.
package order
