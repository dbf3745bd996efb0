// Package services provides domain services that work across aggregates of the
// storefront: splitting a cart into per-seller orders and reconciling products and
// shops when an order changes status.
//
// The package includes:
//   - CartPartitioner: groups cart lines by shop, preserving cart order
//   - Reconciler: stock and balance effects of handover, delivery and refund
package services
