// Package catalog holds the two aggregates whose state is reconciled by order transitions.
//
// The package includes:
//   - Product: sellable item with an on-hand stock counter and a sold counter
//   - Shop: seller account with an available balance credited on delivery
//
// Both aggregates carry a version used by the repositories for compare-and-swap updates;
// the domain never bumps it itself.
package catalog
