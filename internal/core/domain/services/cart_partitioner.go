package services

import (
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// UnassignedShopID is the partition key for cart lines that do not name a shop.
var UnassignedShopID = kernel.UUID{}

// OrderGroup is the set of cart lines that become one order.
type OrderGroup struct {
	ShopID kernel.UUID
	Lines  []order.Line
}

// IsUnassigned reports whether the group collects lines without a shop.
func (g OrderGroup) IsUnassigned() bool {
	return g.ShopID.IsEqual(UnassignedShopID)
}

// Subtotal is the sum of quantity × unit price over the group.
func (g OrderGroup) Subtotal() kernel.Money {
	total := kernel.ZeroMoney()
	for _, line := range g.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// CartPartitioner splits a cart into one group per shop.
//
// Groups come out in the order their shop first appears in the cart, and lines keep
// their relative order inside a group. Lines without a shop are collected under
// UnassignedShopID rather than dropped.
//
// Example usage:
//
//	groups := services.NewCartPartitioner().Partition(lines)
//	for _, g := range groups {
//	    if g.IsUnassigned() {
//	        // reject the cart
//	    }
//	}
type CartPartitioner struct{}

// NewCartPartitioner creates a partitioner; it holds no state.
func NewCartPartitioner() CartPartitioner {
	return CartPartitioner{}
}

// Partition never fails; an empty cart yields no groups.
func (CartPartitioner) Partition(lines []order.Line) []OrderGroup {
	groups := make([]OrderGroup, 0)
	index := make(map[kernel.UUID]int)

	for _, line := range lines {
		key := UnassignedShopID
		if line.HasShop() {
			key = line.ShopID()
		}

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, OrderGroup{ShopID: key})
		}
		groups[i].Lines = append(groups[i].Lines, line)
	}

	return groups
}
