package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetSellerOrdersQueryHandler lists the orders holding a line of one shop.
type GetSellerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetSellerOrdersQueryHandler creates the handler over db.
func NewGetSellerOrdersQueryHandler(db *gorm.DB) GetSellerOrdersQueryHandler {
	return GetSellerOrdersQueryHandler{db: db}
}

// Handle returns every order holding at least one line of the shop, newest first.
func (h GetSellerOrdersQueryHandler) Handle(ctx context.Context, query GetSellerOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return loadOrderViews(ctx, h.db,
		"WHERE EXISTS (SELECT 1 FROM order_lines l WHERE l.order_id = o.id AND l.shop_id = ?)",
		" ORDER BY o.created_at DESC, o.seq",
		query.ShopID().Bytes(),
	)
}
