package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetUserOrdersQueryHandler lists the orders placed by one buyer.
type GetUserOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUserOrdersQueryHandler creates the handler over db.
func NewGetUserOrdersQueryHandler(db *gorm.DB) GetUserOrdersQueryHandler {
	return GetUserOrdersQueryHandler{db: db}
}

// Handle returns the buyer's orders by createdAt descending; equal timestamps keep
// insertion order.
func (h GetUserOrdersQueryHandler) Handle(ctx context.Context, query GetUserOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return loadOrderViews(ctx, h.db,
		"WHERE o.user_id = ?",
		" ORDER BY o.created_at DESC, o.seq",
		query.UserID().Bytes(),
	)
}
