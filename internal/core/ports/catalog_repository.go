package ports

import (
	"context"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"
)

// ProductRepository defines the persistence contract for products.
type ProductRepository interface {
	Add(ctx context.Context, product *catalog.Product) error

	// Update writes stock and soldOut with a compare-and-swap on the version.
	Update(ctx context.Context, product *catalog.Product) error

	Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error)

	// GetMany returns the products that exist among ids, in no particular order.
	// Missing ids are not an error; callers decide what a missing product means.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*catalog.Product, error)
}

// ShopRepository defines the persistence contract for shops.
type ShopRepository interface {
	Add(ctx context.Context, shop *catalog.Shop) error

	// Update writes the available balance with a compare-and-swap on the version.
	Update(ctx context.Context, shop *catalog.Shop) error

	Get(ctx context.Context, id kernel.UUID) (*catalog.Shop, error)

	// GetMany returns the shops that exist among ids, in no particular order.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*catalog.Shop, error)
}
