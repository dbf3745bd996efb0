package postgres

import (
	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/adapters/out/postgres/productrepo"
	"storefront/internal/adapters/out/postgres/shoprepo"
	"storefront/internal/adapters/out/postgres/taskrepo"

	"gorm.io/gorm"
)

// Migrate creates or alters every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&shoprepo.ShopDTO{},
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&taskrepo.TaskDTO{},
	)
}
