// Package productrepo persists catalog products and their stock counters.
package productrepo

import (
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ProductDTO is the row of the products table. The check constraints back the domain
// rule that counters never go negative.
type ProductDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShopID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name    string    `gorm:"type:varchar(255);not null"`
	Stock   int       `gorm:"not null;check:chk_products_stock,stock >= 0"`
	SoldOut int       `gorm:"not null;default:0;check:chk_products_sold_out,sold_out >= 0"`
	Version int64     `gorm:"not null;default:0"`
}

// TableName overrides the GORM default.
func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *catalog.Product) ProductDTO {
	return ProductDTO{
		ID:      p.ID().Bytes(),
		ShopID:  p.ShopID().Bytes(),
		Name:    p.Name(),
		Stock:   p.Stock(),
		SoldOut: p.SoldOut(),
		Version: p.Version(),
	}
}

func toDomain(dto ProductDTO) (*catalog.Product, error) {
	return catalog.RestoreProduct(
		kernel.UUIDFromGoogle(dto.ID),
		kernel.UUIDFromGoogle(dto.ShopID),
		dto.Name,
		dto.Stock,
		dto.SoldOut,
		dto.Version,
	)
}
