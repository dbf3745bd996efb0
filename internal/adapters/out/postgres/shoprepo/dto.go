// Package shoprepo persists seller accounts with their available balance and the debt
// left by refunds the balance could not cover.
package shoprepo

import (
	"errors"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShopDTO is the row of the shops table.
type ShopDTO struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name             string          `gorm:"type:varchar(255);not null"`
	Email            string          `gorm:"type:varchar(255)"`
	PhoneNumber      string          `gorm:"type:varchar(64)"`
	AvailableBalance decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	OutstandingDebt  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Version          int64           `gorm:"not null;default:0"`
}

// TableName overrides the GORM default.
func (ShopDTO) TableName() string {
	return "shops"
}

func fromDomain(s *catalog.Shop) ShopDTO {
	return ShopDTO{
		ID:               s.ID().Bytes(),
		Name:             s.Name(),
		Email:            s.Email(),
		PhoneNumber:      s.PhoneNumber(),
		AvailableBalance: s.AvailableBalance().Amount(),
		OutstandingDebt:  s.OutstandingDebt().Amount(),
		Version:          s.Version(),
	}
}

func toDomain(dto ShopDTO) (*catalog.Shop, error) {
	balance, balanceErr := kernel.NewMoney(dto.AvailableBalance)
	debt, debtErr := kernel.NewMoney(dto.OutstandingDebt)
	if err := errors.Join(balanceErr, debtErr); err != nil {
		return nil, err
	}
	return catalog.RestoreShop(
		kernel.UUIDFromGoogle(dto.ID),
		dto.Name,
		dto.Email,
		dto.PhoneNumber,
		balance,
		debt,
		dto.Version,
	)
}
