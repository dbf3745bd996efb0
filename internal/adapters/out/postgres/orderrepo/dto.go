// Package orderrepo persists the order aggregate in two tables: orders holds the
// header and reconciliation bookkeeping, order_lines holds the immutable cart snapshot.
package orderrepo

import (
	"errors"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the row of the orders table. Seq is filled by the database and breaks
// ties between orders created in the same instant.
type OrderDTO struct {
	ID             uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Seq            int64              `gorm:"autoIncrement;not null;uniqueIndex"`
	ShopID         uuid.UUID          `gorm:"type:uuid;not null;index"`
	Shipping       ShippingAddressDTO `gorm:"embedded;embeddedPrefix:shipping_"`
	User           CustomerDTO        `gorm:"embedded;embeddedPrefix:user_"`
	TotalPrice     decimal.Decimal    `gorm:"type:numeric(14,2);not null"`
	Payment        PaymentInfoDTO     `gorm:"embedded;embeddedPrefix:payment_"`
	Status         string             `gorm:"type:varchar(64);not null;index"`
	StockCommitted bool               `gorm:"not null;default:false"`
	SettledAmount  decimal.Decimal    `gorm:"type:numeric(14,2);not null;default:0"`
	Version        int64              `gorm:"not null;default:0"`
	CreatedAt      time.Time          `gorm:"not null;index"`
	DeliveredAt    *time.Time
	Lines          []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the GORM default.
func (OrderDTO) TableName() string {
	return "orders"
}

// ShippingAddressDTO is embedded in orders with the shipping_ prefix.
type ShippingAddressDTO struct {
	Address1    string `gorm:"type:varchar(255);not null"`
	Address2    string `gorm:"type:varchar(255)"`
	City        string `gorm:"type:varchar(128);not null"`
	ZipCode     string `gorm:"type:varchar(32);not null"`
	Country     string `gorm:"type:varchar(128);not null"`
	AddressType string `gorm:"type:varchar(64)"`
}

// CustomerDTO is embedded in orders with the user_ prefix.
type CustomerDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Email       string    `gorm:"type:varchar(255);not null"`
	PhoneNumber string    `gorm:"type:varchar(64)"`
}

// PaymentInfoDTO is embedded in orders with the payment_ prefix.
type PaymentInfoDTO struct {
	ID     string `gorm:"type:varchar(255)"`
	Status string `gorm:"type:varchar(64)"`
	Type   string `gorm:"type:varchar(64)"`
}

// OrderLineDTO is one snapshotted cart line. Lines are written once with their order
// and never updated.
type OrderLineDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_lines_position"`
	Position  int             `gorm:"not null;uniqueIndex:idx_order_lines_position"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShopID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

// TableName overrides the GORM default.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	lines := make([]OrderLineDTO, 0, len(o.Lines()))
	for i, line := range o.Lines() {
		lines = append(lines, OrderLineDTO{
			ID:        uuid.New(),
			OrderID:   orderID,
			Position:  i,
			ProductID: line.ProductID().Bytes(),
			ShopID:    line.ShopID().Bytes(),
			Name:      line.Name(),
			Quantity:  line.Quantity(),
			UnitPrice: line.UnitPrice().Amount(),
		})
	}

	address := o.ShippingAddress()
	customer := o.Customer()
	payment := o.PaymentInfo()

	return OrderDTO{
		ID:     orderID,
		ShopID: o.ShopID().Bytes(),
		Shipping: ShippingAddressDTO{
			Address1:    address.Address1(),
			Address2:    address.Address2(),
			City:        address.City(),
			ZipCode:     address.ZipCode(),
			Country:     address.Country(),
			AddressType: address.AddressType(),
		},
		User: CustomerDTO{
			ID:          customer.ID().Bytes(),
			Name:        customer.Name(),
			Email:       customer.Email(),
			PhoneNumber: customer.PhoneNumber(),
		},
		TotalPrice: o.TotalPrice().Amount(),
		Payment: PaymentInfoDTO{
			ID:     payment.ID(),
			Status: payment.Status(),
			Type:   payment.Type(),
		},
		Status:         o.Status().String(),
		StockCommitted: o.StockCommitted(),
		SettledAmount:  o.SettledAmount().Amount(),
		Version:        o.Version(),
		CreatedAt:      o.CreatedAt(),
		DeliveredAt:    o.DeliveredAt(),
		Lines:          lines,
	}
}

// toDomain rebuilds the aggregate; lines must already be sorted by position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	lines := make([]order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		unitPrice, err := kernel.NewMoney(l.UnitPrice)
		if err != nil {
			return nil, err
		}
		line, err := order.NewLine(
			kernel.UUIDFromGoogle(l.ProductID),
			kernel.UUIDFromGoogle(l.ShopID),
			l.Name,
			l.Quantity,
			unitPrice,
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	address, addressErr := order.NewShippingAddress(
		dto.Shipping.Address1,
		dto.Shipping.Address2,
		dto.Shipping.City,
		dto.Shipping.ZipCode,
		dto.Shipping.Country,
		dto.Shipping.AddressType,
	)
	customer, customerErr := order.NewCustomer(
		kernel.UUIDFromGoogle(dto.User.ID),
		dto.User.Name,
		dto.User.Email,
		dto.User.PhoneNumber,
	)
	total, totalErr := kernel.NewMoney(dto.TotalPrice)
	settled, settledErr := kernel.NewMoney(dto.SettledAmount)
	status, statusErr := order.ParseStatus(dto.Status)
	if err := errors.Join(addressErr, customerErr, totalErr, settledErr, statusErr); err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:              kernel.UUIDFromGoogle(dto.ID),
		ShopID:          kernel.UUIDFromGoogle(dto.ShopID),
		Lines:           lines,
		ShippingAddress: address,
		Customer:        customer,
		TotalPrice:      total,
		PaymentInfo:     order.NewPaymentInfo(dto.Payment.ID, dto.Payment.Status, dto.Payment.Type),
		Status:          status,
		StockCommitted:  dto.StockCommitted,
		SettledAmount:   settled,
		CreatedAt:       dto.CreatedAt,
		DeliveredAt:     dto.DeliveredAt,
		Version:         dto.Version,
	})
}
