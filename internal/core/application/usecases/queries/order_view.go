// Package queries holds the read side: listing handlers that scan rows straight into
// response structs without rebuilding aggregates.
package queries

import (
	"context"
	"database/sql"
	"time"

	"storefront/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderView is an order as the listing endpoints return it.
type OrderView struct {
	ID              kernel.UUID
	ShopID          kernel.UUID
	Lines           []OrderLineView
	ShippingAddress AddressView
	User            CustomerView
	TotalPrice      decimal.Decimal
	PaymentInfo     PaymentView
	Status          string
	CreatedAt       time.Time
	DeliveredAt     *time.Time
}

// OrderLineView is one snapshotted cart line.
type OrderLineView struct {
	ProductID kernel.UUID
	ShopID    kernel.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// AddressView is the shipping address of an order.
type AddressView struct {
	Address1    string
	Address2    string
	City        string
	ZipCode     string
	Country     string
	AddressType string
}

// CustomerView is the buyer of an order.
type CustomerView struct {
	ID          kernel.UUID
	Name        string
	Email       string
	PhoneNumber string
}

// PaymentView is the client-side payment result stored with an order.
type PaymentView struct {
	ID     string
	Status string
	Type   string
}

const orderColumns = `
	SELECT
		o.id,
		o.shop_id,
		o.shipping_address1, o.shipping_address2, o.shipping_city,
		o.shipping_zip_code, o.shipping_country, o.shipping_address_type,
		o.user_id, o.user_name, o.user_email, o.user_phone_number,
		o.total_price,
		o.payment_id, o.payment_status, o.payment_type,
		o.status,
		o.created_at,
		o.delivered_at
	FROM orders o
`

// loadOrderViews runs the header query built from filter and orderBy, then fetches
// the lines of every returned order in a single round trip.
func loadOrderViews(ctx context.Context, db *gorm.DB, filter, orderBy string, args ...any) ([]OrderView, error) {
	rows, err := db.WithContext(ctx).Raw(orderColumns+filter+orderBy, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]OrderView, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			v                 OrderView
			id, shopID, user  uuid.UUID
			deliveredAt       sql.NullTime
			address2, phone   sql.NullString
			addressType       sql.NullString
			paymentID, status sql.NullString
			paymentType       sql.NullString
		)
		err = rows.Scan(
			&id,
			&shopID,
			&v.ShippingAddress.Address1, &address2, &v.ShippingAddress.City,
			&v.ShippingAddress.ZipCode, &v.ShippingAddress.Country, &addressType,
			&user, &v.User.Name, &v.User.Email, &phone,
			&v.TotalPrice,
			&paymentID, &status, &paymentType,
			&v.Status,
			&v.CreatedAt,
			&deliveredAt,
		)
		if err != nil {
			return nil, err
		}

		v.ID = kernel.UUIDFromGoogle(id)
		v.ShopID = kernel.UUIDFromGoogle(shopID)
		v.User.ID = kernel.UUIDFromGoogle(user)
		v.User.PhoneNumber = phone.String
		v.ShippingAddress.Address2 = address2.String
		v.ShippingAddress.AddressType = addressType.String
		v.PaymentInfo = PaymentView{ID: paymentID.String, Status: status.String, Type: paymentType.String}
		if deliveredAt.Valid {
			at := deliveredAt.Time
			v.DeliveredAt = &at
		}
		v.Lines = make([]OrderLineView, 0)

		index[id] = len(views)
		views = append(views, v)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(views) == 0 {
		return views, nil
	}
	if err = attachLines(ctx, db, views, index); err != nil {
		return nil, err
	}
	return views, nil
}

func attachLines(ctx context.Context, db *gorm.DB, views []OrderView, index map[uuid.UUID]int) error {
	ids := make([]string, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID.String())
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT order_id, product_id, shop_id, name, quantity, unit_price
		FROM order_lines
		WHERE order_id = ANY(?::uuid[])
		ORDER BY order_id, position
	`, pq.Array(ids)).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID, productID, shopID uuid.UUID
			line                       OrderLineView
		)
		if err = rows.Scan(&orderID, &productID, &shopID, &line.Name, &line.Quantity, &line.UnitPrice); err != nil {
			return err
		}
		line.ProductID = kernel.UUIDFromGoogle(productID)
		line.ShopID = kernel.UUIDFromGoogle(shopID)

		i, ok := index[orderID]
		if !ok {
			continue
		}
		views[i].Lines = append(views[i].Lines, line)
	}

	return rows.Err()
}
