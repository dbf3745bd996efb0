package http

import (
	"errors"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/api/servers"
	"storefront/internal/pkg/errs"
)

func createOrdersCommand(body servers.CreateOrdersRequest, idempotencyKey string) (commands.CreateOrdersCommand, error) {
	lines := make([]order.Line, 0, len(body.Cart))
	var lineErrs []error
	for _, item := range body.Cart {
		line, err := lineFromItem(item)
		if err != nil {
			lineErrs = append(lineErrs, err)
			continue
		}
		lines = append(lines, line)
	}

	address, addressErr := order.NewShippingAddress(
		body.ShippingAddress.Address1,
		deref(body.ShippingAddress.Address2),
		body.ShippingAddress.City,
		body.ShippingAddress.ZipCode,
		body.ShippingAddress.Country,
		deref(body.ShippingAddress.AddressType),
	)
	customer, customerErr := order.NewCustomer(
		kernel.UUIDFromGoogle(body.User.Id),
		body.User.Name,
		body.User.Email,
		deref(body.User.PhoneNumber),
	)
	total, totalErr := kernel.NewMoney(body.TotalPrice)
	if err := errors.Join(errors.Join(lineErrs...), addressErr, customerErr, totalErr); err != nil {
		return commands.CreateOrdersCommand{}, err
	}

	payment := order.NewPaymentInfo("", "", "")
	if body.PaymentInfo != nil {
		payment = order.NewPaymentInfo(
			deref(body.PaymentInfo.Id),
			deref(body.PaymentInfo.Status),
			deref(body.PaymentInfo.Type),
		)
	}

	return commands.NewCreateOrdersCommand(lines, address, customer, total, payment, idempotencyKey)
}

// lineFromItem leaves the shop zero when the client sent none; the command rejects it.
func lineFromItem(item servers.CartItem) (order.Line, error) {
	price, err := kernel.NewMoney(item.UnitPrice)
	if err != nil {
		return order.Line{}, err
	}

	var shopID kernel.UUID
	if item.ShopId != nil {
		shopID = kernel.UUIDFromGoogle(*item.ShopId)
	}

	return order.NewLine(kernel.UUIDFromGoogle(item.ProductId), shopID, item.Name, item.Quantity, price)
}

func processPaymentCommand(body servers.PaymentRequest) (commands.ProcessPaymentCommand, error) {
	if len(body.CustomerAddress) == 0 {
		return commands.ProcessPaymentCommand{}, errs.NewValueIsRequiredError("customerAddress")
	}

	amount, err := kernel.NewMoney(body.Amount)
	if err != nil {
		return commands.ProcessPaymentCommand{}, err
	}

	first := body.CustomerAddress[0]
	return commands.NewProcessPaymentCommand(amount, deref(body.Currency), body.CustomerName, ports.PaymentAddress{
		Line1:      first.Address1,
		Line2:      deref(first.Address2),
		City:       first.City,
		PostalCode: first.ZipCode,
		Country:    first.Country,
	})
}

func ordersFromDomain(orders []*order.Order) []servers.Order {
	out := make([]servers.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderFromDomain(o))
	}
	return out
}

func orderFromDomain(o *order.Order) servers.Order {
	cart := make([]servers.CartItem, 0, len(o.Lines()))
	for _, line := range o.Lines() {
		shopID := line.ShopID().Bytes()
		cart = append(cart, servers.CartItem{
			ProductId: line.ProductID().Bytes(),
			ShopId:    &shopID,
			Name:      line.Name(),
			Quantity:  line.Quantity(),
			UnitPrice: line.UnitPrice().Amount(),
		})
	}

	address := o.ShippingAddress()
	customer := o.Customer()
	payment := o.PaymentInfo()

	return servers.Order{
		Id:     o.ID().Bytes(),
		ShopId: o.ShopID().Bytes(),
		Cart:   cart,
		ShippingAddress: addressOut(
			address.Address1(), address.Address2(), address.City(),
			address.ZipCode(), address.Country(), address.AddressType(),
		),
		User:        userOut(customer.ID(), customer.Name(), customer.Email(), customer.PhoneNumber()),
		TotalPrice:  o.TotalPrice().Amount(),
		PaymentInfo: paymentOut(payment.ID(), payment.Status(), payment.Type()),
		Status:      o.Status().String(),
		CreatedAt:   o.CreatedAt(),
		DeliveredAt: o.DeliveredAt(),
	}
}

func ordersFromViews(views []queries.OrderView) []servers.Order {
	out := make([]servers.Order, 0, len(views))
	for _, v := range views {
		cart := make([]servers.CartItem, 0, len(v.Lines))
		for _, line := range v.Lines {
			shopID := line.ShopID.Bytes()
			cart = append(cart, servers.CartItem{
				ProductId: line.ProductID.Bytes(),
				ShopId:    &shopID,
				Name:      line.Name,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
			})
		}

		out = append(out, servers.Order{
			Id:     v.ID.Bytes(),
			ShopId: v.ShopID.Bytes(),
			Cart:   cart,
			ShippingAddress: addressOut(
				v.ShippingAddress.Address1, v.ShippingAddress.Address2, v.ShippingAddress.City,
				v.ShippingAddress.ZipCode, v.ShippingAddress.Country, v.ShippingAddress.AddressType,
			),
			User:        userOut(v.User.ID, v.User.Name, v.User.Email, v.User.PhoneNumber),
			TotalPrice:  v.TotalPrice,
			PaymentInfo: paymentOut(v.PaymentInfo.ID, v.PaymentInfo.Status, v.PaymentInfo.Type),
			Status:      v.Status,
			CreatedAt:   v.CreatedAt,
			DeliveredAt: v.DeliveredAt,
		})
	}
	return out
}

func addressOut(address1, address2, city, zipCode, country, addressType string) servers.ShippingAddress {
	return servers.ShippingAddress{
		Address1:    address1,
		Address2:    optional(address2),
		City:        city,
		ZipCode:     zipCode,
		Country:     country,
		AddressType: optional(addressType),
	}
}

func userOut(id kernel.UUID, name, email, phoneNumber string) servers.User {
	return servers.User{
		Id:          id.Bytes(),
		Name:        name,
		Email:       email,
		PhoneNumber: optional(phoneNumber),
	}
}

func paymentOut(id, status, paymentType string) servers.PaymentInfo {
	return servers.PaymentInfo{
		Id:     optional(id),
		Status: optional(status),
		Type:   optional(paymentType),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
