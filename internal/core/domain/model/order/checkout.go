package order

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrCustomerIsNotConstructed        = errors.New("Customer must be created via NewCustomer constructor")
	ErrShippingAddressIsNotConstructed = errors.New("ShippingAddress must be created via NewShippingAddress constructor")
)

// Customer is the buyer reference copied into every order of a checkout.
type Customer struct {
	id          kernel.UUID
	name        string
	email       string
	phoneNumber string

	guard guard.ConstructorGuard
}

// NewCustomer requires an id, a name and an email.
func NewCustomer(id kernel.UUID, name, email, phoneNumber string) (Customer, error) {
	c := Customer{
		id:          id,
		name:        strings.TrimSpace(name),
		email:       strings.TrimSpace(email),
		phoneNumber: strings.TrimSpace(phoneNumber),
		guard:       guard.NewConstructorGuard(),
	}

	var emailErr error
	if c.email == "" {
		emailErr = errs.NewValueIsRequiredError("customer email")
	}
	if err := errors.Join(id.Validate(), emailErr); err != nil {
		return Customer{}, err
	}
	return c, nil
}

// Validate reports whether the customer was built by NewCustomer.
func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// ID returns the buyer identifier.
func (c Customer) ID() kernel.UUID {
	return c.id
}

// Name returns the buyer name.
func (c Customer) Name() string {
	return c.name
}

// Email is where the order summary goes.
func (c Customer) Email() string {
	return c.email
}

// PhoneNumber may be empty.
func (c Customer) PhoneNumber() string {
	return c.phoneNumber
}

// ShippingAddress is where the buyer wants the goods.
type ShippingAddress struct {
	address1    string
	address2    string
	city        string
	zipCode     string
	country     string
	addressType string

	guard guard.ConstructorGuard
}

// NewShippingAddress requires address1 and city; the other parts are optional.
func NewShippingAddress(address1, address2, city, zipCode, country, addressType string) (ShippingAddress, error) {
	a := ShippingAddress{
		address1:    strings.TrimSpace(address1),
		address2:    strings.TrimSpace(address2),
		city:        strings.TrimSpace(city),
		zipCode:     strings.TrimSpace(zipCode),
		country:     strings.TrimSpace(country),
		addressType: strings.TrimSpace(addressType),
		guard:       guard.NewConstructorGuard(),
	}

	var address1Err, cityErr error
	if a.address1 == "" {
		address1Err = errs.NewValueIsRequiredError("shipping address1")
	}
	if a.city == "" {
		cityErr = errs.NewValueIsRequiredError("shipping city")
	}
	if err := errors.Join(address1Err, cityErr); err != nil {
		return ShippingAddress{}, err
	}
	return a, nil
}

// Validate reports whether the address was built by NewShippingAddress.
func (a ShippingAddress) Validate() error {
	return a.guard.Validate(ErrShippingAddressIsNotConstructed)
}

// Address1 returns the first address line.
func (a ShippingAddress) Address1() string {
	return a.address1
}

// Address2 returns the optional second address line.
func (a ShippingAddress) Address2() string {
	return a.address2
}

// City returns the city.
func (a ShippingAddress) City() string {
	return a.city
}

// ZipCode returns the postal code.
func (a ShippingAddress) ZipCode() string {
	return a.zipCode
}

// Country returns the country.
func (a ShippingAddress) Country() string {
	return a.country
}

// AddressType is a client label such as "Home".
func (a ShippingAddress) AddressType() string {
	return a.addressType
}

// PaymentInfo carries the gateway fields as received at checkout. Only Status is ever
// changed by the service, on delivery.
type PaymentInfo struct {
	id          string
	status      string
	paymentType string
}

// NewPaymentInfo keeps what the client reports; every field may be empty.
func NewPaymentInfo(id, status, paymentType string) PaymentInfo {
	return PaymentInfo{
		id:          strings.TrimSpace(id),
		status:      strings.TrimSpace(status),
		paymentType: strings.TrimSpace(paymentType),
	}
}

// ID returns the provider payment id.
func (p PaymentInfo) ID() string {
	return p.id
}

// Status returns the payment status, "Succeeded" once the order is delivered.
func (p PaymentInfo) Status() string {
	return p.status
}

// Type returns the payment method, e.g. "Card".
func (p PaymentInfo) Type() string {
	return p.paymentType
}

// WithStatus returns a copy carrying the new gateway status.
func (p PaymentInfo) WithStatus(status string) PaymentInfo {
	p.status = status
	return p
}
