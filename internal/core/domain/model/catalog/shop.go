package catalog

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// ErrShopIsNotConstructed is returned when using an improperly initialized Shop.
var ErrShopIsNotConstructed = errors.New("Shop must be created via NewShop constructor")

// Shop is a seller account. Email and phone are used for order notifications.
//
// Business rules:
//   - availableBalance and outstandingDebt never go below zero
//   - at most one of them is non-zero after a Credit or a Debit
//   - a debit larger than the balance empties the balance and keeps the rest as debt,
//     since the balance can be paid out outside this service
//   - a credit pays the debt off before it reaches the balance
//
// Example usage:
//
//	s, err := catalog.NewShop(kernel.NewUUID(), "Lamps & Co", "shop@example.com", "+100")
//	if err != nil {
//	    // Handle construction error
//	}
//	_ = s.Credit(kernel.MustMoney("90")) // balance 90
//	_ = s.Debit(kernel.MustMoney("120")) // balance 0, debt 30
type Shop struct {
	id               kernel.UUID
	name             string
	email            string
	phoneNumber      string
	availableBalance kernel.Money
	outstandingDebt  kernel.Money
	version          int64

	isConstructed bool
}

// NewShop creates a shop with an empty balance and no debt.
func NewShop(id kernel.UUID, name, email, phoneNumber string) (*Shop, error) {
	return RestoreShop(id, name, email, phoneNumber, kernel.ZeroMoney(), kernel.ZeroMoney(), 0)
}

// RestoreShop rebuilds a persisted shop.
func RestoreShop(
	id kernel.UUID,
	name, email, phoneNumber string,
	availableBalance, outstandingDebt kernel.Money,
	version int64,
) (*Shop, error) {
	s := &Shop{
		id:               id,
		name:             strings.TrimSpace(name),
		email:            strings.TrimSpace(email),
		phoneNumber:      strings.TrimSpace(phoneNumber),
		availableBalance: availableBalance,
		outstandingDebt:  outstandingDebt,
		version:          version,
		isConstructed:    true,
	}

	var nameErr error
	if s.name == "" {
		nameErr = errs.NewValueIsRequiredError("shop name")
	}
	if err := errors.Join(id.Validate(), nameErr, availableBalance.Validate(), outstandingDebt.Validate()); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate reports whether the shop was built by NewShop or RestoreShop.
func (s *Shop) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShopIsNotConstructed
	}
	return nil
}

// ID returns the shop identifier.
func (s *Shop) ID() kernel.UUID {
	return s.id
}

// Name returns the shop name.
func (s *Shop) Name() string {
	return s.name
}

// Email is where shop notifications go.
func (s *Shop) Email() string {
	return s.email
}

// PhoneNumber may be empty.
func (s *Shop) PhoneNumber() string {
	return s.phoneNumber
}

// AvailableBalance is what the shop has been paid out and not yet given back.
func (s *Shop) AvailableBalance() kernel.Money { return s.availableBalance }

// OutstandingDebt is the part of refunded payouts the balance could not cover.
func (s *Shop) OutstandingDebt() kernel.Money { return s.outstandingDebt }

// Version is the stored version the shop was loaded with.
func (s *Shop) Version() int64 { return s.version }

// Credit adds a payout, settling any outstanding debt first.
func (s *Shop) Credit(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}

	if amount.LessThan(s.outstandingDebt) {
		debt, err := s.outstandingDebt.Sub(amount)
		if err != nil {
			return err
		}
		s.outstandingDebt = debt
		return nil
	}

	rest, err := amount.Sub(s.outstandingDebt)
	if err != nil {
		return err
	}
	s.outstandingDebt = kernel.ZeroMoney()
	s.availableBalance = s.availableBalance.Add(rest)
	return nil
}

// Debit takes a payout back. Whatever the balance cannot cover becomes debt, so a
// debit of a valid amount always succeeds.
func (s *Shop) Debit(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}

	if !s.availableBalance.LessThan(amount) {
		balance, err := s.availableBalance.Sub(amount)
		if err != nil {
			return err
		}
		s.availableBalance = balance
		return nil
	}

	shortfall, err := amount.Sub(s.availableBalance)
	if err != nil {
		return err
	}
	s.availableBalance = kernel.ZeroMoney()
	s.outstandingDebt = s.outstandingDebt.Add(shortfall)
	return nil
}
