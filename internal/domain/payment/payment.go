package payment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNilPayment       = errors.New("payment: payment is required")
	ErrSenderRequired   = errors.New("payment: sender is required")
	ErrReceiverRequired = errors.New("payment: receiver is required")
	ErrCurrencyRequired = errors.New("payment: currency is required")
	ErrNegativeAmount   = errors.New("payment: amount must be zero or greater")
	ErrSameAccount      = errors.New("payment: sender and receiver must differ")
)

// Payment describes a single funds transfer travelling through the validation chain.
// Handlers receive it by pointer and only read it.
type Payment struct {
	ID        string
	Sender    string
	Receiver  string
	Amount    decimal.Decimal
	Currency  string
	CreatedAt time.Time
	Comment   string
}

func New(id, sender, receiver string, amount decimal.Decimal, currency, comment string, createdAt time.Time) *Payment {
	return &Payment{
		ID:        id,
		Sender:    sender,
		Receiver:  receiver,
		Amount:    amount,
		Currency:  currency,
		CreatedAt: createdAt.UTC(),
		Comment:   comment,
	}
}

// Validate is opt-in; the chain itself never rejects a payment.
func (p *Payment) Validate() error {
	if p == nil {
		return ErrNilPayment
	}
	if p.Sender == "" {
		return ErrSenderRequired
	}
	if p.Receiver == "" {
		return ErrReceiverRequired
	}
	if p.Sender == p.Receiver {
		return ErrSameAccount
	}
	if p.Currency == "" {
		return ErrCurrencyRequired
	}
	if p.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

func (p *Payment) HasComment() bool {
	return p.Comment != ""
}

func (p *Payment) Clone() *Payment {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Amount = p.Amount.Copy()
	return &clone
}

// Equal compares every field; amounts are compared numerically.
func (p *Payment) Equal(other *Payment) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.ID == other.ID &&
		p.Sender == other.Sender &&
		p.Receiver == other.Receiver &&
		p.Amount.Equal(other.Amount) &&
		p.Currency == other.Currency &&
		p.CreatedAt.Equal(other.CreatedAt) &&
		p.Comment == other.Comment
}
