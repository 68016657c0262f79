package patrimonio

import (
	"fmt"
	"time"
)

// Property is a real-estate holding: a down payment plus an optional
// fixed-installment mortgage. Payments advance one installment at a time,
// never on a schedule.
type Property struct {
	ID               string // "IMM-<n>", sequential
	Kind             string // Tipo
	Value            Money  // Valore, the declared property value
	Mortgage         bool
	DownPayment      Money
	LoanAmount       Money
	InstallmentCount int
	Installment      Money
	PaymentsMade     int
}

// Invested is the capital actually paid in: down payment plus the
// installments paid so far. This is an investment figure, deliberately not
// the remaining loan balance.
func (p Property) Invested() Money {
	invested := M(0, EUR).Add(p.DownPayment)
	for i := 0; i < p.PaymentsMade; i++ {
		invested = invested.Add(p.Installment)
	}
	return invested
}

// PropertyRecord is the persisted form of a property.
type PropertyRecord struct {
	ID               string  `json:"ID"`
	Kind             string  `json:"Tipo"`
	Value            Money   `json:"Valore"`
	Mortgage         bool    `json:"Mutuo"`
	DownPayment      Money   `json:"Anticipo"`
	LoanAmount       Money   `json:"Valore Mutuo"`
	InstallmentCount int     `json:"Numero Rate,omitempty"`
	Installment      Money   `json:"Importo Rata,omitempty"`
	PaymentsMade     int     `json:"Pagamenti Effettuati"`
}

// DecodePropertyRecord decodes a persisted property.
func DecodePropertyRecord(r PropertyRecord) Property {
	return Property{
		ID:               r.ID,
		Kind:             r.Kind,
		Value:            M(0, EUR).Add(r.Value),
		Mortgage:         r.Mortgage,
		DownPayment:      M(0, EUR).Add(r.DownPayment),
		LoanAmount:       M(0, EUR).Add(r.LoanAmount),
		InstallmentCount: r.InstallmentCount,
		Installment:      M(0, EUR).Add(r.Installment),
		PaymentsMade:     r.PaymentsMade,
	}
}

// EncodePropertyRecord encodes a property back into its persisted form.
func EncodePropertyRecord(p Property) PropertyRecord {
	return PropertyRecord{
		ID:               p.ID,
		Kind:             p.Kind,
		Value:            p.Value,
		Mortgage:         p.Mortgage,
		DownPayment:      p.DownPayment,
		LoanAmount:       p.LoanAmount,
		InstallmentCount: p.InstallmentCount,
		Installment:      p.Installment,
		PaymentsMade:     p.PaymentsMade,
	}
}

// PropertyBook holds the real-estate records.
type PropertyBook struct {
	properties []Property
}

// NewPropertyBook builds a book from existing properties.
func NewPropertyBook(properties ...Property) *PropertyBook {
	return &PropertyBook{properties: properties}
}

// nextID returns the next sequential property identifier.
func (b *PropertyBook) nextID() string {
	return fmt.Sprintf("IMM-%d", len(b.properties)+1)
}

// Add validates and records a new property. The down payment is debited
// through the returned synthetic Withdraw event, which the caller must
// append to the fiat log. available is the usable EUR cash.
func (b *PropertyBook) Add(p Property, available Money, now time.Time) (Property, FiatEvent, error) {
	if !p.DownPayment.IsPositive() {
		return Property{}, FiatEvent{}, ErrInvalidAmount
	}
	if p.Mortgage && (p.InstallmentCount <= 0 || !p.Installment.IsPositive()) {
		return Property{}, FiatEvent{}, ErrInvalidInstallments
	}
	if available.LessThan(p.DownPayment) {
		return Property{}, FiatEvent{}, ErrInsufficientFunds
	}

	p.ID = b.nextID()
	p.PaymentsMade = 0
	if !p.Mortgage {
		p.InstallmentCount = 0
		p.Installment = M(0, EUR)
		p.LoanAmount = M(0, EUR)
	}
	b.properties = append(b.properties, p)

	ev := FiatEvent{
		Time:   now,
		Kind:   Withdraw,
		Amount: p.DownPayment,
		Note:   fmt.Sprintf("Anticipo %s", p.ID),
	}
	return p, ev, nil
}

// Find returns the property with the given identifier.
func (b *PropertyBook) Find(id string) (Property, bool) {
	for _, p := range b.properties {
		if p.ID == id {
			return p, true
		}
	}
	return Property{}, false
}

// PayInstallment pays exactly one installment of a mortgaged property. It
// rejects the payment before touching anything when the property is
// unknown, the cash does not cover the installment, or the schedule is
// already complete. On success it increments the payment counter by one
// and returns the synthetic Withdraw event to append to the fiat log.
func (b *PropertyBook) PayInstallment(id string, available Money, now time.Time) (FiatEvent, error) {
	for i, p := range b.properties {
		if p.ID != id {
			continue
		}
		if !p.Mortgage {
			return FiatEvent{}, ErrNoMortgage
		}
		if available.LessThan(p.Installment) {
			return FiatEvent{}, ErrInsufficientFunds
		}
		if p.PaymentsMade >= p.InstallmentCount {
			return FiatEvent{}, ErrAllInstallmentsPaid
		}
		b.properties[i].PaymentsMade++
		return FiatEvent{
			Time:   now,
			Kind:   Withdraw,
			Amount: p.Installment,
			Note:   fmt.Sprintf("Rata %d/%d %s", p.PaymentsMade+1, p.InstallmentCount, p.ID),
		}, nil
	}
	return FiatEvent{}, fmt.Errorf("%w: %s", ErrUnknownProperty, id)
}

// Invested is the total capital paid into all properties.
func (b *PropertyBook) Invested() Money {
	invested := M(0, EUR)
	for _, p := range b.properties {
		invested = invested.Add(p.Invested())
	}
	return invested
}

// All returns every property in the book.
func (b *PropertyBook) All() []Property { return b.properties }
