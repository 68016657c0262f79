package patrimonio

import (
	"time"
)

// Deposit is a time-locked deposit. While active, its principal is reserved
// out of the usable cash; once the evaluation time reaches maturity the
// reservation stops. The principal itself was never spent, and any interest
// earned must arrive separately as a TopUp fiat event, the engine does not
// invent interest.
type Deposit struct {
	Amount   Money
	Opened   time.Time
	Maturity time.Time
	Kind     string
}

// Matured reports whether the deposit has reached maturity.
func (d Deposit) Matured(now time.Time) bool { return !now.Before(d.Maturity) }

// DepositRecord is the persisted form of a deposit.
type DepositRecord struct {
	Timestamp    string `json:"Timestamp"`
	Type         string `json:"Type"`
	FilledAmount string `json:"Filled Amount"` // "<number> EUR"
	Maturity     string `json:"Scadenza"`
}

// DecodeDepositRecord decodes a persisted deposit. Malformed fields degrade
// to zero and are reported as diagnostics.
func DecodeDepositRecord(r DepositRecord) (Deposit, []Diagnostic) {
	var diags []Diagnostic
	d := Deposit{Kind: r.Type}

	opened, err := time.Parse(TimestampLayout, r.Timestamp)
	if err != nil {
		diags = append(diags, Diagnostic{Field: "Timestamp", Raw: r.Timestamp})
	}
	d.Opened = opened

	maturity, err := time.Parse(TimestampLayout, r.Maturity)
	if err != nil {
		diags = append(diags, Diagnostic{Time: opened, Field: "Scadenza", Raw: r.Maturity})
	}
	d.Maturity = maturity

	value, _, ok := parseAmount(r.FilledAmount)
	if !ok {
		diags = append(diags, Diagnostic{Time: opened, Field: "Filled Amount", Raw: r.FilledAmount})
	}
	d.Amount = M(value, EUR)
	return d, diags
}

// EncodeDepositRecord encodes a deposit back into its persisted form.
func EncodeDepositRecord(d Deposit) DepositRecord {
	return DepositRecord{
		Timestamp:    d.Opened.Format(TimestampLayout),
		Type:         d.Kind,
		FilledAmount: d.Amount.value.String() + " " + EUR,
		Maturity:     d.Maturity.Format(TimestampLayout),
	}
}

// DepositBook holds the deposit records. Maturity is evaluated on every
// query, there is no timer: a matured deposit simply stops being active.
type DepositBook struct {
	deposits []Deposit
}

// NewDepositBook builds a book from existing deposits.
func NewDepositBook(deposits ...Deposit) *DepositBook {
	return &DepositBook{deposits: deposits}
}

// Open validates and records a new deposit. available is the usable EUR
// cash at opening time; the principal is reserved from it, not spent.
func (b *DepositBook) Open(d Deposit, available Money) error {
	if !d.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !d.Maturity.After(d.Opened) {
		return ErrInvalidMaturity
	}
	if available.LessThan(d.Amount) {
		return ErrInsufficientFunds
	}
	b.deposits = append(b.deposits, d)
	return nil
}

// Active returns the deposits that have not matured at the evaluation time.
func (b *DepositBook) Active(now time.Time) []Deposit {
	var active []Deposit
	for _, d := range b.deposits {
		if !d.Matured(now) {
			active = append(active, d)
		}
	}
	return active
}

// Reserved is the total principal locked by still-active deposits. It is
// subtracted from the raw replayed EUR balance to get the usable cash.
func (b *DepositBook) Reserved(now time.Time) Money {
	reserved := M(0, EUR)
	for _, d := range b.deposits {
		if !d.Matured(now) {
			reserved = reserved.Add(d.Amount)
		}
	}
	return reserved
}

// Prune drops matured deposits from the book and returns them. Removal does
// not credit cash, it only stops the reservation.
func (b *DepositBook) Prune(now time.Time) (removed []Deposit) {
	kept := b.deposits[:0]
	for _, d := range b.deposits {
		if d.Matured(now) {
			removed = append(removed, d)
		} else {
			kept = append(kept, d)
		}
	}
	b.deposits = kept
	return removed
}

// All returns every deposit still recorded in the book.
func (b *DepositBook) All() []Deposit { return b.deposits }
