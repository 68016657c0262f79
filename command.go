package patrimonio

import (
	"errors"
	"fmt"
	"time"
)

// Validation reason codes. A rejected mutation leaves the state untouched;
// the caller corrects the input and re-issues the command, there is no
// automatic retry.
var (
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidMaturity     = errors.New("maturity must be after the opening date")
	ErrInsufficientFunds   = errors.New("insufficient EUR balance")
	ErrAllInstallmentsPaid = errors.New("all installments already paid")
	ErrInvalidInstallments = errors.New("mortgage needs a positive installment count and amount")
	ErrNoMortgage          = errors.New("property has no mortgage")
	ErrUnknownProperty     = errors.New("unknown property")
	ErrUnknownFund         = errors.New("unknown fund")
	ErrUnknownTimestamp    = errors.New("no transaction with that timestamp")
	ErrInvalidPair         = errors.New("pair must be BASE/QUOTE")
)

// State is the full state of the patrimony, passed explicitly into command
// handlers. Nothing global, nothing cached: handlers validate first, mutate
// only on success, and replay the ledger whenever they need balances.
type State struct {
	InitialEUR Money
	Ledger     *Ledger
	Deposits   *DepositBook
	Properties *PropertyBook
	FundPrices map[string]Money
}

// Effect names an external action the caller must perform after a command
// succeeds, typically persisting one of the record files.
type Effect int

const (
	PersistFiat Effect = iota
	PersistTrades
	PersistDeposits
	PersistProperties
	PersistFundPrices
	RefreshPrices
)

func (e Effect) String() string {
	switch e {
	case PersistFiat:
		return "persist-fiat"
	case PersistTrades:
		return "persist-trades"
	case PersistDeposits:
		return "persist-deposits"
	case PersistProperties:
		return "persist-properties"
	case PersistFundPrices:
		return "persist-fund-prices"
	case RefreshPrices:
		return "refresh-prices"
	default:
		return "unknown"
	}
}

// Command is a pure state transition: Apply validates against the current
// state and returns the effects the caller must run. Handlers never touch
// storage themselves.
type Command interface {
	Apply(st *State, now time.Time) ([]Effect, error)
}

// availableCash replays the ledger and subtracts active deposit
// reservations: the cash a mutation may actually spend.
func (st *State) availableCash(now time.Time) Money {
	book := st.Ledger.Replay(st.InitialEUR)
	return book.EURBalance.Sub(st.Deposits.Reserved(now))
}

// AddFiat appends a fiat movement to the log.
type AddFiat struct {
	Kind   FiatKind
	Amount Money
	Note   string
}

func (c AddFiat) Apply(st *State, now time.Time) ([]Effect, error) {
	if !c.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	st.Ledger.AppendFiat(FiatEvent{Time: now, Kind: c.Kind, Amount: c.Amount, Note: c.Note})
	return []Effect{PersistFiat}, nil
}

// AddTrade appends a trade to the log.
type AddTrade struct {
	Event TradeEvent
}

func (c AddTrade) Apply(st *State, now time.Time) ([]Effect, error) {
	ev := c.Event
	if ev.Pair.Base() == "" || ev.Pair.Quote() == "" {
		return nil, ErrInvalidPair
	}
	if ev.Time.IsZero() {
		ev.Time = now
	}
	if ev.Category == "" {
		ev.Category = Plain
	}
	st.Ledger.AppendTrade(ev)
	return []Effect{PersistTrades, RefreshPrices}, nil
}

// DeleteTransaction removes the first log entry matching the timestamp text.
type DeleteTransaction struct {
	Timestamp string
}

func (c DeleteTransaction) Apply(st *State, now time.Time) ([]Effect, error) {
	if !st.Ledger.DeleteAt(c.Timestamp) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimestamp, c.Timestamp)
	}
	return []Effect{PersistFiat, PersistTrades}, nil
}

// OpenDeposit reserves cash into a new time deposit.
type OpenDeposit struct {
	Amount   Money
	Maturity time.Time
	Kind     string
}

func (c OpenDeposit) Apply(st *State, now time.Time) ([]Effect, error) {
	d := Deposit{Amount: c.Amount, Opened: now, Maturity: c.Maturity, Kind: c.Kind}
	if err := st.Deposits.Open(d, st.availableCash(now)); err != nil {
		return nil, err
	}
	return []Effect{PersistDeposits}, nil
}

// AddProperty records a new real-estate holding, debiting its down payment
// through a synthetic Withdraw fiat event.
type AddProperty struct {
	Property Property
}

func (c AddProperty) Apply(st *State, now time.Time) ([]Effect, error) {
	_, ev, err := st.Properties.Add(c.Property, st.availableCash(now), now)
	if err != nil {
		return nil, err
	}
	st.Ledger.AppendFiat(ev)
	return []Effect{PersistProperties, PersistFiat}, nil
}

// PayInstallment pays exactly one mortgage installment of a property.
type PayInstallment struct {
	ID string
}

func (c PayInstallment) Apply(st *State, now time.Time) ([]Effect, error) {
	ev, err := st.Properties.PayInstallment(c.ID, st.availableCash(now), now)
	if err != nil {
		return nil, err
	}
	st.Ledger.AppendFiat(ev)
	return []Effect{PersistProperties, PersistFiat}, nil
}

// SetFundPrice updates the manual price table for a known fund.
type SetFundPrice struct {
	Symbol string
	Price  Money
}

func (c SetFundPrice) Apply(st *State, now time.Time) ([]Effect, error) {
	if !c.Price.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if _, ok := st.FundPrices[c.Symbol]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFund, c.Symbol)
	}
	st.FundPrices[c.Symbol] = c.Price
	return []Effect{PersistFundPrices}, nil
}
