package patrimonio

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the layout used by the transaction logs.
const TimestampLayout = "Jan 2, 2006 15:04:05"

// EUR is the reporting currency of the whole patrimony.
const EUR = "EUR"

// BridgeSymbol is the intermediate settlement asset used to convert between
// fiat and coins that have no direct EUR pair.
const BridgeSymbol = "USDT"

// FiatKind is the type of a fiat movement.
type FiatKind string

const (
	TopUp    FiatKind = "Top Up FIAT"
	Withdraw FiatKind = "Withdraw FIAT"
)

// Side is the direction of a trade.
type Side string

const (
	Buy  Side = "Buy"
	Sell Side = "Sell"
)

// Category classifies a trade event. The log encodes it in the "Info" field
// and defaults to "Transazione" when absent.
type Category string

const (
	// Plain is an ordinary market trade.
	Plain Category = "Transazione"
	// RewardCredit is a non-market credit (airdrop, yield).
	RewardCredit Category = "Earn"
	// FundStyle marks a fund-like instrument, tracked in the Fund namespace.
	FundStyle Category = "Etf"
)

// Pair is a "BASE/QUOTE" trading pair.
type Pair string

func (p Pair) Base() string {
	base, _, _ := strings.Cut(string(p), "/")
	return base
}

func (p Pair) Quote() string {
	_, quote, _ := strings.Cut(string(p), "/")
	return quote
}

// bridgePair is the fiat side of the bridge currency.
const bridgePair = Pair(BridgeSymbol + "/" + EUR)

// FiatEvent is a single fiat movement in the log.
type FiatEvent struct {
	Time   time.Time
	Kind   FiatKind
	Amount Money // always EUR
	Note   string
}

// TradeEvent is a single trade in the log. All numeric fields are already
// decoded; decoding failures degrade to zero and are reported as Diagnostics.
type TradeEvent struct {
	Time        time.Time
	Pair        Pair
	Side        Side
	Price       Money // unit price in quote currency, zero when unknown
	OrderUnits  Quantity
	FilledUnits Quantity
	Executed    Money // executed amount in quote currency
	Fee         Money // fee amount in its own currency
	Category    Category
}

// RewardCredit reports whether the event is a non-market credit.
func (e TradeEvent) RewardCredit() bool { return e.Category == RewardCredit }

// Diagnostic records a single parse fallback: a field of a log record whose
// text could not be decoded and was substituted with zero. The replay keeps
// going; diagnostics let callers audit data quality without halting.
type Diagnostic struct {
	Time  time.Time // event timestamp, zero when the timestamp itself failed
	Field string
	Raw   string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("unparseable %s %q in record at %s, substituted 0", d.Field, d.Raw, d.Time.Format(TimestampLayout))
}

// FiatRecord is the persisted form of a fiat movement.
type FiatRecord struct {
	Timestamp    string `json:"Timestamp"`
	Type         string `json:"Type"`
	FilledAmount string `json:"Filled Amount"` // "<number> EUR"
	Info         string `json:"Info,omitempty"`
}

// TradeRecord is the persisted form of a trade.
type TradeRecord struct {
	Timestamp      string `json:"Timestamp"`
	Pair           string `json:"Pair"`
	Side           string `json:"Side"`
	Price          string `json:"Price"`           // "<number> <QUOTE>"
	OrderAmount    string `json:"Order Amount"`    // "<number> <BASE>"
	FilledAmount   string `json:"Filled Amount"`   // "<number> <BASE>"
	ExecutedAmount string `json:"Executed Amount"` // "<number> <QUOTE>"
	TradeFee       string `json:"Trade Fee"`       // "<number> <CURRENCY>"
	Info           string `json:"Info,omitempty"`
}

// parseAmount decodes a "<number> <CURRENCY>" string. The number may use a
// comma as decimal separator. ok is false when the number is malformed; the
// caller substitutes zero and records a Diagnostic.
func parseAmount(s string) (value decimal.Decimal, currency string, ok bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return decimal.Zero, "", false
	}
	if len(fields) > 1 {
		currency = fields[1]
	}
	value, err := decimal.NewFromString(strings.ReplaceAll(fields[0], ",", "."))
	if err != nil {
		return decimal.Zero, currency, false
	}
	return value, currency, true
}

// DecodeFiatRecord decodes a persisted fiat record into an event.
// Malformed fields degrade to zero and are reported as diagnostics.
func DecodeFiatRecord(r FiatRecord) (FiatEvent, []Diagnostic) {
	var diags []Diagnostic
	ev := FiatEvent{Kind: FiatKind(r.Type), Note: r.Info}

	ts, err := time.Parse(TimestampLayout, r.Timestamp)
	if err != nil {
		diags = append(diags, Diagnostic{Field: "Timestamp", Raw: r.Timestamp})
	}
	ev.Time = ts

	value, _, ok := parseAmount(r.FilledAmount)
	if !ok {
		diags = append(diags, Diagnostic{Time: ts, Field: "Filled Amount", Raw: r.FilledAmount})
	}
	ev.Amount = M(value, EUR)
	return ev, diags
}

// EncodeFiatRecord encodes an event back into its persisted form.
func EncodeFiatRecord(ev FiatEvent) FiatRecord {
	return FiatRecord{
		Timestamp:    ev.Time.Format(TimestampLayout),
		Type:         string(ev.Kind),
		FilledAmount: fmt.Sprintf("%s %s", ev.Amount.value, EUR),
		Info:         ev.Note,
	}
}

// DecodeTradeRecord decodes a persisted trade record into an event.
// Malformed numeric fields degrade to zero and are reported as diagnostics,
// never as errors: the replay must be total.
func DecodeTradeRecord(r TradeRecord) (TradeEvent, []Diagnostic) {
	var diags []Diagnostic
	ev := TradeEvent{
		Pair:     Pair(r.Pair),
		Side:     Side(r.Side),
		Category: Plain,
	}
	if r.Info != "" {
		ev.Category = Category(r.Info)
	}

	ts, err := time.Parse(TimestampLayout, r.Timestamp)
	if err != nil {
		diags = append(diags, Diagnostic{Field: "Timestamp", Raw: r.Timestamp})
	}
	ev.Time = ts

	field := func(name, raw string) (decimal.Decimal, string) {
		value, currency, ok := parseAmount(raw)
		if !ok {
			diags = append(diags, Diagnostic{Time: ts, Field: name, Raw: raw})
		}
		return value, currency
	}

	price, priceCur := field("Price", r.Price)
	ev.Price = M(price, priceCur)
	order, _ := field("Order Amount", r.OrderAmount)
	ev.OrderUnits = Q(order)
	filled, _ := field("Filled Amount", r.FilledAmount)
	ev.FilledUnits = Q(filled)
	executed, executedCur := field("Executed Amount", r.ExecutedAmount)
	ev.Executed = M(executed, executedCur)
	fee, feeCur := field("Trade Fee", r.TradeFee)
	ev.Fee = M(fee, feeCur)
	return ev, diags
}

// EncodeTradeRecord encodes an event back into its persisted form.
func EncodeTradeRecord(ev TradeEvent) TradeRecord {
	return TradeRecord{
		Timestamp:      ev.Time.Format(TimestampLayout),
		Pair:           string(ev.Pair),
		Side:           string(ev.Side),
		Price:          fmt.Sprintf("%s %s", ev.Price.value, ev.Pair.Quote()),
		OrderAmount:    fmt.Sprintf("%s %s", ev.OrderUnits, ev.Pair.Base()),
		FilledAmount:   fmt.Sprintf("%s %s", ev.FilledUnits, ev.Pair.Base()),
		ExecutedAmount: fmt.Sprintf("%s %s", ev.Executed.value, ev.Pair.Quote()),
		TradeFee:       fmt.Sprintf("%s %s", ev.Fee.value, ev.Fee.Currency()),
		Info:           string(ev.Category),
	}
}
