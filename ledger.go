package patrimonio

import (
	"sort"
	"time"
)

// Ledger holds the two transaction logs, in chronological order.
//
// The ledger never mutates history: events are only appended, and every
// query replays the full log again. Events whose timestamp could not be
// parsed sort first (zero time) and keep their relative log order.
type Ledger struct {
	fiat   []FiatEvent
	trades []TradeEvent
	diags  []Diagnostic
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// DecodeLedger builds a ledger from persisted records.
func DecodeLedger(fiat []FiatRecord, trades []TradeRecord) *Ledger {
	l := NewLedger()
	for _, r := range fiat {
		ev, diags := DecodeFiatRecord(r)
		l.fiat = append(l.fiat, ev)
		l.diags = append(l.diags, diags...)
	}
	for _, r := range trades {
		ev, diags := DecodeTradeRecord(r)
		l.trades = append(l.trades, ev)
		l.diags = append(l.diags, diags...)
	}
	l.stableSort()
	return l
}

// AppendFiat appends fiat events and maintains the chronological order.
func (l *Ledger) AppendFiat(evs ...FiatEvent) {
	l.fiat = append(l.fiat, evs...)
	l.stableSort()
}

// AppendTrade appends trade events and maintains the chronological order.
func (l *Ledger) AppendTrade(evs ...TradeEvent) {
	l.trades = append(l.trades, evs...)
	l.stableSort()
}

// stableSort sorts both logs by timestamp. The sort is stable: events with
// the same timestamp keep their original log order. This is load-bearing,
// it is what makes the replay reproducible.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.fiat, func(i, j int) bool {
		return l.fiat[i].Time.Before(l.fiat[j].Time)
	})
	sort.SliceStable(l.trades, func(i, j int) bool {
		return l.trades[i].Time.Before(l.trades[j].Time)
	})
}

// Fiat returns the fiat events in chronological order.
// The returned slice is the ledger's own, callers must not mutate it.
func (l *Ledger) Fiat() []FiatEvent { return l.fiat }

// Trades returns the trade events in chronological order.
// The returned slice is the ledger's own, callers must not mutate it.
func (l *Ledger) Trades() []TradeEvent { return l.trades }

// Diagnostics returns the parse fallbacks recorded while decoding.
func (l *Ledger) Diagnostics() []Diagnostic { return l.diags }

// DeleteAt removes the first event, from either log, whose timestamp
// formats to the given text. It reports whether an event was removed.
func (l *Ledger) DeleteAt(timestamp string) bool {
	for i, ev := range l.fiat {
		if ev.Time.Format(TimestampLayout) == timestamp {
			l.fiat = append(l.fiat[:i], l.fiat[i+1:]...)
			return true
		}
	}
	for i, ev := range l.trades {
		if ev.Time.Format(TimestampLayout) == timestamp {
			l.trades = append(l.trades[:i], l.trades[i+1:]...)
			return true
		}
	}
	return false
}

// NewestTime returns the timestamp of the most recent event in either log.
func (l *Ledger) NewestTime() time.Time {
	var newest time.Time
	if n := len(l.fiat); n > 0 {
		newest = l.fiat[n-1].Time
	}
	if n := len(l.trades); n > 0 && l.trades[n-1].Time.After(newest) {
		newest = l.trades[n-1].Time
	}
	return newest
}
