package patrimonio

import (
	"testing"
	"time"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in       string
		value    string
		currency string
		ok       bool
	}{
		{"100 EUR", "100", "EUR", true},
		{"0.0025 BTC", "0.0025", "BTC", true},
		{"1234,56 EUR", "1234.56", "EUR", true},
		{"42", "42", "", true},
		{"abc EUR", "0", "EUR", false},
		{"", "0", "", false},
		{"-- USDT", "0", "USDT", false},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			value, currency, ok := parseAmount(c.in)
			if ok != c.ok || currency != c.currency || value.String() != c.value {
				t.Errorf("parseAmount(%q) = %s %q %v, want %s %q %v",
					c.in, value, currency, ok, c.value, c.currency, c.ok)
			}
		})
	}
}

func TestDecodeTradeRecord_FallbackDiagnostics(t *testing.T) {
	ev, diags := DecodeTradeRecord(TradeRecord{
		Timestamp:      "Mar 5, 2024 10:00:00",
		Pair:           "BTC/USDT",
		Side:           "Buy",
		Price:          "not-a-price USDT",
		OrderAmount:    "0.01 BTC",
		FilledAmount:   "0.01 BTC",
		ExecutedAmount: "500 USDT",
		TradeFee:       "0.5 USDT",
	})

	if !ev.Price.IsZero() {
		t.Errorf("Price = %v, want zero fallback", ev.Price)
	}
	// the rest of the record decodes normally around the bad field
	if !ev.FilledUnits.Equal(Q(0.01)) || !ev.Executed.Equal(M(500, "USDT")) {
		t.Errorf("healthy fields degraded: %+v", ev)
	}
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	d := diags[0]
	if d.Field != "Price" || d.Raw != "not-a-price USDT" || !d.Time.Equal(at(5)) {
		t.Errorf("diagnostic = %+v", d)
	}
}

func TestDecodeTradeRecord_DefaultCategory(t *testing.T) {
	r := TradeRecord{
		Timestamp:      "Mar 5, 2024 10:00:00",
		Pair:           "BTC/USDT",
		Side:           "Buy",
		Price:          "50000 USDT",
		OrderAmount:    "0.01 BTC",
		FilledAmount:   "0.01 BTC",
		ExecutedAmount: "500 USDT",
		TradeFee:       "0 USDT",
	}

	ev, _ := DecodeTradeRecord(r)
	if ev.Category != Plain {
		t.Errorf("Category = %q, want %q on empty Info", ev.Category, Plain)
	}

	r.Info = "Earn"
	ev, _ = DecodeTradeRecord(r)
	if !ev.RewardCredit() {
		t.Errorf("Category = %q, want a reward credit", ev.Category)
	}
}

func TestDecodeFiatRecord_BadTimestamp(t *testing.T) {
	ev, diags := DecodeFiatRecord(FiatRecord{
		Timestamp:    "yesterday",
		Type:         "Top Up FIAT",
		FilledAmount: "100 EUR",
	})

	if !ev.Time.IsZero() {
		t.Errorf("Time = %v, want zero fallback", ev.Time)
	}
	if !ev.Amount.Equal(eur(100)) {
		t.Errorf("Amount = %v, want 100 EUR", ev.Amount)
	}
	if len(diags) != 1 || diags[0].Field != "Timestamp" || !diags[0].Time.IsZero() {
		t.Errorf("diagnostics = %+v", diags)
	}
}

func TestTradeRecord_RoundTrip(t *testing.T) {
	ev := trade(5, "ETH/USDT", Sell, 2000, 1.5, 1.5, 3000, 3, "USDT", Plain)

	got, diags := DecodeTradeRecord(EncodeTradeRecord(ev))

	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if got.Pair != ev.Pair || got.Side != ev.Side || !got.Time.Equal(ev.Time) {
		t.Errorf("round trip identity = %+v", got)
	}
	if !got.Price.Equal(ev.Price) || !got.FilledUnits.Equal(ev.FilledUnits) || !got.Fee.Equal(ev.Fee) {
		t.Errorf("round trip amounts = %+v", got)
	}
}

func TestLedger_ChronologicalOrder(t *testing.T) {
	l := NewLedger()
	l.AppendFiat(topUp(10, 300), topUp(2, 100), topUp(5, 200))

	var prev time.Time
	for i, ev := range l.Fiat() {
		if ev.Time.Before(prev) {
			t.Errorf("event %d out of order: %v before %v", i, ev.Time, prev)
		}
		prev = ev.Time
	}
}

func TestLedger_StableOrderOnEqualTimestamps(t *testing.T) {
	a := topUp(3, 100)
	a.Note = "first"
	b := withdrawal(3, 50)
	b.Note = "second"
	c := topUp(3, 25)
	c.Note = "third"

	l := NewLedger()
	l.AppendFiat(a, b, c)
	l.AppendFiat(topUp(1, 10)) // re-sorts the whole log

	fiat := l.Fiat()
	if len(fiat) != 4 {
		t.Fatalf("got %d events, want 4", len(fiat))
	}
	for i, want := range []string{"", "first", "second", "third"} {
		if fiat[i].Note != want {
			t.Errorf("event %d note = %q, want %q", i, fiat[i].Note, want)
		}
	}
}

func TestLedger_UnparseableTimestampSortsFirst(t *testing.T) {
	l := DecodeLedger([]FiatRecord{
		{Timestamp: "Mar 5, 2024 10:00:00", Type: "Top Up FIAT", FilledAmount: "100 EUR"},
		{Timestamp: "garbage", Type: "Top Up FIAT", FilledAmount: "50 EUR"},
	}, nil)

	fiat := l.Fiat()
	if !fiat[0].Time.IsZero() {
		t.Errorf("zero-time event should sort first, got %v", fiat[0].Time)
	}
	if len(l.Diagnostics()) != 1 {
		t.Errorf("got %d diagnostics, want 1", len(l.Diagnostics()))
	}
}

func TestLedger_DeleteAt(t *testing.T) {
	l := NewLedger()
	l.AppendFiat(topUp(1, 100))
	l.AppendTrade(trade(2, "BTC/USDT", Buy, 50000, 0.01, 0.01, 500, 0, "USDT", Plain))

	if !l.DeleteAt(at(2).Format(TimestampLayout)) {
		t.Fatal("DeleteAt missed the trade")
	}
	if got := len(l.Trades()); got != 0 {
		t.Errorf("left %d trades, want 0", got)
	}
	if l.DeleteAt("Jan 1, 1999 00:00:00") {
		t.Error("DeleteAt matched a timestamp not in the log")
	}
}

func TestLedger_NewestTime(t *testing.T) {
	l := NewLedger()
	if !l.NewestTime().IsZero() {
		t.Errorf("empty ledger NewestTime = %v", l.NewestTime())
	}
	l.AppendFiat(topUp(3, 100))
	l.AppendTrade(trade(8, "BTC/USDT", Buy, 50000, 0.01, 0.01, 500, 0, "USDT", Plain))
	if !l.NewestTime().Equal(at(8)) {
		t.Errorf("NewestTime = %v, want %v", l.NewestTime(), at(8))
	}
}
