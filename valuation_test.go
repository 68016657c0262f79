package patrimonio

import (
	"testing"
)

// snapshot builds a price snapshot directly for tests.
func snapshot(prices map[AssetID]PricePoint) PriceSnapshot {
	return PriceSnapshot{prices: prices}
}

func TestValuate_PerAsset(t *testing.T) {
	l := NewLedger()
	l.AppendFiat(topUp(1, 2000))
	l.AppendTrade(
		trade(2, "USDT/EUR", Buy, 1, 1000, 1000, 1000, 0, "USDT", Plain),
		trade(3, "BTC/USDT", Buy, 50000, 0.02, 0.02, 1000, 0, "BTC", Plain),
	)
	b := l.Replay(eur(0))

	snap := snapshot(map[AssetID]PricePoint{
		CryptoAsset("BTC"):  {USD: usd(60000), EUR: eur(55000)},
		CryptoAsset("USDT"): {USD: usd(1), EUR: eur(0.92)},
	})

	v := Valuate(b, snap)

	btc, ok := v.Asset(CryptoAsset("BTC"))
	if !ok {
		t.Fatal("missing BTC row")
	}
	if !btc.HasValue || !btc.Value.Equal(eur(1100)) {
		t.Errorf("BTC value = %v (%v), want 1100 EUR", btc.Value, btc.HasValue)
	}
	// gain compares the USD price against the USD cost basis
	if !btc.HasGain || !btc.Gain.Equal(Percent(20)) {
		t.Errorf("BTC gain = %v (%v), want 20%%", btc.Gain, btc.HasGain)
	}

	// liquidity counts cash plus the bridge balance at its EUR price
	if want := eur(1000); !v.CashEUR.Equal(want) {
		t.Errorf("CashEUR = %v, want %v", v.CashEUR, want)
	}
	if want := eur(1000); !v.Liquidity.Equal(want) {
		t.Errorf("Liquidity = %v, want %v", v.Liquidity, want)
	}
	if want := eur(1000); !v.InvestedExCash.Equal(want) {
		t.Errorf("InvestedExCash = %v, want %v", v.InvestedExCash, want)
	}
}

func TestValuate_UnknownPriceDoesNotBlockOthers(t *testing.T) {
	l := NewLedger()
	l.AppendTrade(
		trade(1, "BTC/USDT", Buy, 50000, 0.02, 0.02, 1000, 0, "BTC", Plain),
		trade(2, "ETH/USDT", Buy, 2000, 1, 1, 2000, 0, "ETH", Plain),
	)
	b := l.Replay(eur(0))

	// only BTC has a quote
	snap := snapshot(map[AssetID]PricePoint{
		CryptoAsset("BTC"): {USD: usd(50000), EUR: eur(46000)},
	})

	v := Valuate(b, snap)

	btc, _ := v.Asset(CryptoAsset("BTC"))
	if !btc.HasValue {
		t.Error("BTC value should be known")
	}
	eth, _ := v.Asset(CryptoAsset("ETH"))
	if eth.HasValue || eth.HasGain {
		t.Error("ETH value and gain should be unknown, not zero")
	}
	if want := eur(920); !v.TotalCrypto.Equal(want) {
		t.Errorf("TotalCrypto = %v, want %v", v.TotalCrypto, want)
	}
}

func TestValuate_GainUndefinedOnZeroAverage(t *testing.T) {
	if _, ok := PercentGain(eur(10), Money{}, false); ok {
		t.Error("gain must be unknown when the average is undefined")
	}
	if _, ok := PercentGain(eur(10), eur(0), true); ok {
		t.Error("gain must be unknown when the average is zero")
	}
	if g, ok := PercentGain(eur(110), eur(100), true); !ok || !g.Equal(Percent(10)) {
		t.Errorf("gain = %v (%v), want 10%%", g, ok)
	}
	if g, ok := PercentGain(eur(90), eur(100), true); !ok || !g.Equal(Percent(-10)) {
		t.Errorf("gain = %v (%v), want -10%%", g, ok)
	}
}

func TestValuate_DepositReservationReducesCash(t *testing.T) {
	l := NewLedger()
	l.AppendFiat(topUp(1, 1000))
	b := l.Replay(eur(0))

	v := ValuateWithReserved(b, snapshot(nil), eur(400))

	if want := eur(600); !v.CashEUR.Equal(want) {
		t.Errorf("CashEUR = %v, want %v", v.CashEUR, want)
	}
	if want := eur(600); !v.Liquidity.Equal(want) {
		t.Errorf("Liquidity = %v, want %v", v.Liquidity, want)
	}
}

func TestValuate_FundUsesManualPrice(t *testing.T) {
	l := NewLedger()
	l.AppendFiat(topUp(1, 5000))
	l.AppendTrade(trade(2, "VWCE/EUR", Buy, 100, 10, 10, 1000, 0, "EUR", FundStyle))
	b := l.Replay(eur(0))

	snap := BuildSnapshot(nil, nil, map[string]Money{"VWCE": eur(110)})
	v := Valuate(b, snap)

	fund, ok := v.Asset(FundAsset("VWCE"))
	if !ok {
		t.Fatal("missing fund row")
	}
	if !fund.HasValue || !fund.Value.Equal(eur(1100)) {
		t.Errorf("fund value = %v (%v), want 1100 EUR", fund.Value, fund.HasValue)
	}
	if !fund.HasGain || !fund.Gain.Equal(Percent(10)) {
		t.Errorf("fund gain = %v (%v), want 10%%", fund.Gain, fund.HasGain)
	}
	if want := eur(1100); !v.TotalFund.Equal(want) {
		t.Errorf("TotalFund = %v, want %v", v.TotalFund, want)
	}
}

func TestBuildSnapshot_MapsPairsToSymbols(t *testing.T) {
	mapping := CryptoMapping{
		"BTC/USDT": "bitcoin",
		"USDT/EUR": "tether",
	}
	oracle := map[string]PricePoint{
		"bitcoin": {USD: usd(60000), EUR: eur(55000)},
		"tether":  {USD: usd(1), EUR: eur(0.92)},
	}

	snap := BuildSnapshot(oracle, mapping, map[string]Money{"VWCE": eur(100)})

	if pp, ok := snap.Price(CryptoAsset("BTC")); !ok || !pp.EUR.Equal(eur(55000)) {
		t.Errorf("BTC price = %v (%v)", pp.EUR, ok)
	}
	if pp, ok := snap.Price(CryptoAsset("USDT")); !ok || !pp.EUR.Equal(eur(0.92)) {
		t.Errorf("USDT price = %v (%v)", pp.EUR, ok)
	}
	if pp, ok := snap.Price(FundAsset("VWCE")); !ok || !pp.EUR.Equal(eur(100)) {
		t.Errorf("VWCE price = %v (%v)", pp.EUR, ok)
	}
	if _, ok := snap.Price(CryptoAsset("ETH")); ok {
		t.Error("unexpected ETH price")
	}
}
