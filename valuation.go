package patrimonio

import (
	"github.com/shopspring/decimal"
)

// PricePoint is the quoted price of an asset, in USD and in EUR.
// A zero component means that side of the quote is unknown.
type PricePoint struct {
	USD Money
	EUR Money
}

// PriceSnapshot maps assets to their current prices. It merges the live
// oracle quotes (crypto) with the manual price table (funds); a missing
// asset simply has no known price.
type PriceSnapshot struct {
	prices map[AssetID]PricePoint
}

// BuildSnapshot assembles a snapshot from raw oracle quotes keyed by oracle
// identifier, the pair-to-identifier mapping, and the manual fund price
// table. An empty oracle response yields a snapshot with fund prices only.
func BuildSnapshot(oracle map[string]PricePoint, mapping CryptoMapping, fund map[string]Money) PriceSnapshot {
	s := PriceSnapshot{prices: make(map[AssetID]PricePoint)}
	for pair, id := range mapping {
		pp, ok := oracle[id]
		if !ok {
			continue
		}
		s.prices[CryptoAsset(Pair(pair).Base())] = pp
	}
	for symbol, price := range fund {
		s.prices[FundAsset(symbol)] = PricePoint{EUR: M(0, EUR).Add(price)}
	}
	return s
}

// Price returns the quote for an asset and whether one is known.
func (s PriceSnapshot) Price(a AssetID) (PricePoint, bool) {
	pp, ok := s.prices[a]
	return pp, ok
}

// AssetValuation is the market view of a single position. Every "unknown"
// is explicit: a missing price never blocks the valuation of the others.
type AssetValuation struct {
	Asset AssetID
	Units Quantity

	AvgCostEUR Money
	HasAvgCost bool

	PriceEUR    Money
	HasPriceEUR bool
	PriceUSD    Money
	HasPriceUSD bool

	Value    Money // Units * PriceEUR
	HasValue bool

	Gain    Percent // against the avg cost, in the cost's own currency
	HasGain bool
}

// Valuation is the full market view of the replayed book.
type Valuation struct {
	Assets []AssetValuation

	CashEUR       Money // effective cash, after deposit reservations
	BridgeBalance Quantity

	Liquidity      Money // cash + bridge balance at its EUR price
	TotalCrypto    Money // coins excluding the bridge currency
	TotalFund      Money
	InvestedExCash Money // total invested minus effective cash
	CurrentExCash  Money // current value of everything but cash

	Diagnostics []Diagnostic
}

// PercentGain computes (current-avg)/avg*100. It returns false when the
// average is undefined or zero, it never divides by zero.
func PercentGain(current Money, avg Money, hasAvg bool) (Percent, bool) {
	if !hasAvg || avg.IsZero() {
		return 0, false
	}
	ratio := current.value.Sub(avg.value).Div(avg.value).Mul(decimal.NewFromInt(100))
	return Percent(ratio.InexactFloat64()), true
}

// Valuate combines the replayed book with a price snapshot. reserved is the
// cash locked by still-active time deposits; it is subtracted from the raw
// EUR balance before anything else. Valuate is pure and read-only.
func Valuate(b *Book, snap PriceSnapshot) *Valuation {
	return ValuateWithReserved(b, snap, M(0, EUR))
}

// ValuateWithReserved is Valuate with a deposit reservation applied to the
// cash balance.
func ValuateWithReserved(b *Book, snap PriceSnapshot, reserved Money) *Valuation {
	v := &Valuation{
		CashEUR:       b.EURBalance.Sub(reserved),
		BridgeBalance: b.BridgeBalance,
		Liquidity:     M(0, EUR),
		TotalCrypto:   M(0, EUR),
		TotalFund:     M(0, EUR),
		CurrentExCash: M(0, EUR),
		Diagnostics:   b.Diagnostics,
	}

	for _, pos := range b.Positions() {
		av := AssetValuation{Asset: pos.Asset, Units: pos.Units}
		if pos.Asset == CryptoAsset(BridgeSymbol) {
			// The bridge position's units come from the bridge balance
			// accumulator, the two can diverge on partial fills.
			av.Units = b.BridgeBalance
		}
		av.AvgCostEUR, av.HasAvgCost = pos.AvgCostEUR()

		if pp, ok := snap.Price(pos.Asset); ok {
			if !pp.EUR.IsZero() {
				av.PriceEUR, av.HasPriceEUR = pp.EUR, true
			}
			if !pp.USD.IsZero() {
				av.PriceUSD, av.HasPriceUSD = pp.USD, true
			}
		}

		if av.HasPriceEUR {
			av.Value, av.HasValue = av.PriceEUR.Mul(av.Units), true
		}

		// Coins accumulate cost in USD, the bridge and funds in EUR; the
		// gain compares like with like.
		if pos.Asset.Class == Crypto && pos.Asset.Symbol != BridgeSymbol {
			avgUSD, hasUSD := pos.AvgCostUSD()
			if av.HasPriceUSD {
				av.Gain, av.HasGain = PercentGain(av.PriceUSD, avgUSD, hasUSD)
			}
		} else if av.HasPriceEUR {
			av.Gain, av.HasGain = PercentGain(av.PriceEUR, av.AvgCostEUR, av.HasAvgCost)
		}

		v.Assets = append(v.Assets, av)

		if av.HasValue {
			v.CurrentExCash = v.CurrentExCash.Add(av.Value)
			switch {
			case pos.Asset == CryptoAsset(BridgeSymbol):
				// counted in liquidity below
			case pos.Asset.Class == Crypto:
				v.TotalCrypto = v.TotalCrypto.Add(av.Value)
			case pos.Asset.Class == Fund:
				v.TotalFund = v.TotalFund.Add(av.Value)
			}
		}
	}

	v.Liquidity = v.CashEUR
	if pp, ok := snap.Price(CryptoAsset(BridgeSymbol)); ok && !pp.EUR.IsZero() {
		v.Liquidity = v.Liquidity.Add(pp.EUR.Mul(v.BridgeBalance))
	}
	v.InvestedExCash = b.TotalInvested.Sub(v.CashEUR)
	return v
}

// Asset returns the valuation row for an asset.
func (v *Valuation) Asset(a AssetID) (AssetValuation, bool) {
	for _, av := range v.Assets {
		if av.Asset == a {
			return av, true
		}
	}
	return AssetValuation{}, false
}
