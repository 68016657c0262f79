package patrimonio

import (
	"slices"
)

// USD is the currency USD-quoted cost bases are accumulated in. Trades
// settled in the bridge currency are treated as USD-denominated.
const USD = "USD"

// Position is the replayed state of a single asset: its unit balance and
// its average cost bases. The average cost is defined only while the
// cumulative contributing-unit denominator is strictly positive; it is
// "undefined" otherwise, never zero.
type Position struct {
	Asset AssetID
	Units Quantity

	costEUR Money    // cumulative EUR cost numerator
	costUSD Money    // cumulative USD cost numerator
	denom   Quantity // cumulative contributing units

	avgEUR    Money
	avgUSD    Money
	hasAvgEUR bool
	hasAvgUSD bool
}

// AvgCostEUR returns the average EUR cost per unit, and whether it is defined.
func (p Position) AvgCostEUR() (Money, bool) { return p.avgEUR, p.hasAvgEUR }

// AvgCostUSD returns the average USD cost per unit, and whether it is defined.
func (p Position) AvgCostUSD() (Money, bool) { return p.avgUSD, p.hasAvgUSD }

// Book is the result of replaying the full log: every asset position, the
// final EUR cash balance, the bridge-currency balance and the running
// total of invested fiat. A Book is a snapshot, it holds no reference to
// the ledger and is never updated incrementally.
type Book struct {
	EURBalance    Money
	BridgeBalance Quantity
	TotalInvested Money
	Diagnostics   []Diagnostic

	positions map[AssetID]*Position
}

// Position returns the replayed position for an asset.
func (b *Book) Position(a AssetID) (Position, bool) {
	pos, ok := b.positions[a]
	if !ok {
		return Position{Asset: a}, false
	}
	return *pos, true
}

// Positions returns all positions in deterministic order: crypto first,
// then funds, alphabetical within each class.
func (b *Book) Positions() []Position {
	out := make([]Position, 0, len(b.positions))
	for _, pos := range b.positions {
		out = append(out, *pos)
	}
	slices.SortFunc(out, func(a, c Position) int {
		if a.Asset.less(c.Asset) {
			return -1
		}
		if c.Asset.less(a.Asset) {
			return 1
		}
		return 0
	})
	return out
}

func (b *Book) position(a AssetID) *Position {
	pos, ok := b.positions[a]
	if !ok {
		pos = &Position{Asset: a, costEUR: M(0, EUR), costUSD: M(0, USD)}
		b.positions[a] = pos
	}
	return pos
}

// Replay folds the whole ledger into a Book. It is pure and deterministic:
// the same ledger and initial balance always produce the same Book, and it
// is total, malformed numeric text was already degraded to zero at decode
// time (see Diagnostics).
func (l *Ledger) Replay(initialEUR Money) *Book {
	b := &Book{
		EURBalance:    M(0, EUR).Add(initialEUR),
		TotalInvested: M(0, EUR),
		Diagnostics:   slices.Clone(l.diags),
		positions:     make(map[AssetID]*Position),
	}

	for _, ev := range l.fiat {
		switch ev.Kind {
		case TopUp:
			b.EURBalance = b.EURBalance.Add(ev.Amount)
			b.TotalInvested = b.TotalInvested.Add(ev.Amount)
		case Withdraw:
			b.EURBalance = b.EURBalance.Sub(ev.Amount)
			b.TotalInvested = b.TotalInvested.Sub(ev.Amount)
		}
	}

	for _, ev := range l.trades {
		b.applyTrade(ev)
	}

	b.average()
	return b
}

// applyTrade applies a single trade event to the book.
func (b *Book) applyTrade(ev TradeEvent) {
	// Reward credits contribute nothing on the buy side, not even units:
	// they would dilute the cost basis with zero-cost fills. Sells of
	// rewarded units are processed normally.
	if ev.Side == Buy && ev.RewardCredit() {
		return
	}

	base := ev.Pair.Base()

	filled := ev.FilledUnits
	if ev.Fee.Currency() == base {
		// Net settlement: the fee was withheld from the delivered units.
		filled = filled.Sub(Q(ev.Fee.value))
	}

	executedEUR := M(ev.Executed.value, EUR)
	executedUSD := M(ev.Executed.value, USD)
	proceedsEUR := M(ev.Executed.value.Sub(ev.Fee.value), EUR)

	switch {
	case ev.Category == FundStyle:
		pos := b.position(FundAsset(base))
		switch {
		case ev.Side == Buy:
			pos.Units = pos.Units.Add(filled)
			pos.costEUR = pos.costEUR.Add(executedEUR)
			pos.denom = pos.denom.Add(filled)
			b.EURBalance = b.EURBalance.Sub(executedEUR)
		case ev.Side == Sell:
			pos.Units = pos.Units.Sub(filled)
			pos.costEUR = pos.costEUR.Sub(executedEUR)
			pos.denom = pos.denom.Sub(filled)
			b.EURBalance = b.EURBalance.Add(proceedsEUR)
		}

	case ev.Pair == bridgePair:
		// The fiat side of the bridge currency.
		pos := b.position(CryptoAsset(base))
		switch {
		case ev.Side == Buy:
			pos.Units = pos.Units.Add(filled)
			pos.costEUR = pos.costEUR.Add(executedEUR)
			pos.denom = pos.denom.Add(filled)
			b.EURBalance = b.EURBalance.Sub(executedEUR)
			b.BridgeBalance = b.BridgeBalance.Add(filled)
		case ev.Side == Sell:
			// Sells decrement by the ordered units, not the filled ones.
			// Carried over from the source data for compatibility.
			pos.Units = pos.Units.Sub(ev.OrderUnits)
			pos.costEUR = pos.costEUR.Sub(executedEUR)
			pos.denom = pos.denom.Sub(ev.OrderUnits)
			b.EURBalance = b.EURBalance.Add(proceedsEUR)
			b.BridgeBalance = b.BridgeBalance.Sub(filled)
		}

	default:
		// Coin traded against the bridge currency.
		pos := b.position(CryptoAsset(base))
		switch {
		case ev.Side == Buy:
			pos.Units = pos.Units.Add(filled)
			if ev.Price.IsPositive() {
				pos.costUSD = pos.costUSD.Add(executedUSD)
				pos.denom = pos.denom.Add(filled)
				b.BridgeBalance = b.BridgeBalance.Sub(Q(ev.Executed.value))
			}
		case ev.Side == Sell:
			pos.Units = pos.Units.Sub(filled)
			pos.costUSD = pos.costUSD.Sub(executedUSD)
			pos.denom = pos.denom.Sub(filled)
			b.BridgeBalance = b.BridgeBalance.Add(Q(ev.Executed.value.Sub(ev.Fee.value)))
		}
	}
}

// average runs the post-pass: for every symbol whose contributing-unit
// denominator is strictly positive, compute the average cost basis, then
// translate USD averages to EUR through the bridge's own EUR average.
func (b *Book) average() {
	for _, pos := range b.positions {
		if !pos.denom.IsPositive() {
			continue
		}
		if pos.Asset.Class == Fund || pos.Asset.Symbol == BridgeSymbol {
			pos.avgEUR = pos.costEUR.Div(pos.denom.Abs())
			pos.hasAvgEUR = true
		} else {
			pos.avgUSD = pos.costUSD.Div(pos.denom.Abs())
			pos.hasAvgUSD = true
		}
	}

	// 1:1 fallback when the bridge average is undefined or non-positive.
	rate := M(1, EUR)
	if bp, ok := b.positions[CryptoAsset(BridgeSymbol)]; ok && bp.hasAvgEUR && bp.avgEUR.IsPositive() {
		rate = bp.avgEUR
	}
	for _, pos := range b.positions {
		if pos.hasAvgUSD {
			pos.avgEUR = pos.avgUSD.MulRate(rate)
			pos.hasAvgEUR = true
		}
	}
}
