package patrimonio

import "time"

// Summary is everything a display needs: the valuation of the replayed
// book, the allocation comparison, and the two auxiliary ledgers' views.
type Summary struct {
	On         time.Time
	Valuation  *Valuation
	Allocation *AllocationReport
	Deposits   []Deposit // still active at On
	Properties []Property
}

// BuildSummary runs the whole pipeline once: replay the log, reserve the
// active deposit principals out of cash, value the positions against the
// snapshot and compare the category aggregates to their targets. It reads
// the state and writes nothing; calling it twice yields identical results.
func BuildSummary(st *State, quotes map[string]PricePoint, mapping CryptoMapping, targets Targets, now time.Time) *Summary {
	book := st.Ledger.Replay(st.InitialEUR)
	snap := BuildSnapshot(quotes, mapping, st.FundPrices)

	reserved := st.Deposits.Reserved(now)
	valuation := ValuateWithReserved(book, snap, reserved)

	values := CategoriesOf(valuation, reserved, st.Properties.Invested())
	return &Summary{
		On:         now,
		Valuation:  valuation,
		Allocation: Plan(values, targets),
		Deposits:   st.Deposits.Active(now),
		Properties: st.Properties.All(),
	}
}
