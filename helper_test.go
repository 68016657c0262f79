package patrimonio

import "time"

// eur is a helper for tests to create euro money from const.
func eur(v float64) Money { return M(v, EUR) }

// usd is a helper for tests to create usd money from const.
func usd(v float64) Money { return M(v, USD) }

// at returns a deterministic timestamp on the given day of March 2024.
func at(day int) time.Time {
	return time.Date(2024, time.March, day, 10, 0, 0, 0, time.UTC)
}

func topUp(day int, amount float64) FiatEvent {
	return FiatEvent{Time: at(day), Kind: TopUp, Amount: eur(amount)}
}

func withdrawal(day int, amount float64) FiatEvent {
	return FiatEvent{Time: at(day), Kind: Withdraw, Amount: eur(amount)}
}

// trade builds a trade event the way the decoded log would.
func trade(day int, pair string, side Side, price, order, filled, executed, fee float64, feeCur string, cat Category) TradeEvent {
	p := Pair(pair)
	return TradeEvent{
		Time:        at(day),
		Pair:        p,
		Side:        side,
		Price:       M(price, p.Quote()),
		OrderUnits:  Q(order),
		FilledUnits: Q(filled),
		Executed:    M(executed, p.Quote()),
		Fee:         M(fee, feeCur),
		Category:    cat,
	}
}
