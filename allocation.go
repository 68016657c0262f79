package patrimonio

import (
	"github.com/shopspring/decimal"
)

// FundTarget is the desired share for one fund-style holding. Declaration
// order in the config is the display order, it must be preserved.
type FundTarget struct {
	Symbol string  `yaml:"symbol"`
	Target Percent `yaml:"target"`
}

// Targets is the allocation-target configuration: the desired percentage
// share of the total patrimony for each category.
type Targets struct {
	Liquidity  Percent      `yaml:"liquidita"`
	Funds      []FundTarget `yaml:"etf"`
	BTC        Percent      `yaml:"btc"`
	ETH        Percent      `yaml:"eth"`
	SOL        Percent      `yaml:"sol"`
	Altcoins   Percent      `yaml:"altcoin"`
	Deposits   Percent      `yaml:"depositi"`
	RealEstate Percent      `yaml:"immobili"`
}

// CategoryValues aggregates the current EUR value of each allocation
// category. Unknown prices contribute zero, they never block the plan.
type CategoryValues struct {
	Liquidity  Money
	Funds      map[string]Money
	BTC        Money
	ETH        Money
	SOL        Money
	Altcoins   Money
	Deposits   Money
	RealEstate Money
}

// CategoriesOf derives the category values from a valuation plus the two
// auxiliary ledgers' totals.
func CategoriesOf(v *Valuation, deposits, realEstate Money) CategoryValues {
	c := CategoryValues{
		Liquidity:  v.Liquidity,
		Funds:      make(map[string]Money),
		BTC:        M(0, EUR),
		ETH:        M(0, EUR),
		SOL:        M(0, EUR),
		Altcoins:   M(0, EUR),
		Deposits:   M(0, EUR).Add(deposits),
		RealEstate: M(0, EUR).Add(realEstate),
	}
	for _, av := range v.Assets {
		if !av.HasValue {
			continue
		}
		switch {
		case av.Asset.Class == Fund:
			c.Funds[av.Asset.Symbol] = av.Value
		case av.Asset == CryptoAsset(BridgeSymbol):
			// bridge is liquidity, already counted
		case av.Asset.Symbol == "BTC":
			c.BTC = av.Value
		case av.Asset.Symbol == "ETH":
			c.ETH = av.Value
		case av.Asset.Symbol == "SOL":
			c.SOL = av.Value
		default:
			c.Altcoins = c.Altcoins.Add(av.Value)
		}
	}
	return c
}

// AllocationEntry compares one category's actual share against its target.
type AllocationEntry struct {
	Label  string
	Value  Money
	Actual Percent
	Target Percent
}

// AllocationReport is the ordered allocation-vs-target comparison.
// The entry order is a contract consumers rely on for stable display:
// liquidity, funds in declaration order, BTC, ETH, SOL, other coins,
// deposits, real estate.
type AllocationReport struct {
	Entries []AllocationEntry
	Total   Money
	NoData  bool // true when the total patrimony value is not positive
}

// Plan compares category values against their targets. When the total is
// not positive it returns an explicit no-data report instead of ratios.
func Plan(values CategoryValues, targets Targets) *AllocationReport {
	// Every held fund counts in the total, targeted or not; a missing
	// target only means the fund compares against 0%.
	total := values.Liquidity.
		Add(values.BTC).Add(values.ETH).Add(values.SOL).Add(values.Altcoins).
		Add(values.Deposits).Add(values.RealEstate)
	for _, fv := range values.Funds {
		total = total.Add(fv)
	}

	if !total.IsPositive() {
		return &AllocationReport{Total: total, NoData: true}
	}

	actual := func(value Money) Percent {
		ratio := value.value.Div(total.value).Mul(decimal.NewFromInt(100))
		return Percent(ratio.InexactFloat64())
	}
	entry := func(label string, value Money, target Percent) AllocationEntry {
		return AllocationEntry{Label: label, Value: value, Actual: actual(value), Target: target}
	}

	r := &AllocationReport{Total: total}
	r.Entries = append(r.Entries, entry("Liquidity (EUR + "+BridgeSymbol+")", values.Liquidity, targets.Liquidity))
	for _, ft := range targets.Funds {
		fv, ok := values.Funds[ft.Symbol]
		if !ok {
			fv = M(0, EUR)
		}
		r.Entries = append(r.Entries, entry(ft.Symbol, fv, ft.Target))
	}
	r.Entries = append(r.Entries,
		entry("Bitcoin (BTC)", values.BTC, targets.BTC),
		entry("Ethereum (ETH)", values.ETH, targets.ETH),
		entry("Solana (SOL)", values.SOL, targets.SOL),
		entry("Altcoins", values.Altcoins, targets.Altcoins),
		entry("Deposits", values.Deposits, targets.Deposits),
		entry("Real estate", values.RealEstate, targets.RealEstate),
	)
	return r
}
