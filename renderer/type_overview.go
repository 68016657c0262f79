package renderer

import (
	"fmt"

	"github.com/etnz/patrimonio"
)

// Overview is the renderable form of a patrimony summary. Amounts that are
// always defined keep their exact types (Money, Quantity); the optional ones
// are preformatted, "n/a" when unknown, so templates stay branch-free.
type Overview struct {
	Date string `json:"date"`

	Assets []OverviewAsset `json:"assets"`

	CashEUR       patrimonio.Money    `json:"cashEUR"`
	BridgeBalance patrimonio.Quantity `json:"bridgeBalance"`
	Liquidity     patrimonio.Money    `json:"liquidity"`
	TotalCrypto   patrimonio.Money    `json:"totalCrypto"`
	TotalFund     patrimonio.Money    `json:"totalFund"`
	Invested      patrimonio.Money    `json:"invested"`
	Current       patrimonio.Money    `json:"current"`

	Deposits   []OverviewDeposit  `json:"deposits,omitempty"`
	Properties []OverviewProperty `json:"properties,omitempty"`

	Diagnostics []string `json:"diagnostics,omitempty"`
}

// OverviewAsset is a single position row.
type OverviewAsset struct {
	Symbol  string              `json:"symbol"`
	Class   string              `json:"class"`
	Units   patrimonio.Quantity `json:"units"`
	AvgCost string              `json:"avgCost"`
	Price   string              `json:"price"`
	Value   string              `json:"value"`
	Gain    string              `json:"gain"`
}

// OverviewDeposit is a single active deposit row.
type OverviewDeposit struct {
	Kind     string           `json:"kind"`
	Amount   patrimonio.Money `json:"amount"`
	Maturity string           `json:"maturity"`
}

// OverviewProperty is a single real-estate row.
type OverviewProperty struct {
	ID       string           `json:"id"`
	Kind     string           `json:"kind"`
	Value    patrimonio.Money `json:"value"`
	Invested patrimonio.Money `json:"invested"`
	Schedule string           `json:"schedule"` // "paid/total" or "-"
}

const na = "n/a"

func orNA(m patrimonio.Money, known bool) string {
	if !known {
		return na
	}
	return m.String()
}

// NewOverview builds the renderable view from a summary.
func NewOverview(s *patrimonio.Summary) *Overview {
	o := &Overview{
		Date:          s.On.Format(patrimonio.TimestampLayout),
		Assets:        make([]OverviewAsset, 0, len(s.Valuation.Assets)),
		CashEUR:       s.Valuation.CashEUR,
		BridgeBalance: s.Valuation.BridgeBalance,
		Liquidity:     s.Valuation.Liquidity,
		TotalCrypto:   s.Valuation.TotalCrypto,
		TotalFund:     s.Valuation.TotalFund,
		Invested:      s.Valuation.InvestedExCash,
		Current:       s.Valuation.CurrentExCash,
	}

	for _, av := range s.Valuation.Assets {
		row := OverviewAsset{
			Symbol:  av.Asset.Symbol,
			Class:   av.Asset.Class.String(),
			Units:   av.Units,
			AvgCost: orNA(av.AvgCostEUR, av.HasAvgCost),
			Price:   orNA(av.PriceEUR, av.HasPriceEUR),
			Value:   orNA(av.Value, av.HasValue),
			Gain:    na,
		}
		if av.HasGain {
			row.Gain = av.Gain.SignedString()
		}
		o.Assets = append(o.Assets, row)
	}

	for _, d := range s.Deposits {
		o.Deposits = append(o.Deposits, OverviewDeposit{
			Kind:     d.Kind,
			Amount:   d.Amount,
			Maturity: d.Maturity.Format(patrimonio.TimestampLayout),
		})
	}

	for _, p := range s.Properties {
		row := OverviewProperty{
			ID:       p.ID,
			Kind:     p.Kind,
			Value:    p.Value,
			Invested: p.Invested(),
			Schedule: "-",
		}
		if p.Mortgage {
			row.Schedule = fmt.Sprintf("%d/%d", p.PaymentsMade, p.InstallmentCount)
		}
		o.Properties = append(o.Properties, row)
	}

	for _, d := range s.Valuation.Diagnostics {
		o.Diagnostics = append(o.Diagnostics, d.String())
	}
	return o
}

// Allocation is the renderable form of an allocation report.
type Allocation struct {
	Total   patrimonio.Money `json:"total"`
	NoData  bool             `json:"noData"`
	Entries []AllocationRow  `json:"entries,omitempty"`
}

// AllocationRow is a single category comparison row.
type AllocationRow struct {
	Label  string             `json:"label"`
	Value  patrimonio.Money   `json:"value"`
	Actual patrimonio.Percent `json:"actual"`
	Target patrimonio.Percent `json:"target"`
	Delta  string             `json:"delta"` // signed actual-target gap
}

// NewAllocation builds the renderable view from an allocation report.
func NewAllocation(r *patrimonio.AllocationReport) *Allocation {
	a := &Allocation{Total: r.Total, NoData: r.NoData}
	for _, e := range r.Entries {
		a.Entries = append(a.Entries, AllocationRow{
			Label:  e.Label,
			Value:  e.Value,
			Actual: e.Actual,
			Target: e.Target,
			Delta:  (e.Actual - e.Target).SignedString(),
		})
	}
	return a
}
