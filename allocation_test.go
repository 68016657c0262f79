package patrimonio

import "testing"

func TestPlan_EntryOrder(t *testing.T) {
	values := CategoryValues{
		Liquidity:  eur(1000),
		Funds:      map[string]Money{"VWCE": eur(2000), "AGGH": eur(500)},
		BTC:        eur(1500),
		ETH:        eur(700),
		SOL:        eur(300),
		Altcoins:   eur(100),
		Deposits:   eur(4000),
		RealEstate: eur(9900),
	}
	targets := Targets{
		Liquidity: 10,
		Funds: []FundTarget{
			{Symbol: "VWCE", Target: 20},
			{Symbol: "AGGH", Target: 5},
		},
		BTC: 10, ETH: 5, SOL: 2, Altcoins: 3,
		Deposits: 20, RealEstate: 25,
	}

	r := Plan(values, targets)

	if r.NoData {
		t.Fatal("unexpected NoData")
	}
	if want := eur(20000); !r.Total.Equal(want) {
		t.Fatalf("Total = %v, want %v", r.Total, want)
	}

	wantLabels := []string{
		"Liquidity (EUR + USDT)",
		"VWCE",
		"AGGH",
		"Bitcoin (BTC)",
		"Ethereum (ETH)",
		"Solana (SOL)",
		"Altcoins",
		"Deposits",
		"Real estate",
	}
	if len(r.Entries) != len(wantLabels) {
		t.Fatalf("got %d entries, want %d", len(r.Entries), len(wantLabels))
	}
	for i, want := range wantLabels {
		if r.Entries[i].Label != want {
			t.Errorf("entry %d label = %q, want %q", i, r.Entries[i].Label, want)
		}
	}

	// actual = value/total*100 on a 20000 total
	if got := r.Entries[0]; !got.Actual.Equal(Percent(5)) || !got.Target.Equal(Percent(10)) {
		t.Errorf("liquidity actual/target = %v/%v, want 5%%/10%%", got.Actual, got.Target)
	}
	if got := r.Entries[1]; !got.Actual.Equal(Percent(10)) {
		t.Errorf("VWCE actual = %v, want 10%%", got.Actual)
	}
}

func TestPlan_TargetedFundWithoutHoldingShowsZero(t *testing.T) {
	values := CategoryValues{
		Liquidity: eur(1000),
		Funds:     map[string]Money{},
	}
	targets := Targets{
		Liquidity: 50,
		Funds:     []FundTarget{{Symbol: "SWDA", Target: 50}},
	}

	r := Plan(values, targets)

	if len(r.Entries) != 8 {
		t.Fatalf("got %d entries, want 8", len(r.Entries))
	}
	swda := r.Entries[1]
	if swda.Label != "SWDA" {
		t.Fatalf("entry 1 label = %q, want SWDA", swda.Label)
	}
	if !swda.Value.IsZero() || !swda.Actual.Equal(Percent(0)) || !swda.Target.Equal(Percent(50)) {
		t.Errorf("SWDA = %v/%v/%v, want 0/0%%/50%%", swda.Value, swda.Actual, swda.Target)
	}
}

func TestPlan_HeldFundWithoutTargetCountsInTotal(t *testing.T) {
	values := CategoryValues{
		Liquidity: eur(1000),
		Funds:     map[string]Money{"VWCE": eur(1000)},
	}
	targets := Targets{Liquidity: 50}

	r := Plan(values, targets)

	// the untargeted fund has no entry of its own but still dilutes the
	// actual shares of every other category
	if want := eur(2000); !r.Total.Equal(want) {
		t.Errorf("Total = %v, want %v", r.Total, want)
	}
	for _, e := range r.Entries {
		if e.Label == "VWCE" {
			t.Error("untargeted fund must not appear in the plan")
		}
	}
	liquidity := r.Entries[0]
	if !liquidity.Actual.Equal(Percent(50)) || !liquidity.Target.Equal(Percent(50)) {
		t.Errorf("liquidity actual/target = %v/%v, want 50%%/50%%", liquidity.Actual, liquidity.Target)
	}
}

func TestPlan_NoDataOnZeroTotal(t *testing.T) {
	r := Plan(CategoryValues{Funds: map[string]Money{}}, Targets{})
	if !r.NoData {
		t.Error("want NoData on a zero total")
	}
	if len(r.Entries) != 0 {
		t.Errorf("got %d entries, want none", len(r.Entries))
	}
}

func TestCategoriesOf(t *testing.T) {
	v := &Valuation{
		Liquidity: eur(1200),
		Assets: []AssetValuation{
			{Asset: CryptoAsset("BTC"), Value: eur(1500), HasValue: true},
			{Asset: CryptoAsset("ETH"), Value: eur(700), HasValue: true},
			{Asset: CryptoAsset("SOL"), Value: eur(300), HasValue: true},
			{Asset: CryptoAsset("USDT"), Value: eur(200), HasValue: true},
			{Asset: CryptoAsset("DOT"), Value: eur(60), HasValue: true},
			{Asset: CryptoAsset("ADA"), Value: eur(40), HasValue: true},
			{Asset: CryptoAsset("XRP"), HasValue: false},
			{Asset: FundAsset("VWCE"), Value: eur(2000), HasValue: true},
		},
	}

	c := CategoriesOf(v, eur(4000), eur(9000))

	if !c.Liquidity.Equal(eur(1200)) {
		t.Errorf("Liquidity = %v, want 1200", c.Liquidity)
	}
	if !c.BTC.Equal(eur(1500)) || !c.ETH.Equal(eur(700)) || !c.SOL.Equal(eur(300)) {
		t.Errorf("majors = %v/%v/%v", c.BTC, c.ETH, c.SOL)
	}
	// the bridge stays out of altcoins, an unknown value contributes nothing
	if want := eur(100); !c.Altcoins.Equal(want) {
		t.Errorf("Altcoins = %v, want %v", c.Altcoins, want)
	}
	if !c.Funds["VWCE"].Equal(eur(2000)) {
		t.Errorf("fund VWCE = %v, want 2000", c.Funds["VWCE"])
	}
	if !c.Deposits.Equal(eur(4000)) || !c.RealEstate.Equal(eur(9000)) {
		t.Errorf("deposits/real estate = %v/%v", c.Deposits, c.RealEstate)
	}
}
