package patrimonio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_AutoInitMissingFiles(t *testing.T) {
	s := NewStore(t.TempDir())

	initial, records, err := s.LoadFiat()
	if err != nil {
		t.Fatalf("LoadFiat: %v", err)
	}
	if !initial.IsZero() || len(records) != 0 {
		t.Errorf("fresh fiat log = %v %v", initial, records)
	}

	// the missing file was written in its canonical empty form
	if _, err := os.Stat(filepath.Join(s.Dir, fiatFile)); err != nil {
		t.Errorf("fiat file not initialized: %v", err)
	}

	if trades, err := s.LoadTrades(); err != nil || len(trades) != 0 {
		t.Errorf("LoadTrades = %v, %v", trades, err)
	}
	if deposits, err := s.LoadDeposits(); err != nil || len(deposits) != 0 {
		t.Errorf("LoadDeposits = %v, %v", deposits, err)
	}
}

func TestStore_FiatRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	want := []FiatRecord{
		{Timestamp: "Mar 1, 2024 10:00:00", Type: "Top Up FIAT", FilledAmount: "1000 EUR"},
		{Timestamp: "Mar 2, 2024 10:00:00", Type: "Withdraw FIAT", FilledAmount: "75 EUR", Info: "spese"},
	}
	if err := s.SaveFiat(eur(250), want); err != nil {
		t.Fatalf("SaveFiat: %v", err)
	}

	initial, got, err := s.LoadFiat()
	if err != nil {
		t.Fatalf("LoadFiat: %v", err)
	}
	if !initial.Equal(eur(250)) {
		t.Errorf("initial = %v, want 250 EUR", initial)
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("records = %v, want %v", got, want)
	}
}

func TestStore_FundPricesRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	if err := s.SaveFundPrices(map[string]Money{"VWCE": eur(105.4), "AGGH": eur(4.8)}); err != nil {
		t.Fatalf("SaveFundPrices: %v", err)
	}

	got, err := s.LoadFundPrices()
	if err != nil {
		t.Fatalf("LoadFundPrices: %v", err)
	}
	if !got["VWCE"].Equal(eur(105.4)) || !got["AGGH"].Equal(eur(4.8)) {
		t.Errorf("prices = %v", got)
	}
}

func TestStore_LoadTargets(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	// missing config yields all-zero targets, not an error
	zero, err := s.LoadTargets()
	if err != nil {
		t.Fatalf("LoadTargets: %v", err)
	}
	if !zero.Liquidity.Equal(0) || len(zero.Funds) != 0 {
		t.Errorf("zero targets = %+v", zero)
	}

	content := []byte(`liquidita: 10
etf:
    - symbol: VWCE
      target: 30
    - symbol: AGGH
      target: 10
btc: 15
eth: 10
sol: 5
altcoin: 5
depositi: 10
immobili: 5
`)
	if err := os.WriteFile(filepath.Join(dir, targetsFile), content, 0644); err != nil {
		t.Fatal(err)
	}

	targets, err := s.LoadTargets()
	if err != nil {
		t.Fatalf("LoadTargets: %v", err)
	}
	if !targets.Liquidity.Equal(10) || !targets.BTC.Equal(15) || !targets.RealEstate.Equal(5) {
		t.Errorf("targets = %+v", targets)
	}
	if len(targets.Funds) != 2 || targets.Funds[0].Symbol != "VWCE" || targets.Funds[1].Symbol != "AGGH" {
		t.Errorf("fund targets out of declaration order: %+v", targets.Funds)
	}
}

func TestStore_LoadStatePersistCycle(t *testing.T) {
	s := NewStore(t.TempDir())

	st, err := s.LoadState()
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}

	effects, err := AddFiat{Kind: TopUp, Amount: eur(1000)}.Apply(st, at(1))
	if err != nil {
		t.Fatalf("AddFiat: %v", err)
	}
	if err := s.Persist(st, effects); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	// a fresh load sees the appended movement
	reloaded, err := s.LoadState()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	book := reloaded.Ledger.Replay(reloaded.InitialEUR)
	if want := eur(1000); !book.EURBalance.Equal(want) {
		t.Errorf("replayed balance = %v, want %v", book.EURBalance, want)
	}
}
