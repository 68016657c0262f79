package patrimonio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Store is the persistence collaborator. It owns the record files, one JSON
// file per concern in a single data directory, matching the formats the
// logs were exported in. A missing file is not an error: it is initialized
// to its canonical empty structure and persisted immediately.
type Store struct {
	Dir string
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store { return &Store{Dir: dir} }

const (
	fiatFile       = "fiat_transactions.json"
	tradesFile     = "crypto_transactions.json"
	fundPricesFile = "etf_valute.json"
	mappingFile    = "crypto_valute.json"
	depositsFile   = "conto_deposito.json"
	propertiesFile = "immobili.json"
	targetsFile    = "percentuali_target.yaml"
)

// loadJSON reads a JSON file into v. When the file does not exist, v is
// left at its canonical empty value and persisted right away, so the next
// read finds a well-formed file.
func (s *Store) loadJSON(name string, v any) error {
	path := filepath.Join(s.Dir, name)
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, %s does not exist, initializing it empty", name)
		return s.saveJSON(name, v)
	}
	if err != nil {
		return fmt.Errorf("could not read %q: %w", path, err)
	}
	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("format error in %q: %w", path, err)
	}
	return nil
}

func (s *Store) saveJSON(name string, v any) error {
	content, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("could not encode %q: %w", name, err)
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return err
	}
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, append(content, '\n'), 0644); err != nil {
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return nil
}

// fiatFileFormat mirrors the fiat log file: the starting balance plus the
// ordered movements.
type fiatFileFormat struct {
	EURBalance   float64      `json:"EUR_Balance"`
	Transactions []FiatRecord `json:"Transactions"`
}

// LoadFiat reads the fiat log and the initial EUR balance.
func (s *Store) LoadFiat() (initial Money, records []FiatRecord, err error) {
	var f fiatFileFormat
	f.Transactions = []FiatRecord{}
	if err := s.loadJSON(fiatFile, &f); err != nil {
		return Money{}, nil, err
	}
	return M(f.EURBalance, EUR), f.Transactions, nil
}

// SaveFiat writes the fiat log back.
func (s *Store) SaveFiat(initial Money, records []FiatRecord) error {
	return s.saveJSON(fiatFile, fiatFileFormat{
		EURBalance:   initial.AsFloat(),
		Transactions: records,
	})
}

// LoadTrades reads the trade log.
func (s *Store) LoadTrades() ([]TradeRecord, error) {
	records := []TradeRecord{}
	if err := s.loadJSON(tradesFile, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SaveTrades writes the trade log back.
func (s *Store) SaveTrades(records []TradeRecord) error {
	return s.saveJSON(tradesFile, records)
}

// LoadFundPrices reads the manual fund price table, fresh on each call so
// external edits are picked up.
func (s *Store) LoadFundPrices() (map[string]Money, error) {
	raw := map[string]float64{}
	if err := s.loadJSON(fundPricesFile, &raw); err != nil {
		return nil, err
	}
	prices := make(map[string]Money, len(raw))
	for symbol, p := range raw {
		prices[symbol] = M(p, EUR)
	}
	return prices, nil
}

// SaveFundPrices writes the manual fund price table back.
func (s *Store) SaveFundPrices(prices map[string]Money) error {
	raw := make(map[string]float64, len(prices))
	for symbol, p := range prices {
		raw[symbol] = p.AsFloat()
	}
	return s.saveJSON(fundPricesFile, raw)
}

// LoadMapping reads the pair-to-oracle-identifier mapping.
func (s *Store) LoadMapping() (CryptoMapping, error) {
	mapping := CryptoMapping{}
	if err := s.loadJSON(mappingFile, &mapping); err != nil {
		return nil, err
	}
	return mapping, nil
}

// depositsFileFormat mirrors the deposit record file.
type depositsFileFormat struct {
	Deposits []DepositRecord `json:"Conto deposito"`
}

// LoadDeposits reads the deposit records.
func (s *Store) LoadDeposits() ([]DepositRecord, error) {
	var f depositsFileFormat
	f.Deposits = []DepositRecord{}
	if err := s.loadJSON(depositsFile, &f); err != nil {
		return nil, err
	}
	return f.Deposits, nil
}

// SaveDeposits writes the deposit records back.
func (s *Store) SaveDeposits(records []DepositRecord) error {
	return s.saveJSON(depositsFile, depositsFileFormat{Deposits: records})
}

// propertiesFileFormat mirrors the property record file.
type propertiesFileFormat struct {
	Properties []PropertyRecord `json:"Immobili"`
}

// LoadProperties reads the property records.
func (s *Store) LoadProperties() ([]PropertyRecord, error) {
	var f propertiesFileFormat
	f.Properties = []PropertyRecord{}
	if err := s.loadJSON(propertiesFile, &f); err != nil {
		return nil, err
	}
	return f.Properties, nil
}

// SaveProperties writes the property records back.
func (s *Store) SaveProperties(records []PropertyRecord) error {
	return s.saveJSON(propertiesFile, propertiesFileFormat{Properties: records})
}

// LoadTargets reads the allocation-target configuration.
func (s *Store) LoadTargets() (Targets, error) {
	path := filepath.Join(s.Dir, targetsFile)
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, %s does not exist, using zero targets", targetsFile)
		return Targets{}, nil
	}
	if err != nil {
		return Targets{}, fmt.Errorf("could not read %q: %w", path, err)
	}
	var t Targets
	if err := yaml.Unmarshal(content, &t); err != nil {
		return Targets{}, fmt.Errorf("format error in %q: %w", path, err)
	}
	return t, nil
}

// LoadState assembles the full state from the record files.
func (s *Store) LoadState() (*State, error) {
	initial, fiatRecords, err := s.LoadFiat()
	if err != nil {
		return nil, err
	}
	tradeRecords, err := s.LoadTrades()
	if err != nil {
		return nil, err
	}
	depositRecords, err := s.LoadDeposits()
	if err != nil {
		return nil, err
	}
	propertyRecords, err := s.LoadProperties()
	if err != nil {
		return nil, err
	}
	fundPrices, err := s.LoadFundPrices()
	if err != nil {
		return nil, err
	}

	ledger := DecodeLedger(fiatRecords, tradeRecords)

	deposits := make([]Deposit, 0, len(depositRecords))
	for _, r := range depositRecords {
		d, diags := DecodeDepositRecord(r)
		deposits = append(deposits, d)
		for _, diag := range diags {
			log.Printf("deposit record: %s", diag)
		}
	}

	properties := make([]Property, 0, len(propertyRecords))
	for _, r := range propertyRecords {
		properties = append(properties, DecodePropertyRecord(r))
	}

	return &State{
		InitialEUR: initial,
		Ledger:     ledger,
		Deposits:   NewDepositBook(deposits...),
		Properties: NewPropertyBook(properties...),
		FundPrices: fundPrices,
	}, nil
}

// Persist runs the persistence effects returned by a command. Unknown
// effects (like RefreshPrices) are left for the caller.
func (s *Store) Persist(st *State, effects []Effect) error {
	var errs error
	for _, effect := range effects {
		var err error
		switch effect {
		case PersistFiat:
			records := make([]FiatRecord, 0, len(st.Ledger.Fiat()))
			for _, ev := range st.Ledger.Fiat() {
				records = append(records, EncodeFiatRecord(ev))
			}
			err = s.SaveFiat(st.InitialEUR, records)
		case PersistTrades:
			records := make([]TradeRecord, 0, len(st.Ledger.Trades()))
			for _, ev := range st.Ledger.Trades() {
				records = append(records, EncodeTradeRecord(ev))
			}
			err = s.SaveTrades(records)
		case PersistDeposits:
			records := make([]DepositRecord, 0, len(st.Deposits.All()))
			for _, d := range st.Deposits.All() {
				records = append(records, EncodeDepositRecord(d))
			}
			err = s.SaveDeposits(records)
		case PersistProperties:
			records := make([]PropertyRecord, 0, len(st.Properties.All()))
			for _, p := range st.Properties.All() {
				records = append(records, EncodePropertyRecord(p))
			}
			err = s.SaveProperties(records)
		case PersistFundPrices:
			err = s.SaveFundPrices(st.FundPrices)
		}
		errs = errors.Join(errs, err)
	}
	return errs
}
