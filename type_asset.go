package patrimonio

import "fmt"

// AssetClass separates the two namespaces assets live in. A fund ticker and
// a coin ticker may collide, they are still distinct positions.
type AssetClass int

const (
	// Crypto is an asset valued through the live price oracle.
	Crypto AssetClass = iota
	// Fund is a fund-like instrument valued through the manual price table.
	Fund
)

func (c AssetClass) String() string {
	switch c {
	case Crypto:
		return "crypto"
	case Fund:
		return "fund"
	default:
		return "unknown"
	}
}

// AssetID identifies a position: an asset symbol within its class.
// It is the key type of the position map.
type AssetID struct {
	Class  AssetClass
	Symbol string
}

// CryptoAsset returns the AssetID for a coin symbol.
func CryptoAsset(symbol string) AssetID { return AssetID{Class: Crypto, Symbol: symbol} }

// FundAsset returns the AssetID for a fund symbol.
func FundAsset(symbol string) AssetID { return AssetID{Class: Fund, Symbol: symbol} }

func (a AssetID) String() string {
	if a.Class == Fund {
		return fmt.Sprintf("%s (fund)", a.Symbol)
	}
	return a.Symbol
}

// less orders assets deterministically: crypto first, then funds,
// alphabetical within a class.
func (a AssetID) less(b AssetID) bool {
	if a.Class != b.Class {
		return a.Class < b.Class
	}
	return a.Symbol < b.Symbol
}
