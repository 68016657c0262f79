package patrimonio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// CryptoMapping maps a trading pair ("BTC/USDT") to the oracle identifier
// of its base asset ("bitcoin").
type CryptoMapping map[string]string

// IDs returns the unique oracle identifiers, sorted.
func (m CryptoMapping) IDs() []string {
	seen := make(map[string]struct{})
	for _, id := range m {
		seen[id] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

const coingeckoURL = "https://api.coingecko.com/api/v3/simple/price"

// Oracle fetches live crypto quotes. The request is bounded by the client
// timeout; any failure degrades to an empty result, valuation then resolves
// the affected prices to "unknown" and keeps going.
type Oracle struct {
	client  *http.Client
	baseURL string
}

// NewOracle returns an oracle against the public CoinGecko endpoint.
func NewOracle() *Oracle {
	return &Oracle{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: coingeckoURL,
	}
}

// jwget performs an HTTP GET and unmarshals the JSON response into data.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// quote extracts one side of a quote from the parsed response.
// The identifier may be missing entirely, a fully empty response is valid.
func quote(jobj any, id, vs, cur string) (Money, bool) {
	jval, err := jsonpath.Get(fmt.Sprintf("$[%q][%q]", id, vs), jobj)
	if err != nil {
		return Money{}, false
	}
	val, ok := jval.(float64)
	if !ok {
		return Money{}, false
	}
	return M(val, cur), true
}

// Fetch returns the current quotes for the given oracle identifiers. It
// never fails: on any transport or format error it logs and returns an
// empty map, so every dependent price resolves to unknown.
func (o *Oracle) Fetch(ids []string) map[string]PricePoint {
	quotes := make(map[string]PricePoint)
	if len(ids) == 0 {
		return quotes
	}

	addr := o.baseURL + "?" + url.Values{
		"ids":           {strings.Join(ids, ",")},
		"vs_currencies": {"usd,eur"},
	}.Encode()

	var jobj any
	if err := jwget(o.client, addr, &jobj); err != nil {
		log.Printf("price oracle unavailable: %v", err)
		return quotes
	}

	for _, id := range ids {
		var pp PricePoint
		var found bool
		if usd, ok := quote(jobj, id, "usd", USD); ok {
			pp.USD, found = usd, true
		}
		if eur, ok := quote(jobj, id, "eur", EUR); ok {
			pp.EUR, found = eur, true
		}
		if found {
			quotes[id] = pp
		}
	}
	return quotes
}
