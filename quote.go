package brokerage

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// HTTPOracle resolves share prices from a remote JSON quote service. The
// request URL is built from URLFormat with %s replaced by the symbol, and the
// price is extracted from the response with a JSONPath expression.
//
// Responses are cached on disk with a daily expiry, so repeated lookups of
// the same symbol hit the service once a day.
type HTTPOracle struct {
	// URLFormat is a fmt format string with one %s verb for the symbol,
	// e.g. "https://quotes.example.com/last?symbol=%s".
	URLFormat string
	// Path is the JSONPath to the price in the response,
	// e.g. "$.quote.price".
	Path string
	// Currency is the code the service quotes in.
	Currency string

	// Client overrides the default daily-cached client. Mostly for tests.
	Client *http.Client
}

// Price implements the PriceOracle interface using a remote quote service.
func (o *HTTPOracle) Price(symbol string) (Money, error) {
	symbol = NormalizeSymbol(symbol)
	client := o.Client
	if client == nil {
		client = daily()
	}
	addr := fmt.Sprintf(o.URLFormat, symbol)

	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return Money{}, fmt.Errorf("error in wget %q: %w", symbol, err)
	}
	jval, err := jsonpath.Get(o.Path, jobj)
	if err != nil {
		return Money{}, fmt.Errorf("error parsing %q: %q %w", symbol, o.Path, err)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer,
	// or a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	val, ok := jval.(float64)
	if !ok {
		// sometimes quote APIs return the value as a string
		sval, ok := jval.(string)
		if !ok {
			return Money{}, fmt.Errorf("cannot read price of %q: neither a float nor a string: %v", symbol, jval)
		}
		sval = strings.ReplaceAll(sval, ",", ".")
		sval = strings.ReplaceAll(sval, " ", "")
		val, err = strconv.ParseFloat(sval, 64)
		if err != nil {
			return Money{}, fmt.Errorf("cannot read price of %q: invalid string %q: %w", symbol, sval, err)
		}
	}
	if val <= 0 {
		return Money{}, fmt.Errorf("%w: %s quoted at %v", ErrInvalidSymbol, symbol, val)
	}
	return M(val, o.Currency).Quantize(), nil
}
