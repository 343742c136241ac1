package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Currency is an ISO 4217 currency code.
type Currency string

const (
	CurrencyINR Currency = "INR"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// currencySymbols maps each supported currency to its display symbol.
// Parsing tries the symbols in this order, so "Rs." must follow "₹".
var currencySymbols = []struct {
	currency Currency
	symbol   string
}{
	{CurrencyINR, "₹"},
	{CurrencyINR, "Rs."},
	{CurrencyINR, "Rs"},
	{CurrencyUSD, "$"},
	{CurrencyEUR, "€"},
}

// Valid reports whether c is one of the supported currencies.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyINR, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}

// Symbol returns the display symbol for c.
func (c Currency) Symbol() string {
	for _, cs := range currencySymbols {
		if cs.currency == c {
			return cs.symbol
		}
	}
	return string(c) + " "
}

// Price is a monetary amount held as integer minor units (paise, cents).
// The display string is derived only when rendering; nothing downstream
// parses currency symbols.
type Price struct {
	AmountMinor int64    `json:"amount_minor"`
	Currency    Currency `json:"currency"`
}

// IsZero reports whether p carries no amount.
func (p Price) IsZero() bool {
	return p.AmountMinor == 0
}

// Display formats p for humans, e.g. "₹2,999" or "$49.50".
// INR amounts use Indian digit grouping (₹1,25,000).
func (p Price) Display() string {
	cur := p.Currency
	if cur == "" {
		cur = CurrencyINR
	}
	major := p.AmountMinor / 100
	minor := p.AmountMinor % 100
	sign := ""
	if major < 0 || minor < 0 {
		sign = "-"
		major, minor = -major, -minor
	}

	var grouped string
	if cur == CurrencyINR {
		grouped = groupIndian(major)
	} else {
		grouped = groupWestern(major)
	}

	s := sign + cur.Symbol() + grouped
	if minor != 0 {
		s += fmt.Sprintf(".%02d", minor)
	}
	return s
}

// MarshalJSON writes the price as an object that also carries the derived
// display string, so clients never need to format currencies themselves.
func (p Price) MarshalJSON() ([]byte, error) {
	cur := p.Currency
	if cur == "" {
		cur = CurrencyINR
	}
	return json.Marshal(struct {
		AmountMinor int64    `json:"amount_minor"`
		Currency    Currency `json:"currency"`
		Display     string   `json:"display"`
	}{p.AmountMinor, cur, p.Display()})
}

// UnmarshalJSON accepts either the object form written by MarshalJSON or a
// legacy display string such as "₹2,999".
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParsePrice(s)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}

	var obj struct {
		AmountMinor int64    `json:"amount_minor"`
		Currency    Currency `json:"currency"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Currency == "" {
		obj.Currency = CurrencyINR
	}
	*p = Price{AmountMinor: obj.AmountMinor, Currency: obj.Currency}
	return nil
}

// ParsePrice converts a display string ("₹2,999", "$49.50", "1200") into a
// Price. A string with no recognised symbol is taken to be INR.
// The empty string parses to the zero Price.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Price{}, nil
	}

	cur := CurrencyINR
	for _, cs := range currencySymbols {
		if strings.HasPrefix(s, cs.symbol) {
			cur = cs.currency
			s = strings.TrimSpace(strings.TrimPrefix(s, cs.symbol))
			break
		}
	}

	s = strings.ReplaceAll(s, ",", "")
	whole, frac, hasFrac := strings.Cut(s, ".")
	if hasFrac && len(frac) == 1 {
		frac += "0"
	}
	if !allDigits(whole) || (hasFrac && (len(frac) != 2 || !allDigits(frac))) {
		return Price{}, fmt.Errorf("%w: invalid price %q", ErrValidation, s)
	}
	major, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || major > (math.MaxInt64-99)/100 {
		return Price{}, fmt.Errorf("%w: price %q out of range", ErrValidation, s)
	}

	var minor int64
	if hasFrac {
		minor, _ = strconv.ParseInt(frac, 10, 64)
	}

	return Price{AmountMinor: major*100 + minor, Currency: cur}, nil
}

// allDigits reports whether s is a non-empty run of ASCII digits. Signs and
// spaces are not digits.
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func groupWestern(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// groupIndian groups the last three digits, then pairs: 12,34,567.
func groupIndian(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	head, tail := s[:len(s)-3], s[len(s)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}
