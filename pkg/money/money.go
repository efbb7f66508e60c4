// Package money parses and formats the decimal amounts used across the ledger.
package money

import (
	"encoding/json"
	"errors"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Places is the number of fractional digits kept for every amount.
const Places = 2

func init() {
	// amounts are persisted and served as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

// Parse converts a user-entered amount into a non-negative decimal.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and rounds
// half-up to two decimal places. Signs, exponents, thousands separators and
// blank input are rejected with ErrInvalidAmount.
//
// Examples:
//
//	Parse("12.34")  -> 12.34, nil
//	Parse("12,345") -> 12.35, nil
//	Parse("-1")     -> 0, ErrInvalidAmount
func Parse(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" || s == "." {
		return decimal.Zero, ErrInvalidAmount
	}

	dots := 0
	for _, r := range s {
		switch {
		case r == '.':
			dots++
		case !unicode.IsDigit(r):
			return decimal.Zero, ErrInvalidAmount
		}
	}
	if dots > 1 {
		return decimal.Zero, ErrInvalidAmount
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount.Round(Places), nil
}

// ParsePositive is Parse that additionally rejects zero.
func ParsePositive(s string) (decimal.Decimal, error) {
	amount, err := Parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

// ParseOptional is Parse that treats blank input as zero.
func ParseOptional(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return Parse(s)
}

// Format renders amount with a currency label, e.g. "PKR 1200.00".
func Format(amount decimal.Decimal, currency string) string {
	return currency + " " + amount.StringFixed(Places)
}

// Input is an amount as sent by a client: either a JSON number or a string.
// Validation happens in Parse, not while decoding.
type Input string

func (i *Input) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*i = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*i = Input(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return ErrInvalidAmount
	}
	*i = Input(n.String())
	return nil
}

func (i Input) String() string {
	return string(i)
}

// MustParse is Parse for trusted literals. It panics on invalid input.
func MustParse(s string) decimal.Decimal {
	amount, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return amount
}
