// Package amount formats and parses token amounts in base units.
package amount

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
)

// Decimals of the Eurium token.
const Decimals = 18

// GASDecimals is the number of decimals of the native GAS token.
const GASDecimals = 8

// Format returns human-readable amount with thousands separators, e.g.
// "1,234.5" for 1234500000000000000000 with 18 decimals. Trailing zeros of
// the fractional part are dropped.
func Format(v *big.Int, decimals int) string {
	if v == nil {
		return "0"
	}

	unit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	q, r := new(big.Int).QuoRem(new(big.Int).Abs(v), unit, new(big.Int))

	res := humanize.BigComma(q)
	if r.Sign() != 0 {
		frac := r.String()
		frac = strings.Repeat("0", decimals-len(frac)) + frac
		res += "." + strings.TrimRight(frac, "0")
	}
	if v.Sign() < 0 {
		res = "-" + res
	}

	return res
}

// Parse converts decimal string like "1000.25" into base units.
func Parse(s string, decimals int) (*big.Int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil, errors.New("empty amount")
	}

	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > decimals {
		return nil, fmt.Errorf("too many decimal places in %q, at most %d allowed", s, decimals)
	}

	v, ok := new(big.Int).SetString(whole+frac+strings.Repeat("0", decimals-len(frac)), 10)
	if !ok || strings.ContainsAny(whole+frac, "+-") {
		return nil, fmt.Errorf("invalid amount %q", s)
	}

	return v, nil
}

// Bytes returns human-readable size of the raw contract data, e.g. NEF file.
func Bytes(n int) string {
	return humanize.Bytes(uint64(n))
}
