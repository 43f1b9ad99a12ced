// Package determinism provides hashing and money primitives whose output
// does not depend on map order or float formatting quirks.
package determinism

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"payoff/core/types"
)

// ContentHash is a SHA-256 hash for content integrity
type ContentHash [32]byte

// ComputeHash computes a content hash from bytes
func ComputeHash(data []byte) ContentHash {
	return sha256.Sum256(data)
}

// Hex returns the hash as a hex string
func (h ContentHash) Hex() string {
	return hex.EncodeToString(h[:])
}

// String implements Stringer
func (h ContentHash) String() string {
	return h.Hex()[:16] + "..."
}

// InputHash hashes the canonical JSON encoding of v.
// encoding/json sorts map keys, so equal values hash equally.
func InputHash(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return ComputeHash(data).Hex(), nil
}

// FormatAmount renders x with a fixed number of decimal places.
// Non-finite values render as "∞", "-∞" or "NaN".
func FormatAmount(x float64, places int32) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "∞"
	case math.IsInf(x, -1):
		return "-∞"
	}
	return decimal.NewFromFloat(x).StringFixed(places)
}

// Round returns x rounded half away from zero to the given places.
// Non-finite values are returned unchanged.
func Round(x float64, places int32) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	f, _ := decimal.NewFromFloat(x).Round(places).Float64()
	return f
}

// Money represents a monetary amount with full precision
type Money struct {
	amount   decimal.Decimal
	currency types.Currency
}

// NewMoneyFromFloat creates Money from a finite float64
func NewMoneyFromFloat(amount float64, currency types.Currency) Money {
	return Money{amount: decimal.NewFromFloat(amount), currency: currency}
}

// Zero creates zero money
func Zero(currency types.Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() types.Currency {
	return m.currency
}

// Add adds two monetary amounts
func (m Money) Add(other Money) Money {
	if m.currency != other.currency {
		panic(fmt.Sprintf("cannot add %s and %s", m.currency, other.currency))
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}
}

// String returns formatted money (2 decimal places)
func (m Money) String() string {
	return fmt.Sprintf("%s%s", m.currency.Symbol(), m.amount.StringFixed(2))
}

// Sum adds finite amounts; non-finite entries are skipped and counted.
func Sum(currency types.Currency, amounts ...float64) (Money, int) {
	total := Zero(currency)
	skipped := 0
	for _, a := range amounts {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			skipped++
			continue
		}
		total = total.Add(NewMoneyFromFloat(a, currency))
	}
	return total, skipped
}

// SortedKeys returns the keys of m in sorted order
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
