// Package output provides output formatting interfaces.
// This package produces human and machine-readable outputs.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"payoff/core/determinism"
	"payoff/core/locale"
	"payoff/core/types"
	"payoff/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable card or table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"

	// FormatXLSX is an Excel workbook
	FormatXLSX Format = "xlsx"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *Report) error
}

// Item is one named calculation
type Item struct {
	// Name labels the purchase; empty for single calculations
	Name string `json:"name,omitempty"`

	Input  types.Input  `json:"input"`
	Result types.Result `json:"result"`
}

// Report is everything a formatter renders
type Report struct {
	Items []Item

	// Summary is set for batch reports
	Summary *Summary

	Locale   locale.Locale
	Currency types.Currency

	// ShowBreakdown includes the breakdown figures
	ShowBreakdown bool

	Metadata Metadata
}

// Metadata contains execution context
type Metadata struct {
	// Timestamp is when the calculation was performed
	Timestamp time.Time `json:"timestamp"`

	// InputHash identifies the input for caching and comparison
	InputHash string `json:"input_hash,omitempty"`

	// Source names the scenario file, if any
	Source string `json:"source,omitempty"`

	// Version is the tool version
	Version string `json:"version"`
}

// Summary aggregates a batch
type Summary struct {
	Items     int            `json:"items"`
	Wasteful  int            `json:"wasteful"`
	NonFinite int            `json:"non_finite"`
	Worst     types.Category `json:"worst"`

	// TotalPrice is the decimal sum of all finite prices
	TotalPrice string `json:"total_price"`
}

// Summarize computes the batch summary for items
func Summarize(items []Item, currency types.Currency) *Summary {
	s := &Summary{Items: len(items), Worst: types.CategoryDelighted}
	prices := make([]float64, 0, len(items))
	for _, it := range items {
		prices = append(prices, it.Input.Price)
		if it.Result.Wasteful() {
			s.Wasteful++
		}
		if !it.Result.Finite {
			s.NonFinite++
		}
		if it.Result.Category > s.Worst {
			s.Worst = it.Result.Category
		}
	}
	total, _ := determinism.Sum(currency, prices...)
	s.TotalPrice = total.Amount().StringFixed(2)
	return s
}

// RequireFinite fails with a degenerate-computation error when any item's
// unit cost is NaN or infinite. Named items are listed in the message.
func RequireFinite(items []Item) error {
	count := 0
	var names []string
	for _, it := range items {
		if it.Result.Finite {
			continue
		}
		count++
		if it.Name != "" {
			names = append(names, it.Name)
		}
	}
	if count == 0 {
		return nil
	}
	msg := "unit cost is not finite"
	if len(names) > 0 {
		msg += ": " + strings.Join(names, ", ")
	}
	return errors.Degenerate(msg).WithContext("non_finite", count)
}

// Registry manages formatter registration
type Registry struct {
	mu         sync.RWMutex
	formatters map[Format]Formatter
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{formatters: make(map[Format]Formatter)}
}

// Register adds a formatter to the registry
func (r *Registry) Register(f Formatter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formatters[f.Format()]; exists {
		return fmt.Errorf("formatter already registered: %s", f.Format())
	}
	r.formatters[f.Format()] = f
	return nil
}

// Get returns the formatter for a format name
func (r *Registry) Get(name string) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formatters[Format(strings.ToLower(strings.TrimSpace(name)))]
	if !ok {
		return nil, errors.NotSupported("output format", name)
	}
	return f, nil
}

// Formats lists registered format names in sorted order
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.formatters))
	for f := range r.formatters {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// Builtin returns a registry holding every built-in formatter
func Builtin(noColor bool) *Registry {
	r := NewRegistry()
	for _, f := range []Formatter{NewCLIFormatter(noColor), &JSONFormatter{}, &MarkdownFormatter{}, &XLSXFormatter{}} {
		_ = r.Register(f)
	}
	return r
}

// FormatMoney renders an amount the way the given locale expects:
// "23333.33円" for Japanese yen, "$12.50" otherwise.
func FormatMoney(x float64, currency types.Currency, loc locale.Locale) string {
	amount := determinism.FormatAmount(x, 2)
	if currency == types.CurrencyJPY && loc == locale.Japanese {
		return amount + "円"
	}
	return currency.Symbol() + amount
}
