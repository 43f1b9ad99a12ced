// Package scenario loads batches of purchases from HCL or YAML files and
// evaluates them through the normalization core.
package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/multierr"

	"payoff/core/determinism"
	"payoff/core/form"
	"payoff/core/locale"
	"payoff/core/normalize"
	"payoff/core/output"
	"payoff/core/types"
	"payoff/internal/errors"
)

// Entry is one named purchase, still in raw form
type Entry struct {
	Name string
	Raw  form.RawInput
}

// Scenario is a decoded scenario file
type Scenario struct {
	// Source is the file the scenario was read from
	Source string

	// Mode and Banding override the caller's options when set
	Mode    string
	Banding string

	Entries []Entry
}

// Load reads a scenario file, choosing the decoder by extension.
// vars are exposed to HCL files as var.<name>.
func Load(path string, vars map[string]string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.TypeInput, "cannot read scenario", err).WithContext("path", path)
	}
	return Parse(data, path, vars)
}

// Parse decodes scenario bytes; filename selects the format
func Parse(data []byte, filename string, vars map[string]string) (*Scenario, error) {
	var (
		s   *Scenario
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".hcl":
		s, err = parseHCL(data, filename, vars)
	case ".yaml", ".yml":
		s, err = parseYAML(data, filename)
	default:
		return nil, errors.NotSupported("scenario format", ext)
	}
	if err != nil {
		return nil, err
	}
	s.Source = filepath.Base(filename)
	return s, s.validate()
}

func (s *Scenario) validate() error {
	if len(s.Entries) == 0 {
		return errors.Input("scenario has no items").WithContext("source", s.Source)
	}
	seen := make(map[string]bool, len(s.Entries))
	for i, e := range s.Entries {
		if strings.TrimSpace(e.Name) == "" {
			return errors.Newf(errors.TypeInput, "item %d has no name", i+1)
		}
		if seen[e.Name] {
			return errors.Newf(errors.TypeInput, "duplicate item %q", e.Name)
		}
		seen[e.Name] = true
	}
	return nil
}

// Options merges the scenario's overrides into defaults
func (s *Scenario) Options(defaults types.Options) (types.Options, error) {
	opts := defaults
	if s.Mode != "" {
		m, err := types.ParseMode(s.Mode)
		if err != nil {
			return opts, err
		}
		opts.Mode = m
	}
	if s.Banding != "" {
		b, err := types.ParseBanding(s.Banding)
		if err != nil {
			return opts, err
		}
		opts.Banding = b
	}
	return opts, nil
}

// Evaluate validates and normalizes every entry. Invalid entries are
// reported together; nothing is computed unless all entries are valid.
func (s *Scenario) Evaluate(defaults types.Options, loc locale.Locale, currency types.Currency) (*output.Report, error) {
	opts, err := s.Options(defaults)
	if err != nil {
		return nil, err
	}

	inputs := make([]types.Input, len(s.Entries))
	var errs error
	for i, e := range s.Entries {
		in, err := form.Parse(e.Raw, loc)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("item %q: %w", e.Name, err))
			continue
		}
		inputs[i] = in
	}
	if errs != nil {
		return nil, errors.Wrap(errors.TypeInput, "invalid scenario items", errs).WithContext("source", s.Source)
	}

	hash, err := determinism.InputHash(s.Entries)
	if err != nil {
		return nil, errors.Internal("hashing scenario", err)
	}

	items := make([]output.Item, len(s.Entries))
	for i, e := range s.Entries {
		items[i] = output.Item{
			Name:   e.Name,
			Input:  inputs[i],
			Result: normalize.Normalize(inputs[i], opts),
		}
	}

	return &output.Report{
		Items:    items,
		Summary:  output.Summarize(items, currency),
		Locale:   loc,
		Currency: currency,
		Metadata: output.Metadata{
			Timestamp: time.Now().UTC(),
			InputHash: hash,
			Source:    s.Source,
		},
	}, nil
}
