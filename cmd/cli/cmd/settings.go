package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"payoff/core/locale"
	"payoff/core/output"
	"payoff/core/types"
	"payoff/internal/config"
	"payoff/internal/errors"
	"payoff/internal/logging"
)

// outputFlags are shared by calc and batch
type outputFlags struct {
	mode     string
	banding  string
	locale   string
	currency string
	format   string
	out      string
}

// settings is the configuration after command-line overrides
type settings struct {
	opts     types.Options
	locale   locale.Locale
	currency types.Currency
	format   string
	noColor  bool
}

func (f *outputFlags) resolve(cfg *config.Config) (*settings, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	s := &settings{
		opts:     opts,
		locale:   cfg.Locale(),
		currency: cfg.Currency(),
		format:   cfg.Output.Format,
		noColor:  cfg.Output.NoColor,
	}

	if f.mode != "" {
		if s.opts.Mode, err = types.ParseMode(f.mode); err != nil {
			return nil, err
		}
	}
	if f.banding != "" {
		if s.opts.Banding, err = types.ParseBanding(f.banding); err != nil {
			return nil, err
		}
	}
	if f.locale != "" {
		if s.locale, err = locale.Parse(f.locale); err != nil {
			return nil, err
		}
	}
	if f.currency != "" {
		if s.currency, err = types.ParseCurrency(f.currency); err != nil {
			return nil, err
		}
	}
	if f.format != "" {
		s.format = f.format
	}
	// an .xlsx destination implies the spreadsheet format
	if f.out != "" && f.format == "" && strings.EqualFold(filepath.Ext(f.out), ".xlsx") {
		s.format = string(output.FormatXLSX)
	}
	return s, nil
}

// render writes report in the chosen format to stdout or to the --out file
func (s *settings) render(stdout io.Writer, report *output.Report, outPath string) error {
	formatter, err := output.Builtin(s.noColor).Get(s.format)
	if err != nil {
		return err
	}
	if formatter.Format() == output.FormatXLSX && outPath == "" {
		return errors.Input("the xlsx format needs --out")
	}

	w := stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return errors.Wrap(errors.TypeInput, "cannot create output file", err).WithContext("path", outPath)
		}
		defer f.Close()
		w = f
	}

	if err := formatter.Render(w, report); err != nil {
		return errors.Internal("rendering output", err)
	}
	if outPath != "" {
		logging.Debug("report written", zap.String("path", outPath), zap.String("format", s.format))
		fmt.Fprintf(stdout, "Wrote %s\n", outPath)
	}
	return nil
}
