// Package cmd - calc command
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"payoff/core/determinism"
	"payoff/core/explanation"
	"payoff/core/form"
	"payoff/core/normalize"
	"payoff/core/output"
	"payoff/core/ui"
	"payoff/internal/config"
	"payoff/internal/logging"
	"payoff/internal/version"
)

var (
	calcRaw         form.RawInput
	calcOutput      outputFlags
	calcInteractive bool
	calcExplain     bool
	calcFinite      bool
)

// calcCmd represents the calc command
var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate the cost of one use of a purchase",
	Long: `Spread a purchase price over its expected use and judge the result.

Examples:
  payoff calc --price 100000 --period 1 --period-unit months --frequency 1 --frequency-unit week
  payoff calc --price 50000 --period 6 --frequency 2 --hours 2 --mode per-hour
  payoff calc --price 30000 --period 2 --period-unit years --frequency 1 --frequency-unit day --users 3 --format json
  payoff calc --interactive`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func init() {
	f := calcCmd.Flags()
	f.StringVar(&calcRaw.Price, "price", "", "purchase price")
	f.StringVar(&calcRaw.PeriodValue, "period", "", "how long the item will be used")
	f.StringVar(&calcRaw.PeriodUnit, "period-unit", string(form.DefaultPeriodUnit), "period unit (years, months, weeks, days)")
	f.StringVar(&calcRaw.FrequencyValue, "frequency", "", "uses per frequency unit")
	f.StringVar(&calcRaw.FrequencyUnit, "frequency-unit", string(form.DefaultFrequencyUnit), "frequency unit (day, week, month)")
	f.StringVar(&calcRaw.Users, "users", form.DefaultUsers, "number of people sharing the item")
	f.StringVar(&calcRaw.HoursPerUse, "hours", form.DefaultHoursPerUse, "hours per use")
	f.BoolVarP(&calcInteractive, "interactive", "i", false, "fill in the values in a form")
	f.BoolVar(&calcExplain, "explain", false, "print each step of the calculation")
	f.BoolVar(&calcFinite, "require-finite", false, "fail when the unit cost cannot be computed")
	addOutputFlags(calcCmd, &calcOutput)
}

func addOutputFlags(c *cobra.Command, o *outputFlags) {
	f := c.Flags()
	f.StringVar(&o.mode, "mode", "", "calculation mode (per-use, per-hour, per-user-hour)")
	f.StringVar(&o.banding, "banding", "", "banding scheme (absolute, ratio)")
	f.StringVar(&o.locale, "locale", "", "message locale (ja, en)")
	f.StringVar(&o.currency, "currency", "", "display currency (JPY, USD, EUR, GBP)")
	f.StringVarP(&o.format, "format", "f", "", "output format (cli, json, markdown, xlsx)")
	f.StringVarP(&o.out, "out", "o", "", "write output to a file")
}

func runCalc(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	s, err := calcOutput.resolve(cfg)
	if err != nil {
		return err
	}

	raw := calcRaw
	if calcInteractive {
		raw, err = promptInput(raw, s.locale)
		if err != nil {
			return err
		}
	}

	in, err := form.Parse(raw, s.locale)
	if err != nil {
		if verr, ok := err.(*form.ValidationError); ok {
			uw := ui.NewWriter(cmd.ErrOrStderr(), s.noColor)
			for _, name := range verr.FieldNames() {
				uw.Error("%s: %s", name, verr.Fields()[name])
			}
		}
		return err
	}

	result := normalize.Normalize(in, s.opts)
	logging.Debug("calculated",
		zap.String("result", output.String(result, s.currency, s.locale)),
		zap.String("mode", result.Mode.String()),
		zap.String("banding", result.Banding.String()),
		zap.Float64("unit_cost", result.UnitCost),
		zap.String("category", result.Category.String()),
	)

	hash, err := determinism.InputHash(in)
	if err != nil {
		// json cannot encode infinite inputs
		hash = ""
	}

	report := &output.Report{
		Items:         []output.Item{{Input: in, Result: result}},
		Locale:        s.locale,
		Currency:      s.currency,
		ShowBreakdown: cfg.Output.ShowBreakdown,
		Metadata: output.Metadata{
			Timestamp: time.Now().UTC(),
			InputHash: hash,
			Version:   version.Version,
		},
	}
	if err := s.render(cmd.OutOrStdout(), report, calcOutput.out); err != nil {
		return fmt.Errorf("calc: %w", err)
	}

	if calcExplain {
		// machine-readable output stays clean on stdout
		w := cmd.OutOrStdout()
		if s.format != string(output.FormatCLI) || calcOutput.out != "" {
			w = cmd.ErrOrStderr()
		}
		fmt.Fprint(w, explanation.Explain(report.Items[0]).ToNarrative())
	}

	if calcFinite {
		return output.RequireFinite(report.Items)
	}
	return nil
}
