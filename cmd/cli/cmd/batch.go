// Package cmd - batch command
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"payoff/core/policy"
	"payoff/core/scenario"
	"payoff/core/types"
	"payoff/core/ui"
	"payoff/internal/config"
	"payoff/internal/errors"
	"payoff/internal/logging"
	"payoff/internal/version"
)

var (
	batchOutput outputFlags
	batchVars   []string
	batchPolicy policyFlags
)

// policyFlags configure the guardrails checked after a batch run
type policyFlags struct {
	maxWasteful   int
	maxCategory   string
	maxUnitCost   float64
	requireFinite bool
	severity      string
}

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Evaluate every purchase in a scenario file",
	Long: `Evaluate a scenario file (.hcl, .yaml or .yml) listing several purchases.

HCL scenarios may reference variables as var.<name>, supplied with --var.

Examples:
  payoff batch gear.yaml
  payoff batch gear.hcl --var camera_price=98000 --var household=3
  payoff batch gear.yaml --format xlsx --out gear.xlsx
  payoff batch gear.yaml --max-wasteful 0 --max-category doubtful`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringArrayVar(&batchVars, "var", nil, "scenario variable as name=value (repeatable)")
	addOutputFlags(batchCmd, &batchOutput)

	f := batchCmd.Flags()
	f.IntVar(&batchPolicy.maxWasteful, "max-wasteful", 0, "fail when more purchases than this are wasteful")
	f.StringVar(&batchPolicy.maxCategory, "max-category", "", "fail when any purchase is classified worse than this")
	f.Float64Var(&batchPolicy.maxUnitCost, "max-unit-cost", 0, "fail when any unit cost exceeds this")
	f.BoolVar(&batchPolicy.requireFinite, "require-finite", false, "fail when any unit cost cannot be computed")
	f.StringVar(&batchPolicy.severity, "policy-severity", string(policy.SeverityBlock), "block or warning")
}

// evaluator builds the policy evaluator from the flags that were set
func (p *policyFlags) evaluator(flags *pflag.FlagSet) (*policy.Evaluator, error) {
	severity, err := policy.ParseSeverity(p.severity)
	if err != nil {
		return nil, err
	}

	e := policy.NewEvaluator()
	var rules []policy.Rule
	if flags.Changed("max-wasteful") {
		rules = append(rules, policy.MaxWastefulRule{Limit: p.maxWasteful})
	}
	if flags.Changed("max-category") {
		var c types.Category
		if err := c.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(p.maxCategory)))); err != nil {
			return nil, err
		}
		rules = append(rules, policy.MaxCategoryRule{Max: c})
	}
	if flags.Changed("max-unit-cost") {
		rules = append(rules, policy.MaxUnitCostRule{Limit: p.maxUnitCost})
	}
	if p.requireFinite {
		rules = append(rules, policy.FiniteRule{})
	}
	for _, r := range rules {
		if err := e.RegisterRule(r, severity); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	s, err := batchOutput.resolve(cfg)
	if err != nil {
		return err
	}
	vars, err := parseVars(batchVars)
	if err != nil {
		return err
	}
	evaluator, err := batchPolicy.evaluator(cmd.Flags())
	if err != nil {
		return err
	}

	// the thinker only decorates interactive terminal output
	var thinker *ui.Thinker
	if s.format == "cli" && batchOutput.out == "" {
		thinker = ui.NewWriter(cmd.ErrOrStderr(), s.noColor).NewThinker(args[0])
		thinker.Start()
	}

	sc, err := scenario.Load(args[0], vars)
	if err != nil {
		stopThinker(thinker, "😱")
		return err
	}
	logging.Info("scenario loaded", zap.String("source", sc.Source), zap.Int("items", len(sc.Entries)))

	rep, err := sc.Evaluate(s.opts, s.locale, s.currency)
	if err != nil {
		stopThinker(thinker, "😱")
		return err
	}
	stopThinker(thinker, rep.Summary.Worst.Emoji())

	rep.ShowBreakdown = cfg.Output.ShowBreakdown
	rep.Metadata.Version = version.Version
	if err := s.render(cmd.OutOrStdout(), rep, batchOutput.out); err != nil {
		return err
	}

	if evaluator.Len() == 0 {
		return nil
	}
	uw := ui.NewWriter(cmd.ErrOrStderr(), s.noColor)
	if verbose {
		uw.SetVerbosity(2)
	}
	for _, r := range evaluator.Rules() {
		uw.Debug("%s: %s", r.Name(), r.Description())
	}
	res, err := evaluator.Evaluate(cmd.Context(), rep)
	if err != nil {
		return err
	}
	uw.Info("%d policy rules evaluated", len(res.Results))
	for _, r := range res.Results {
		switch {
		case r.Passed:
			uw.Success("%s: %s", r.RuleName, r.Message)
		case r.Severity == policy.SeverityBlock:
			uw.Error("%s: %s", r.RuleName, r.Message)
		default:
			uw.Warning("%s: %s", r.RuleName, r.Message)
		}
		for _, v := range r.Violations {
			if !r.Passed {
				uw.Println("    %s  %s", v.Item, v.Message)
			}
		}
	}
	return res.Err()
}

func stopThinker(t *ui.Thinker, final string) {
	if t != nil {
		t.Stop(final)
	}
}

// parseVars splits name=value pairs
func parseVars(pairs []string) (map[string]string, error) {
	vars := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.Newf(errors.TypeInput, "invalid --var %q, expected name=value", p)
		}
		vars[name] = value
	}
	return vars, nil
}
