package output

import (
	"fmt"
	"io"
	"strings"

	"payoff/core/determinism"
	"payoff/core/locale"
)

// MarkdownFormatter renders a markdown table
type MarkdownFormatter struct{}

// Format returns FormatMarkdown
func (f *MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// Render writes the report as markdown
func (f *MarkdownFormatter) Render(w io.Writer, report *Report) error {
	cat := locale.Get(report.Locale)
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", cat.Title)
	fmt.Fprintf(&b, "| | Item | Unit cost | %s | %s | %s | Verdict |\n", cat.TotalHours, cat.CostPerDay, cat.CostRatio)
	b.WriteString("|---|---|---:|---:|---:|---:|---|\n")
	for _, it := range report.Items {
		r := it.Result
		name := it.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s%% | %s |\n",
			r.Category.Emoji(),
			escape(name),
			FormatMoney(r.UnitCost, report.Currency, report.Locale),
			determinism.FormatAmount(r.Breakdown.TotalHours, 1),
			FormatMoney(r.Breakdown.CostPerDay, report.Currency, report.Locale),
			determinism.FormatAmount(r.Breakdown.CostRatioPercent, 2),
			cat.Verdict(r.Verdict),
		)
	}

	if s := report.Summary; s != nil {
		fmt.Fprintf(&b, "\n**%d items**, total %s%s, %d wasteful, worst %s\n",
			s.Items, report.Currency.Symbol(), s.TotalPrice, s.Wasteful, s.Worst.Emoji())
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
