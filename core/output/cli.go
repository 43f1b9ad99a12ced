package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"payoff/core/determinism"
	"payoff/core/locale"
	"payoff/core/types"
	"payoff/core/ui"
)

// Verdict colors of the original page
const (
	colorWasteful = lipgloss.Color("#e11d48")
	colorWorthIt  = lipgloss.Color("#059669")
	colorBorder   = lipgloss.Color("#f97316")
)

// CLIFormatter renders a result card for one item and a table for batches
type CLIFormatter struct {
	noColor bool
}

// NewCLIFormatter creates a CLI formatter
func NewCLIFormatter(noColor bool) *CLIFormatter {
	return &CLIFormatter{noColor: noColor}
}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render writes the report to w
func (f *CLIFormatter) Render(w io.Writer, report *Report) error {
	uw := ui.NewWriter(w, f.noColor)
	if len(report.Items) == 1 && report.Summary == nil {
		f.renderCard(uw, report, report.Items[0])
		return nil
	}
	f.renderTable(uw, report)
	return nil
}

func (f *CLIFormatter) renderCard(uw *ui.Writer, report *Report, it Item) {
	cat := locale.Get(report.Locale)
	r := it.Result

	verdict := lipgloss.NewStyle()
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2).
		Align(lipgloss.Center)
	if !f.noColor {
		c := colorWorthIt
		if r.Wasteful() {
			c = colorWasteful
		}
		verdict = verdict.Foreground(c).Bold(true)
		border = border.BorderForeground(colorBorder)
	}

	amount := FormatMoney(r.UnitCost, report.Currency, report.Locale)
	if !r.Finite {
		amount += " (" + cat.NotFinite + ")"
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		r.Category.Emoji(),
		cat.Heading(r.Mode),
		lipgloss.NewStyle().Bold(!f.noColor).Render(amount),
		verdict.Render(cat.Verdict(r.Verdict)),
	)
	if it.Name != "" {
		uw.SubHeader(it.Name)
	}
	uw.Println("%s", border.Render(body))

	if !report.ShowBreakdown {
		return
	}
	b := r.Breakdown
	uw.Println("  %s: %s%s", cat.TotalHours, determinism.FormatAmount(b.TotalHours, 1), cat.HoursSuffix)
	uw.Println("  %s: %s%s", cat.TotalUses, determinism.FormatAmount(b.TotalUses, 1), cat.UsesSuffix)
	uw.Println("  %s: %s", cat.CostPerDay, FormatMoney(b.CostPerDay, report.Currency, report.Locale))
	uw.Println("  %s: %s%%", cat.CostRatio, determinism.FormatAmount(b.CostRatioPercent, 2))
}

func (f *CLIFormatter) renderTable(uw *ui.Writer, report *Report) {
	cat := locale.Get(report.Locale)

	title := cat.Title
	if report.Metadata.Source != "" {
		title += " · " + report.Metadata.Source
	}
	uw.Header(title)

	tbl := uw.NewTable("", "item", "unit cost", "ratio", "verdict")
	for _, it := range report.Items {
		r := it.Result
		verdict := cat.Verdict(r.Verdict)
		if r.Wasteful() {
			verdict = uw.Color(ui.Red, verdict)
		} else {
			verdict = uw.Color(ui.Green, verdict)
		}
		tbl.AddRow(
			r.Category.Emoji(),
			it.Name,
			FormatMoney(r.UnitCost, report.Currency, report.Locale),
			determinism.FormatAmount(r.Breakdown.CostRatioPercent, 2)+"%",
			verdict,
		)
	}
	tbl.Render()

	if s := report.Summary; s != nil {
		uw.Println("")
		uw.Println("%d items, total %s%s", s.Items, report.Currency.Symbol(), s.TotalPrice)
		if s.Wasteful > 0 {
			uw.Warning("%d wasteful (worst: %s %s)", s.Wasteful, s.Worst.Emoji(), s.Worst)
		} else {
			uw.Success("all worth it")
		}
		if s.NonFinite > 0 {
			uw.Warning("%d not computable", s.NonFinite)
		}
	}
}

// String renders a one-line summary of a result, used in logs and prompts
func String(r types.Result, currency types.Currency, loc locale.Locale) string {
	return fmt.Sprintf("%s %s %s", r.Category.Emoji(), FormatMoney(r.UnitCost, currency, loc), locale.Get(loc).Verdict(r.Verdict))
}
