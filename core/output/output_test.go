package output

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"payoff/core/locale"
	"payoff/core/normalize"
	"payoff/core/types"
	"payoff/internal/errors"
)

func item(name string, in types.Input) Item {
	return Item{Name: name, Input: in, Result: normalize.Normalize(in, types.DefaultOptions())}
}

func camera() Item {
	return item("camera", types.NewInput(100000, 1, types.PeriodMonths, 1, types.FrequencyWeek))
}

func bike() Item {
	return item("bike", types.NewInput(1000, 1, types.PeriodYears, 1, types.FrequencyDay))
}

func unused() Item {
	return item("treadmill", types.NewInput(80000, 1, types.PeriodYears, 0, types.FrequencyWeek))
}

func report(items ...Item) *Report {
	return &Report{
		Items:         items,
		Locale:        locale.Japanese,
		Currency:      types.CurrencyJPY,
		ShowBreakdown: true,
		Metadata:      Metadata{Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), Version: "test"},
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "23333.33円", FormatMoney(23333.333, types.CurrencyJPY, locale.Japanese))
	assert.Equal(t, "¥23333.33", FormatMoney(23333.333, types.CurrencyJPY, locale.English))
	assert.Equal(t, "$2.74", FormatMoney(2.7397, types.CurrencyUSD, locale.English))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Item{camera(), bike(), unused()}, types.CurrencyJPY)

	assert.Equal(t, 3, s.Items)
	assert.Equal(t, 1, s.Wasteful)
	assert.Equal(t, 1, s.NonFinite)
	assert.Equal(t, types.CategoryShocked, s.Worst)
	assert.Equal(t, "181000.00", s.TotalPrice)
}

func TestRegistry(t *testing.T) {
	r := Builtin(true)
	assert.Equal(t, []string{"cli", "json", "markdown", "xlsx"}, r.Formats())

	f, err := r.Get(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f.Format())

	_, err = r.Get("html")
	assert.Error(t, err)
	assert.Error(t, r.Register(&JSONFormatter{}))
}

func TestCLICard(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCLIFormatter(true).Render(&buf, report(camera())))

	out := buf.String()
	assert.Contains(t, out, "🤨")
	assert.Contains(t, out, "1時間あたりの使用コスト")
	assert.Contains(t, out, "23333.33円")
	assert.Contains(t, out, "ええ感じや！元取れてるで！")
	assert.Contains(t, out, "総使用時間: 4.3時間")
	assert.Contains(t, out, "1日あたりのコスト: 3333.33円")
	assert.Contains(t, out, "価格に対するコスト割合: 23.33%")
}

func TestCLICardNonFinite(t *testing.T) {
	var buf bytes.Buffer
	rep := report(unused())
	rep.ShowBreakdown = false
	require.NoError(t, NewCLIFormatter(true).Render(&buf, rep))

	out := buf.String()
	assert.Contains(t, out, "∞円")
	assert.Contains(t, out, "😱")
	assert.Contains(t, out, "もったいない！もっと使わなアカン！")
	assert.NotContains(t, out, "総使用時間")
}

func TestCLITable(t *testing.T) {
	rep := report(camera(), bike())
	rep.Summary = Summarize(rep.Items, rep.Currency)
	rep.Locale = locale.English

	var buf bytes.Buffer
	require.NoError(t, NewCLIFormatter(true).Render(&buf, rep))

	out := buf.String()
	assert.Contains(t, out, "camera")
	assert.Contains(t, out, "¥2.74")
	assert.Contains(t, out, "2 items, total ¥101000.00")
	assert.Contains(t, out, "all worth it")
}

func TestJSONNonFiniteIsNull(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Render(&buf, report(unused(), bike())))

	var decoded struct {
		Results []struct {
			Name     string   `json:"name"`
			UnitCost *float64 `json:"unit_cost"`
			Display  string   `json:"unit_cost_display"`
			Finite   bool     `json:"finite"`
			Category string   `json:"category"`
			Verdict  string   `json:"verdict"`
		} `json:"results"`
		Locale string `json:"locale"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Results, 2)

	inf := decoded.Results[0]
	assert.Nil(t, inf.UnitCost)
	assert.Equal(t, "∞円", inf.Display)
	assert.False(t, inf.Finite)
	assert.Equal(t, "shocked", inf.Category)
	assert.Equal(t, "wasteful", inf.Verdict)

	ok := decoded.Results[1]
	require.NotNil(t, ok.UnitCost)
	assert.Equal(t, 2.74, *ok.UnitCost)
	assert.Equal(t, "delighted", ok.Category)
	assert.Equal(t, "ja", decoded.Locale)
}

func TestMarkdown(t *testing.T) {
	rep := report(item("a|b", types.NewInput(1000, 1, types.PeriodYears, 1, types.FrequencyDay)))
	rep.Summary = Summarize(rep.Items, rep.Currency)

	var buf bytes.Buffer
	require.NoError(t, (&MarkdownFormatter{}).Render(&buf, rep))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "## 元とらなアカン\n"))
	assert.Contains(t, out, `a\|b`)
	assert.Contains(t, out, "2.74円")
	assert.Contains(t, out, "**1 items**")
}

func TestXLSX(t *testing.T) {
	rep := report(camera(), unused())
	rep.Summary = Summarize(rep.Items, rep.Currency)

	var buf bytes.Buffer
	require.NoError(t, (&XLSXFormatter{}).Render(&buf, rep))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "name", rows[0][0])
	assert.Equal(t, "unit_cost", rows[0][6])
	assert.Equal(t, "camera", rows[1][0])
	assert.Equal(t, "treadmill", rows[2][0])
	assert.Equal(t, "∞", rows[2][6])
	assert.Equal(t, "total", rows[3][0])
	assert.Equal(t, "180000.00", rows[3][1])
}

func TestResultDTOEchoesInfiniteInputAsNull(t *testing.T) {
	in := types.NewInput(0, 1, types.PeriodMonths, 1, types.FrequencyWeek)
	in.Price = math.Inf(1)
	dto := NewResultDTO(item("priceless", in), types.CurrencyJPY, locale.English)

	assert.Nil(t, dto.Input.Price)
	require.NotNil(t, dto.Input.PeriodValue)
	assert.Equal(t, 1.0, *dto.Input.PeriodValue)
	assert.Equal(t, types.PeriodMonths, dto.Input.PeriodUnit)

	data, err := json.Marshal(dto)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"price":null`)
}

func TestRequireFinite(t *testing.T) {
	assert.NoError(t, RequireFinite([]Item{camera(), bike()}))

	err := RequireFinite([]Item{camera(), unused()})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeDegenerate))
	assert.Contains(t, err.Error(), "unit cost is not finite: treadmill")
}
