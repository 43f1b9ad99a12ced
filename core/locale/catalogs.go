package locale

import "payoff/core/types"

// Form field names shared by the validation layer and the catalogs
const (
	FieldPrice       = "price"
	FieldPeriod      = "periodValue"
	FieldFrequency   = "frequencyValue"
	FieldUsers       = "users"
	FieldHoursPerUse = "hoursPerUse"
)

var catalogs = map[Locale]*Catalog{
	Japanese: {
		Title:    "元とらなアカン",
		WorthIt:  "ええ感じや！元取れてるで！",
		Wasteful: "もったいない！もっと使わなアカン！",
		Required: map[string]string{
			FieldPrice:       "価格を入力してください",
			FieldPeriod:      "期間を入力してください",
			FieldFrequency:   "頻度を入力してください",
			FieldUsers:       "人数を入力してください",
			FieldHoursPerUse: "時間を入力してください",
		},
		NotNumeric: map[string]string{
			FieldPrice:       "価格は数値である必要があります",
			FieldPeriod:      "期間は数値である必要があります",
			FieldFrequency:   "頻度は数値である必要があります",
			FieldUsers:       "人数は数値である必要があります",
			FieldHoursPerUse: "時間は数値である必要があります",
		},
		Fields: map[string]string{
			FieldPrice:       "商品の価格（円）",
			FieldPeriod:      "使用期間",
			FieldFrequency:   "使用頻度",
			FieldUsers:       "使用する人数",
			FieldHoursPerUse: "1回あたりの使用時間（時間）",
		},
		PeriodUnits: map[types.PeriodUnit]string{
			types.PeriodYears:  "年",
			types.PeriodMonths: "ヶ月",
			types.PeriodWeeks:  "週間",
			types.PeriodDays:   "日",
		},
		FrequencyUnits: map[types.FrequencyUnit]string{
			types.FrequencyDay:   "回/日",
			types.FrequencyWeek:  "回/週",
			types.FrequencyMonth: "回/月",
		},
		UnitCost: map[types.Mode]string{
			types.ModePerUse:      "1回あたりの使用コスト",
			types.ModePerHour:     "1時間あたりの使用コスト",
			types.ModePerUserHour: "1時間あたりの使用コスト",
		},
		TotalHours:  "総使用時間",
		TotalUses:   "総使用回数",
		CostPerDay:  "1日あたりのコスト",
		CostRatio:   "価格に対するコスト割合",
		HoursSuffix: "時間",
		UsesSuffix:  "回",
		NotFinite:   "計算できへん値や",
		DetailMode:  "詳細モード",
		Calculate:   "計算したろか！",
	},
	English: {
		Title:    "Make It Pay Off",
		WorthIt:  "Nice! You're getting your money's worth!",
		Wasteful: "What a waste! You need to use it more!",
		Required: map[string]string{
			FieldPrice:       "Please enter a price",
			FieldPeriod:      "Please enter a period",
			FieldFrequency:   "Please enter a frequency",
			FieldUsers:       "Please enter the number of users",
			FieldHoursPerUse: "Please enter the hours per use",
		},
		NotNumeric: map[string]string{
			FieldPrice:       "Price must be a number",
			FieldPeriod:      "Period must be a number",
			FieldFrequency:   "Frequency must be a number",
			FieldUsers:       "Number of users must be a number",
			FieldHoursPerUse: "Hours per use must be a number",
		},
		Fields: map[string]string{
			FieldPrice:       "Price",
			FieldPeriod:      "Usage period",
			FieldFrequency:   "Usage frequency",
			FieldUsers:       "Number of users",
			FieldHoursPerUse: "Hours per use",
		},
		PeriodUnits: map[types.PeriodUnit]string{
			types.PeriodYears:  "years",
			types.PeriodMonths: "months",
			types.PeriodWeeks:  "weeks",
			types.PeriodDays:   "days",
		},
		FrequencyUnits: map[types.FrequencyUnit]string{
			types.FrequencyDay:   "times/day",
			types.FrequencyWeek:  "times/week",
			types.FrequencyMonth: "times/month",
		},
		UnitCost: map[types.Mode]string{
			types.ModePerUse:      "Cost per use",
			types.ModePerHour:     "Cost per hour",
			types.ModePerUserHour: "Cost per hour per user",
		},
		TotalHours:  "Total hours of use",
		TotalUses:   "Total uses",
		CostPerDay:  "Cost per day",
		CostRatio:   "Cost as share of price",
		HoursSuffix: "h",
		UsesSuffix:  " uses",
		NotFinite:   "not computable",
		DetailMode:  "Detailed mode",
		Calculate:   "Calculate",
	},
}
