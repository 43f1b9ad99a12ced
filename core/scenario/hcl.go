package scenario

import (
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"payoff/core/form"
	"payoff/internal/errors"
)

type hclFile struct {
	Mode    string    `hcl:"mode,optional"`
	Banding string    `hcl:"banding,optional"`
	Items   []hclItem `hcl:"item,block"`
}

type hclItem struct {
	Name          string `hcl:"name,label"`
	Price         string `hcl:"price,optional"`
	Period        string `hcl:"period,optional"`
	PeriodUnit    string `hcl:"period_unit,optional"`
	Frequency     string `hcl:"frequency,optional"`
	FrequencyUnit string `hcl:"frequency_unit,optional"`
	Users         string `hcl:"users,optional"`
	HoursPerUse   string `hcl:"hours_per_use,optional"`
}

func parseHCL(data []byte, filename string, vars map[string]string) (*Scenario, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Parsing(filename, diags)
	}

	var decoded hclFile
	if diags := gohcl.DecodeBody(file.Body, evalContext(vars), &decoded); diags.HasErrors() {
		return nil, errors.Parsing(filename, diags)
	}

	s := &Scenario{Mode: decoded.Mode, Banding: decoded.Banding}
	for _, it := range decoded.Items {
		s.Entries = append(s.Entries, Entry{
			Name: it.Name,
			Raw: form.RawInput{
				Price:          it.Price,
				PeriodValue:    it.Period,
				PeriodUnit:     it.PeriodUnit,
				FrequencyValue: it.Frequency,
				FrequencyUnit:  it.FrequencyUnit,
				Users:          it.Users,
				HoursPerUse:    it.HoursPerUse,
			},
		})
	}
	return s, nil
}

// evalContext exposes vars as var.<name>; numeric strings become numbers
func evalContext(vars map[string]string) *hcl.EvalContext {
	values := make(map[string]cty.Value, len(vars))
	for k, v := range vars {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			values[k] = cty.NumberFloatVal(f)
		} else {
			values[k] = cty.StringVal(v)
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"var": cty.ObjectVal(values),
		},
	}
}
