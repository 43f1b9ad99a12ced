package policy

import (
	"context"
	"fmt"

	"payoff/core/determinism"
	"payoff/core/output"
	"payoff/core/types"
)

// MaxWastefulRule fails when more than Limit items are wasteful
type MaxWastefulRule struct {
	Limit int
}

func (r MaxWastefulRule) Name() string { return "max-wasteful" }

func (r MaxWastefulRule) Description() string {
	return fmt.Sprintf("at most %d wasteful purchases", r.Limit)
}

func (r MaxWastefulRule) Evaluate(_ context.Context, report *output.Report) (*RuleResult, error) {
	res := &RuleResult{}
	for _, it := range report.Items {
		if it.Result.Wasteful() {
			res.Violations = append(res.Violations, Violation{Item: it.Name, Message: "wasteful"})
		}
	}
	res.Passed = len(res.Violations) <= r.Limit
	res.Message = fmt.Sprintf("%d wasteful, limit %d", len(res.Violations), r.Limit)
	return res, nil
}

// MaxCategoryRule fails for every item classified above Max
type MaxCategoryRule struct {
	Max types.Category
}

func (r MaxCategoryRule) Name() string { return "max-category" }

func (r MaxCategoryRule) Description() string {
	return fmt.Sprintf("no purchase worse than %s %s", r.Max.Emoji(), r.Max)
}

func (r MaxCategoryRule) Evaluate(_ context.Context, report *output.Report) (*RuleResult, error) {
	res := &RuleResult{}
	for _, it := range report.Items {
		if it.Result.Category.Severity() > r.Max.Severity() {
			res.Violations = append(res.Violations, Violation{
				Item:    it.Name,
				Message: fmt.Sprintf("%s %s", it.Result.Category.Emoji(), it.Result.Category),
			})
		}
	}
	res.Passed = len(res.Violations) == 0
	res.Message = fmt.Sprintf("%d above %s", len(res.Violations), r.Max)
	return res, nil
}

// MaxUnitCostRule fails for every item whose unit cost exceeds Limit.
// Non-finite unit costs always violate.
type MaxUnitCostRule struct {
	Limit float64
}

func (r MaxUnitCostRule) Name() string { return "max-unit-cost" }

func (r MaxUnitCostRule) Description() string {
	return "unit cost at most " + determinism.FormatAmount(r.Limit, 2)
}

func (r MaxUnitCostRule) Evaluate(_ context.Context, report *output.Report) (*RuleResult, error) {
	res := &RuleResult{}
	for _, it := range report.Items {
		u := it.Result.UnitCost
		if !it.Result.Finite || u > r.Limit {
			res.Violations = append(res.Violations, Violation{
				Item:    it.Name,
				Message: determinism.FormatAmount(u, 2),
			})
		}
	}
	res.Passed = len(res.Violations) == 0
	res.Message = fmt.Sprintf("%d above %s", len(res.Violations), determinism.FormatAmount(r.Limit, 2))
	return res, nil
}

// FiniteRule fails for every item whose unit cost could not be computed
type FiniteRule struct{}

func (FiniteRule) Name() string { return "finite" }

func (FiniteRule) Description() string { return "every unit cost is computable" }

func (FiniteRule) Evaluate(_ context.Context, report *output.Report) (*RuleResult, error) {
	res := &RuleResult{}
	for _, it := range report.Items {
		if !it.Result.Finite {
			res.Violations = append(res.Violations, Violation{Item: it.Name, Message: "not computable"})
		}
	}
	res.Passed = len(res.Violations) == 0
	res.Message = fmt.Sprintf("%d not computable", len(res.Violations))
	return res, nil
}
