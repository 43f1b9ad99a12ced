// Package policy provides guardrails evaluated against a finished report.
// A blocking failure makes a batch run fail, which lets scenario files act
// as spending checks in CI.
package policy

import (
	"context"
	"fmt"
	"strings"

	"payoff/core/output"
	"payoff/internal/errors"
)

// Rule defines a single policy rule
type Rule interface {
	// Name returns the rule identifier
	Name() string

	// Description returns a human-readable description
	Description() string

	// Evaluate checks the rule against the report
	Evaluate(ctx context.Context, report *output.Report) (*RuleResult, error)
}

// RuleResult contains the evaluation output for a single rule
type RuleResult struct {
	// RuleName is the rule that was evaluated
	RuleName string `json:"rule_name"`

	// Passed indicates if the rule passed
	Passed bool `json:"passed"`

	// Severity is the rule severity
	Severity Severity `json:"severity"`

	// Message is a human-readable result message
	Message string `json:"message"`

	// Violations lists specific violations
	Violations []Violation `json:"violations,omitempty"`
}

// Violation represents a specific policy violation
type Violation struct {
	// Item is the violating item's name
	Item string `json:"item"`

	// Message describes the violation
	Message string `json:"message"`
}

// Severity levels for policy violations
type Severity string

const (
	// SeverityWarning is a warning that doesn't block
	SeverityWarning Severity = "warning"

	// SeverityBlock fails the run
	SeverityBlock Severity = "block"
)

// ParseSeverity parses a severity name
func ParseSeverity(s string) (Severity, error) {
	switch v := Severity(strings.ToLower(strings.TrimSpace(s))); v {
	case SeverityWarning, SeverityBlock:
		return v, nil
	}
	return "", errors.NotSupported("policy severity", s)
}

// EvaluationResult contains all rule results
type EvaluationResult struct {
	// Results contains individual rule results
	Results []*RuleResult `json:"results"`

	// PassedCount is the number of passed rules
	PassedCount int `json:"passed_count"`

	// FailedCount is the number of failed rules
	FailedCount int `json:"failed_count"`

	// Blocked indicates if any blocking rule failed
	Blocked bool `json:"blocked"`

	// BlockReason explains why the run is blocked
	BlockReason string `json:"block_reason,omitempty"`
}

// HasFailures returns true if any rules failed
func (r *EvaluationResult) HasFailures() bool {
	return r.FailedCount > 0
}

// GetBlockingRules returns failed rules that block the run
func (r *EvaluationResult) GetBlockingRules() []*RuleResult {
	var blocking []*RuleResult
	for _, result := range r.Results {
		if !result.Passed && result.Severity == SeverityBlock {
			blocking = append(blocking, result)
		}
	}
	return blocking
}

// Err returns a TypeInput error describing the blocking rules, or nil
func (r *EvaluationResult) Err() error {
	if !r.Blocked {
		return nil
	}
	return errors.New(errors.TypeInput, r.BlockReason)
}

// Evaluator runs policy rules in registration order
type Evaluator struct {
	rules []registered

	// StopOnBlock stops evaluation on the first blocking failure
	StopOnBlock bool
}

type registered struct {
	rule     Rule
	severity Severity
}

// NewEvaluator creates an empty evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// RegisterRule adds a rule with the given severity
func (e *Evaluator) RegisterRule(rule Rule, severity Severity) error {
	for _, r := range e.rules {
		if r.rule.Name() == rule.Name() {
			return errors.Newf(errors.TypeConfig, "policy rule %q already registered", rule.Name())
		}
	}
	e.rules = append(e.rules, registered{rule: rule, severity: severity})
	return nil
}

// Rules returns the registered rules in order
func (e *Evaluator) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	for i, r := range e.rules {
		out[i] = r.rule
	}
	return out
}

// Len returns the number of registered rules
func (e *Evaluator) Len() int {
	return len(e.rules)
}

// Evaluate runs all rules against report
func (e *Evaluator) Evaluate(ctx context.Context, report *output.Report) (*EvaluationResult, error) {
	out := &EvaluationResult{}
	var blocking []string

	for _, r := range e.rules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := r.rule.Evaluate(ctx, report)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeInternal, err, "policy rule %q", r.rule.Name())
		}
		res.RuleName = r.rule.Name()
		res.Severity = r.severity
		out.Results = append(out.Results, res)

		if res.Passed {
			out.PassedCount++
			continue
		}
		out.FailedCount++
		if r.severity == SeverityBlock {
			out.Blocked = true
			blocking = append(blocking, fmt.Sprintf("%s: %s", res.RuleName, res.Message))
			if e.StopOnBlock {
				break
			}
		}
	}

	if out.Blocked {
		out.BlockReason = "policy failed: " + strings.Join(blocking, "; ")
	}
	return out, nil
}
