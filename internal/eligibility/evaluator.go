// Package eligibility evaluates a household profile against the fixed program catalog.
//
// The evaluator is pure: it performs no I/O, holds no mutable state, and yields identical
// results for identical profiles, so a single instance can serve concurrent requests.
package eligibility

import (
	"fmt"

	"benefitscout/internal/benefits/formula"
)

// Evaluator applies every catalog rule to a profile for one benefit year.
type Evaluator struct {
	params formula.Parameters
	calc   *formula.Calculator
	rules  []rule
}

// NewEvaluator builds an evaluator over the given benefit-year parameters.
func NewEvaluator(params formula.Parameters) (*Evaluator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{
		params: params,
		calc:   formula.New(params),
		rules:  rules,
	}, nil
}

// BenefitYear returns the year of the parameters in use.
func (e *Evaluator) BenefitYear() int {
	return e.params.Year
}

// Calculator exposes the formula library bound to the evaluator's benefit year.
func (e *Evaluator) Calculator() *formula.Calculator {
	return e.calc
}

// RuleError records a rule that panicked. Its program is reported with
// ReasonEvaluationError and the other programs are unaffected.
type RuleError struct {
	Program   ProgramID
	Recovered any
}

func (e RuleError) Error() string {
	return fmt.Sprintf("eligibility rule %s failed: %v", e.Program, e.Recovered)
}

// EvaluateAll returns a result for every program in the catalog. The profile is
// normalized first and the poverty baseline is computed once for all rules.
func (e *Evaluator) EvaluateAll(profile Profile) Results {
	results, _ := e.Evaluate(profile)
	return results
}

// Evaluate is EvaluateAll that also returns the rules which failed, so callers
// can log and count them.
func (e *Evaluator) Evaluate(profile Profile) (Results, []RuleError) {
	p := profile.Normalize()
	f := &facts{
		Profile: p,
		fpl:     e.calc.PovertyBaseline(p.HouseholdSize),
		calc:    e.calc,
		params:  &e.params,
	}

	results := make(Results, len(e.rules))
	var failed []RuleError
	for _, r := range e.rules {
		res, recovered := apply(r, f)
		if recovered != nil {
			failed = append(failed, RuleError{Program: r.id, Recovered: recovered})
		}
		results[r.id] = res
	}
	return results, failed
}

// EvaluateOne returns the result for a single program. It is a filtered view of
// EvaluateAll so the two can never disagree. Unknown ids fail with a not-found error.
func (e *Evaluator) EvaluateOne(profile Profile, programID string) (ProgramResult, error) {
	id, err := ParseProgramID(programID)
	if err != nil {
		return ProgramResult{}, err
	}
	return e.EvaluateAll(profile)[id], nil
}

// apply runs one rule in isolation. A panicking rule degrades to a conservative
// ineligible result for its own program only; the recovered value is returned.
func apply(r rule, f *facts) (res ProgramResult, recovered any) {
	defer func() {
		if v := recover(); v != nil {
			res = ProgramResult{Reason: ReasonEvaluationError}
			recovered = v
		}
	}()

	eligible, reason := r.check(f)
	res = ProgramResult{Eligible: eligible, Reason: reason}
	if eligible && r.amount != nil {
		res.EstimatedAmount = nonNegative(r.amount(f))
	}
	return res, nil
}
