package eligibility

// ProgramResult is the outcome for one program. EstimatedAmount is zero whenever Eligible
// is false, and also for programs with no modeled amount.
type ProgramResult struct {
	Eligible        bool
	EstimatedAmount float64
	Reason          string
}

// Results maps every catalog program to its result.
type Results map[ProgramID]ProgramResult

// Summary aggregates a result set.
type Summary struct {
	EligibleCount        int
	TotalEstimatedAmount float64
}

// Summary counts eligible programs and totals their estimated amounts. Catalog order keeps
// the floating-point sum deterministic.
func (r Results) Summary() Summary {
	var s Summary
	for _, id := range Catalog {
		res, ok := r[id]
		if !ok || !res.Eligible {
			continue
		}
		s.EligibleCount++
		s.TotalEstimatedAmount += res.EstimatedAmount
	}
	return s
}

// Filter returns the subset of r for the given programs. Unknown ids are skipped.
func (r Results) Filter(ids ...ProgramID) Results {
	out := make(Results, len(ids))
	for _, id := range ids {
		if res, ok := r[id]; ok {
			out[id] = res
		}
	}
	return out
}
