package quality

import "sort"

// FilterCriteria are the corpus-level acceptance thresholds. A record
// passes when it meets all three.
type FilterCriteria struct {
	MinScore    float64 `json:"min_score"`    // quality_score >= MinScore
	MinDuration float64 `json:"min_duration"` // duration >= MinDuration, seconds
	MaxSilence  float64 `json:"max_silence"`  // silence_ratio <= MaxSilence
}

// DefaultFilterCriteria returns the standard training-clip thresholds
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		MinScore:    60,
		MinDuration: 5.0,
		MaxSilence:  0.4,
	}
}

// SortByScore returns the records sorted by quality score descending.
// The sort is stable: equal scores keep their input order. The input
// slice is not modified.
func SortByScore(records []*Record) []*Record {
	sorted := make([]*Record, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].QualityScore > sorted[j].QualityScore
	})

	return sorted
}

// Filter returns the ordered subset of records satisfying the criteria.
// The input slice is not modified.
func Filter(records []*Record, criteria FilterCriteria) []*Record {
	kept := make([]*Record, 0, len(records))
	for _, r := range records {
		if r.QualityScore >= criteria.MinScore &&
			r.Duration >= criteria.MinDuration &&
			r.SilenceRatio <= criteria.MaxSilence {
			kept = append(kept, r)
		}
	}
	return kept
}
