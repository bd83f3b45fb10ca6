package papers

import (
	tracker "github.com/BHUPESH003/research-paper-tracker"
)

// FilterSpec is the canonical form of the filter inputs. Empty slices mean
// the dimension is unconstrained, Range is RangeAllTime when absent or
// unrecognized.
type FilterSpec struct {
	Stages  []tracker.ReadingStage
	Domains []tracker.ResearchDomain
	Impacts []tracker.ImpactScore
	Range   tracker.DateRange
}

// NormalizeFilters turns the raw, possibly garbage query values into a
// FilterSpec. Parsing is permissive: unknown stages, domains, impacts and
// date ranges are dropped silently instead of failing the request.
func NormalizeFilters(stages, domains, impacts []string, dateRange string) FilterSpec {
	spec := FilterSpec{Range: tracker.ParseDateRange(dateRange)}

	for _, s := range stages {
		if stage, ok := tracker.ParseReadingStage(s); ok {
			spec.Stages = append(spec.Stages, stage)
		}
	}
	for _, d := range domains {
		if domain, ok := tracker.ParseResearchDomain(d); ok {
			spec.Domains = append(spec.Domains, domain)
		}
	}
	for _, i := range impacts {
		if impact, ok := tracker.ParseImpactScore(i); ok {
			spec.Impacts = append(spec.Impacts, impact)
		}
	}

	return spec
}
