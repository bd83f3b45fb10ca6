package papers

import (
	tracker "github.com/BHUPESH003/research-paper-tracker"
)

type StageCount struct {
	Stage tracker.ReadingStage `json:"stage"`
	Count int                  `json:"count"`
}

type ScatterPoint struct {
	Citations int                 `json:"citationCount"`
	Impact    tracker.ImpactScore `json:"impactScore"`
}

type DomainStages struct {
	Domain tracker.ResearchDomain `json:"domain"`
	Stages map[string]int         `json:"stages"`
}

type Summary struct {
	TotalPapers        int                `json:"totalPapers"`
	FullyRead          int                `json:"fullyRead"`
	CompletionRate     float64            `json:"completionRate"`
	AvgCitationsDomain map[string]float64 `json:"avgCitationsByDomain"`
}

type Analytics struct {
	Funnel     []StageCount   `json:"funnel"`
	Scatter    []ScatterPoint `json:"scatter"`
	StackedBar []DomainStages `json:"stackedBar"`
	Summary    Summary        `json:"summary"`
}

// buildAnalytics derives the four projections from one pass over the
// in-scope papers. Display order is fixed by the enum slices: the funnel
// always carries all 6 stages and the stacked bar all 6 domains, even at
// zero. Within a domain, only stages that actually occur appear as keys.
func buildAnalytics(set []tracker.Paper) Analytics {
	funnelCounts := make(map[tracker.ReadingStage]int, len(tracker.ReadingStages))
	scatter := make([]ScatterPoint, 0, len(set))
	domainStages := make(map[tracker.ResearchDomain]map[string]int, len(tracker.ResearchDomains))
	domainCitations := make(map[tracker.ResearchDomain]int, len(tracker.ResearchDomains))
	domainPapers := make(map[tracker.ResearchDomain]int, len(tracker.ResearchDomains))
	fullyRead := 0

	for i := range set {
		p := &set[i]

		funnelCounts[p.Stage]++
		scatter = append(scatter, ScatterPoint{Citations: p.Citations, Impact: p.Impact})

		stages := domainStages[p.Domain]
		if stages == nil {
			stages = make(map[string]int)
			domainStages[p.Domain] = stages
		}
		stages[string(p.Stage)]++

		domainCitations[p.Domain] += p.Citations
		domainPapers[p.Domain]++

		if p.Stage == tracker.StageFullyRead {
			fullyRead++
		}
	}

	funnel := make([]StageCount, 0, len(tracker.ReadingStages))
	for _, stage := range tracker.ReadingStages {
		funnel = append(funnel, StageCount{Stage: stage, Count: funnelCounts[stage]})
	}

	stackedBar := make([]DomainStages, 0, len(tracker.ResearchDomains))
	avgCitations := make(map[string]float64, len(tracker.ResearchDomains))
	for _, domain := range tracker.ResearchDomains {
		stages := domainStages[domain]
		if stages == nil {
			stages = map[string]int{}
		}
		stackedBar = append(stackedBar, DomainStages{Domain: domain, Stages: stages})

		if n := domainPapers[domain]; n > 0 {
			avgCitations[string(domain)] = float64(domainCitations[domain]) / float64(n)
		} else {
			avgCitations[string(domain)] = 0
		}
	}

	completionRate := 0.0
	if len(set) > 0 {
		completionRate = float64(fullyRead) / float64(len(set))
	}

	return Analytics{
		Funnel:     funnel,
		Scatter:    scatter,
		StackedBar: stackedBar,
		Summary: Summary{
			TotalPapers:        len(set),
			FullyRead:          fullyRead,
			CompletionRate:     completionRate,
			AvgCitationsDomain: avgCitations,
		},
	}
}
