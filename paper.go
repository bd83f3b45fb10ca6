package tracker

import (
	"time"
)

// ResearchDomain is the closed set of fields a paper can belong to.
type ResearchDomain string

const (
	DomainComputerScience ResearchDomain = "Computer Science"
	DomainBiology         ResearchDomain = "Biology"
	DomainPhysics         ResearchDomain = "Physics"
	DomainChemistry       ResearchDomain = "Chemistry"
	DomainMathematics     ResearchDomain = "Mathematics"
	DomainSocialSciences  ResearchDomain = "Social Sciences"
)

// ResearchDomains fixes the iteration order for every aggregation keyed
// by domain. Do not rely on map order anywhere.
var ResearchDomains = []ResearchDomain{
	DomainComputerScience,
	DomainBiology,
	DomainPhysics,
	DomainChemistry,
	DomainMathematics,
	DomainSocialSciences,
}

func ParseResearchDomain(s string) (ResearchDomain, bool) {
	for _, d := range ResearchDomains {
		if s == string(d) {
			return d, true
		}
	}
	return "", false
}

// ReadingStage is the closed, ordered set of reading progress values.
// Papers move between stages freely: this is a categorical field, not a
// state machine.
type ReadingStage string

const (
	StageAbstractRead     ReadingStage = "Abstract Read"
	StageIntroductionDone ReadingStage = "Introduction Done"
	StageMethodologyDone  ReadingStage = "Methodology Done"
	StageResultsAnalyzed  ReadingStage = "Results Analyzed"
	StageFullyRead        ReadingStage = "Fully Read"
	StageNotesCompleted   ReadingStage = "Notes Completed"
)

// ReadingStages fixes the funnel order.
var ReadingStages = []ReadingStage{
	StageAbstractRead,
	StageIntroductionDone,
	StageMethodologyDone,
	StageResultsAnalyzed,
	StageFullyRead,
	StageNotesCompleted,
}

func ParseReadingStage(s string) (ReadingStage, bool) {
	for _, st := range ReadingStages {
		if s == string(st) {
			return st, true
		}
	}
	return "", false
}

// ImpactScore is set once at creation and never edited afterwards.
type ImpactScore string

const (
	ImpactHigh    ImpactScore = "High Impact"
	ImpactMedium  ImpactScore = "Medium Impact"
	ImpactLow     ImpactScore = "Low Impact"
	ImpactUnknown ImpactScore = "Unknown"
)

var ImpactScores = []ImpactScore{
	ImpactHigh,
	ImpactMedium,
	ImpactLow,
	ImpactUnknown,
}

func ParseImpactScore(s string) (ImpactScore, bool) {
	for _, i := range ImpactScores {
		if s == string(i) {
			return i, true
		}
	}
	return "", false
}

// DateRange is the symbolic selector for the dateAdded lower bound.
type DateRange string

const (
	RangeThisWeek    DateRange = "THIS_WEEK"
	RangeThisMonth   DateRange = "THIS_MONTH"
	RangeLast3Months DateRange = "LAST_3_MONTHS"
	RangeAllTime     DateRange = "ALL_TIME"
)

// ParseDateRange is permissive: anything unrecognized means "no bound",
// same as ALL_TIME.
func ParseDateRange(s string) DateRange {
	switch DateRange(s) {
	case RangeThisWeek, RangeThisMonth, RangeLast3Months:
		return DateRange(s)
	}
	return RangeAllTime
}

// Paper is one tracked reading item. Title, FirstAuthor, Impact and
// DateAdded are immutable after creation; IsArchived only ever goes from
// false to true.
type Paper struct {
	ID          string         `json:"id"`
	OwnerID     string         `json:"-"`
	Title       string         `json:"title"`
	FirstAuthor string         `json:"firstAuthor"`
	Domain      ResearchDomain `json:"researchDomain"`
	Stage       ReadingStage   `json:"readingStage"`
	Citations   int            `json:"citationCount"`
	Impact      ImpactScore    `json:"impactScore"`
	DateAdded   time.Time      `json:"dateAdded"`
	IsArchived  bool           `json:"-"`
}

type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

// PaperFilter is the predicate the stores evaluate. A nil/empty slice
// leaves that dimension unconstrained. Archived papers are excluded
// unless IncludeArchived is set (only the create-time uniqueness probe
// sets it).
type PaperFilter struct {
	OwnerID string

	Stages  []ReadingStage
	Domains []ResearchDomain
	Impacts []ImpactScore

	// AddedSince, when non-nil, keeps papers with DateAdded >= *AddedSince.
	AddedSince *time.Time

	// Title and FirstAuthor, when non-nil, are exact-match constraints.
	Title       *string
	FirstAuthor *string

	IncludeArchived bool
}

// Match reports whether the paper satisfies the filter. It is the single
// definition of scope: Count and Find in every store go through it, so a
// listing and its total can never disagree.
func (f PaperFilter) Match(p *Paper) bool {
	if p.OwnerID != f.OwnerID {
		return false
	}
	if p.IsArchived && !f.IncludeArchived {
		return false
	}
	if len(f.Stages) > 0 && !containsStage(f.Stages, p.Stage) {
		return false
	}
	if len(f.Domains) > 0 && !containsDomain(f.Domains, p.Domain) {
		return false
	}
	if len(f.Impacts) > 0 && !containsImpact(f.Impacts, p.Impact) {
		return false
	}
	if f.AddedSince != nil && p.DateAdded.Before(*f.AddedSince) {
		return false
	}
	if f.Title != nil && p.Title != *f.Title {
		return false
	}
	if f.FirstAuthor != nil && p.FirstAuthor != *f.FirstAuthor {
		return false
	}
	return true
}

func containsStage(a []ReadingStage, v ReadingStage) bool {
	for _, s := range a {
		if s == v {
			return true
		}
	}
	return false
}

func containsDomain(a []ResearchDomain, v ResearchDomain) bool {
	for _, d := range a {
		if d == v {
			return true
		}
	}
	return false
}

func containsImpact(a []ImpactScore, v ImpactScore) bool {
	for _, i := range a {
		if i == v {
			return true
		}
	}
	return false
}

// PaperRepository is the record store contract. Find returns papers sorted
// by DateAdded descending, ID ascending on ties, sliced by offset/limit
// (an out-of-range or negative offset means an empty page, limit <= 0
// means no slicing). Count and Find evaluate the same filter.
type PaperRepository interface {
	Get(id string) (*Paper, error)
	Find(f PaperFilter, offset, limit int) ([]Paper, error)
	Count(f PaperFilter) (int, error)
	Upsert(*Paper) error
}
