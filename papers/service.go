package papers

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	tracker "github.com/BHUPESH003/research-paper-tracker"
	"github.com/BHUPESH003/research-paper-tracker/errors"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

func errPaperNotFound(id string) error {
	return errors.New(fmt.Sprintf("paper %s not found", id), errors.NotFound())
}

// Service owns everything behind the HTTP surface: scoping, listing,
// analytics, and the paper lifecycle.
type Service struct {
	repository tracker.PaperRepository

	now func() time.Time
}

func NewService(repo tracker.PaperRepository) *Service {
	return &Service{
		repository: repo,
		now:        time.Now,
	}
}

// scopedFilter builds the one predicate both listing and analytics run
// against: owner equality and non-archived always, then each present
// filter dimension.
func (s *Service) scopedFilter(ownerID string, spec FilterSpec) tracker.PaperFilter {
	f := tracker.PaperFilter{
		OwnerID: ownerID,
		Stages:  spec.Stages,
		Domains: spec.Domains,
		Impacts: spec.Impacts,
	}

	if since, ok := windowLowerBound(spec.Range, s.now()); ok {
		f.AddedSince = &since
	}

	return f
}

type ListResult struct {
	Papers     []tracker.Paper
	Pagination tracker.Pagination
}

// List returns one page of the owner's papers under the given filters,
// newest first, together with the total count of the same scope. Paging
// values are permissive: anything non-positive falls back to the defaults.
func (s *Service) List(ownerID string, spec FilterSpec, page, pageSize int) (ListResult, error) {
	if page < 1 {
		page = defaultPage
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	filter := s.scopedFilter(ownerID, spec)

	total, err := s.repository.Count(filter)
	if err != nil {
		return ListResult{}, errors.New("could not count papers", errors.WithCause(err))
	}

	// A page far beyond the collection comes back empty; the offset
	// computation must not wrap around on a huge page number.
	offset := (page - 1) * pageSize
	if page-1 > math.MaxInt/pageSize {
		offset = math.MaxInt
	}

	items, err := s.repository.Find(filter, offset, pageSize)
	if err != nil {
		return ListResult{}, errors.New("could not list papers", errors.WithCause(err))
	}

	return ListResult{
		Papers: items,
		Pagination: tracker.Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    total,
		},
	}, nil
}

// Analytics aggregates over every paper in scope, with no pagination. The
// scope is the exact same filter List uses, so the two views always agree.
func (s *Service) Analytics(ownerID string, spec FilterSpec) (Analytics, error) {
	set, err := s.repository.Find(s.scopedFilter(ownerID, spec), 0, 0)
	if err != nil {
		return Analytics{}, errors.New("could not load papers", errors.WithCause(err))
	}

	return buildAnalytics(set), nil
}

type CreatePaper struct {
	Title       string `json:"title"`
	FirstAuthor string `json:"firstAuthor"`
	Domain      string `json:"researchDomain"`
	Stage       string `json:"readingStage"`
	Citations   *int   `json:"citationCount"`
	Impact      string `json:"impactScore"`
}

// Create inserts a new paper for the owner. The (title, firstAuthor) pair
// must be unique among the owner's papers, archived ones included.
func (s *Service) Create(ownerID string, req CreatePaper) (tracker.Paper, error) {
	if req.Title == "" {
		return tracker.Paper{}, errors.New("title is required", errors.BadRequest())
	}
	if req.FirstAuthor == "" {
		return tracker.Paper{}, errors.New("firstAuthor is required", errors.BadRequest())
	}

	domain, ok := tracker.ParseResearchDomain(req.Domain)
	if !ok {
		return tracker.Paper{}, errors.New("invalid researchDomain", errors.BadRequest())
	}
	stage, ok := tracker.ParseReadingStage(req.Stage)
	if !ok {
		return tracker.Paper{}, errors.New("invalid readingStage", errors.BadRequest())
	}
	impact, ok := tracker.ParseImpactScore(req.Impact)
	if !ok {
		return tracker.Paper{}, errors.New("invalid impactScore", errors.BadRequest())
	}
	if req.Citations == nil {
		return tracker.Paper{}, errors.New("citationCount is required", errors.BadRequest())
	}
	if *req.Citations < 0 {
		return tracker.Paper{}, errors.New("citationCount must not be negative", errors.BadRequest())
	}

	// Archiving does not free the (title, firstAuthor) slot.
	count, err := s.repository.Count(tracker.PaperFilter{
		OwnerID:         ownerID,
		Title:           &req.Title,
		FirstAuthor:     &req.FirstAuthor,
		IncludeArchived: true,
	})
	if err != nil {
		return tracker.Paper{}, errors.New("could not check for duplicates", errors.WithCause(err))
	}
	if count > 0 {
		return tracker.Paper{}, errors.New("a paper with this title and first author already exists", errors.Duplicate())
	}

	paper := tracker.Paper{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       req.Title,
		FirstAuthor: req.FirstAuthor,
		Domain:      domain,
		Stage:       stage,
		Citations:   *req.Citations,
		Impact:      impact,
		DateAdded:   s.now(),
	}

	if err := s.repository.Upsert(&paper); err != nil {
		return tracker.Paper{}, errors.New("could not save paper", errors.WithCause(err))
	}

	return paper, nil
}

type UpdatePaper struct {
	Domain    *string `json:"researchDomain"`
	Stage     *string `json:"readingStage"`
	Citations *int    `json:"citationCount"`
}

// Get returns the owner's paper, archived ones included.
func (s *Service) Get(ownerID, id string) (tracker.Paper, error) {
	paper, err := s.owned(ownerID, id)
	if err != nil {
		return tracker.Paper{}, err
	}
	return *paper, nil
}

// Update patches the three mutable fields. Absent fields are left alone.
func (s *Service) Update(ownerID, id string, req UpdatePaper) (tracker.Paper, error) {
	paper, err := s.owned(ownerID, id)
	if err != nil {
		return tracker.Paper{}, err
	}

	if req.Domain != nil {
		domain, ok := tracker.ParseResearchDomain(*req.Domain)
		if !ok {
			return tracker.Paper{}, errors.New("invalid researchDomain", errors.BadRequest())
		}
		paper.Domain = domain
	}
	if req.Stage != nil {
		stage, ok := tracker.ParseReadingStage(*req.Stage)
		if !ok {
			return tracker.Paper{}, errors.New("invalid readingStage", errors.BadRequest())
		}
		paper.Stage = stage
	}
	if req.Citations != nil {
		if *req.Citations < 0 {
			return tracker.Paper{}, errors.New("citationCount must not be negative", errors.BadRequest())
		}
		paper.Citations = *req.Citations
	}

	if err := s.repository.Upsert(paper); err != nil {
		return tracker.Paper{}, errors.New("could not save paper", errors.WithCause(err))
	}

	return *paper, nil
}

// Archive hides the paper from listing and analytics for good. Archiving
// an already archived paper is a no-op.
func (s *Service) Archive(ownerID, id string) error {
	paper, err := s.owned(ownerID, id)
	if err != nil {
		return err
	}

	paper.IsArchived = true
	if err := s.repository.Upsert(paper); err != nil {
		return errors.New("could not save paper", errors.WithCause(err))
	}

	return nil
}

// owned resolves a paper id within the owner's partition. A missing paper
// and a paper held by another owner are indistinguishable on purpose: both
// come back as not found.
func (s *Service) owned(ownerID, id string) (*tracker.Paper, error) {
	paper, err := s.repository.Get(id)
	if err != nil {
		return nil, errors.New("could not get paper", errors.WithCause(err))
	}
	if paper == nil || paper.OwnerID != ownerID {
		return nil, errPaperNotFound(id)
	}
	return paper, nil
}
