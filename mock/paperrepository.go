package mock

import (
	"sort"

	tracker "github.com/BHUPESH003/research-paper-tracker"
)

// PaperRepository is an in-memory tracker.PaperRepository for tests.
type PaperRepository struct {
	db map[string]*tracker.Paper
}

func (r *PaperRepository) Get(id string) (*tracker.Paper, error) {
	if r.db == nil {
		r.db = make(map[string]*tracker.Paper)
	}

	p, ok := r.db[id]
	if !ok {
		return nil, nil
	}

	copied := *p
	return &copied, nil
}

func (r *PaperRepository) Find(f tracker.PaperFilter, offset, limit int) ([]tracker.Paper, error) {
	papers := r.scan(f)

	sort.Slice(papers, func(i, j int) bool {
		if papers[i].DateAdded.Equal(papers[j].DateAdded) {
			return papers[i].ID < papers[j].ID
		}
		return papers[i].DateAdded.After(papers[j].DateAdded)
	})

	if offset < 0 || offset >= len(papers) {
		return []tracker.Paper{}, nil
	}
	papers = papers[offset:]
	if limit > 0 && limit < len(papers) {
		papers = papers[:limit]
	}

	return papers, nil
}

func (r *PaperRepository) Count(f tracker.PaperFilter) (int, error) {
	return len(r.scan(f)), nil
}

func (r *PaperRepository) Upsert(paper *tracker.Paper) error {
	if r.db == nil {
		r.db = make(map[string]*tracker.Paper)
	}

	copied := *paper
	r.db[paper.ID] = &copied
	return nil
}

func (r *PaperRepository) scan(f tracker.PaperFilter) []tracker.Paper {
	papers := make([]tracker.Paper, 0)
	for _, p := range r.db {
		if f.Match(p) {
			papers = append(papers, *p)
		}
	}
	return papers
}
