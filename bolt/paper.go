package bolt

import (
	"encoding/json"
	"sort"

	"github.com/boltdb/bolt"

	tracker "github.com/BHUPESH003/research-paper-tracker"
)

var paperBucket = []byte("papers")

// PaperStore is used to store and retrieve papers from a bolt database.
// Papers are JSON values keyed by their id; filtering is a bucket scan
// with the PaperFilter predicate, which keeps Count and Find on the exact
// same definition of scope.
type PaperStore struct {
	Driver *Driver
}

type storedPaper struct {
	tracker.Paper
	OwnerID    string `json:"ownerId"`
	IsArchived bool   `json:"isArchived"`
}

// Get retrieves the paper with the given id. If no paper can be found,
// Get returns nil.
func (s *PaperStore) Get(id string) (*tracker.Paper, error) {
	var paper *tracker.Paper
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(paperBucket)

		data := bucket.Get([]byte(id))
		if data == nil {
			return nil
		}

		var stored storedPaper
		if err := json.Unmarshal(data, &stored); err != nil {
			return err
		}

		p := stored.paper()
		paper = &p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return paper, nil
}

// Find returns the papers matching the filter, sorted by DateAdded
// descending with the id as tie-break, sliced by offset/limit. An offset
// out of range, including a negative one from a wrapped page computation,
// yields an empty page; a limit <= 0 disables slicing.
func (s *PaperStore) Find(f tracker.PaperFilter, offset, limit int) ([]tracker.Paper, error) {
	papers, err := s.scan(f)
	if err != nil {
		return nil, err
	}

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

// Count counts the papers matching the filter.
func (s *PaperStore) Count(f tracker.PaperFilter) (int, error) {
	papers, err := s.scan(f)
	if err != nil {
		return 0, err
	}
	return len(papers), nil
}

// Upsert inserts or updates a paper. The caller owns id assignment.
func (s *PaperStore) Upsert(paper *tracker.Paper) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(paperBucket)

		data, err := json.Marshal(storedPaper{
			Paper:      *paper,
			OwnerID:    paper.OwnerID,
			IsArchived: paper.IsArchived,
		})
		if err != nil {
			return err
		}

		return bucket.Put([]byte(paper.ID), data)
	})
}

func (s *PaperStore) scan(f tracker.PaperFilter) ([]tracker.Paper, error) {
	papers := make([]tracker.Paper, 0)

	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(paperBucket)

		c := bucket.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var stored storedPaper
			if err := json.Unmarshal(data, &stored); err != nil {
				return err
			}

			p := stored.paper()
			if f.Match(&p) {
				papers = append(papers, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return papers, nil
}

// paper rebuilds the domain value: OwnerID and IsArchived are stored under
// their own keys because the domain type hides them from API JSON.
func (s storedPaper) paper() tracker.Paper {
	p := s.Paper
	p.OwnerID = s.OwnerID
	p.IsArchived = s.IsArchived
	return p
}
