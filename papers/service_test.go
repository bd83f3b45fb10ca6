package papers

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tracker "github.com/BHUPESH003/research-paper-tracker"
	"github.com/BHUPESH003/research-paper-tracker/errors"
	"github.com/BHUPESH003/research-paper-tracker/mock"
)

func newTestService() *Service {
	return NewService(&mock.PaperRepository{})
}

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }

func validCreate(title string) CreatePaper {
	return CreatePaper{
		Title:       title,
		FirstAuthor: "Shannon",
		Domain:      "Computer Science",
		Stage:       "Abstract Read",
		Citations:   intPtr(12),
		Impact:      "High Impact",
	}
}

func TestService_Create(t *testing.T) {
	s := newTestService()

	paper, err := s.Create("owner-1", validCreate("A Mathematical Theory of Communication"))
	require.NoError(t, err)
	assert.NotEmpty(t, paper.ID)
	assert.Equal(t, "owner-1", paper.OwnerID)
	assert.False(t, paper.DateAdded.IsZero())
	assert.False(t, paper.IsArchived)

	// Same (title, firstAuthor) for the same owner is a duplicate.
	_, err = s.Create("owner-1", validCreate("A Mathematical Theory of Communication"))
	require.Error(t, err)
	errors.AssertCode(t, err, 409)
	errors.AssertKind(t, err, "DUPLICATE_PAPER")

	// The same pair is fine for another owner.
	_, err = s.Create("owner-2", validCreate("A Mathematical Theory of Communication"))
	assert.NoError(t, err)
}

func TestService_Create_ArchivedKeepsSlot(t *testing.T) {
	s := newTestService()

	paper, err := s.Create("owner-1", validCreate("Attention Is All You Need"))
	require.NoError(t, err)
	require.NoError(t, s.Archive("owner-1", paper.ID))

	// Archiving does not free the (title, firstAuthor) slot.
	_, err = s.Create("owner-1", validCreate("Attention Is All You Need"))
	require.Error(t, err)
	errors.AssertCode(t, err, 409)
}

func TestService_Create_Validation(t *testing.T) {
	s := newTestService()

	tts := map[string]CreatePaper{
		"missing title": {
			FirstAuthor: "Shannon", Domain: "Physics", Stage: "Fully Read", Citations: intPtr(1), Impact: "Unknown",
		},
		"missing first author": {
			Title: "T", Domain: "Physics", Stage: "Fully Read", Citations: intPtr(1), Impact: "Unknown",
		},
		"unknown domain": {
			Title: "T", FirstAuthor: "A", Domain: "Astrology", Stage: "Fully Read", Citations: intPtr(1), Impact: "Unknown",
		},
		"unknown stage": {
			Title: "T", FirstAuthor: "A", Domain: "Physics", Stage: "Skimmed", Citations: intPtr(1), Impact: "Unknown",
		},
		"unknown impact": {
			Title: "T", FirstAuthor: "A", Domain: "Physics", Stage: "Fully Read", Citations: intPtr(1), Impact: "Mild",
		},
		"missing citation count": {
			Title: "T", FirstAuthor: "A", Domain: "Physics", Stage: "Fully Read", Impact: "Unknown",
		},
		"negative citation count": {
			Title: "T", FirstAuthor: "A", Domain: "Physics", Stage: "Fully Read", Citations: intPtr(-1), Impact: "Unknown",
		},
	}

	for name, req := range tts {
		_, err := s.Create("owner-1", req)
		require.Error(t, err, name)
		errors.AssertCode(t, err, 400)
		errors.AssertKind(t, err, "VALIDATION_ERROR")
	}
}

func TestService_Update(t *testing.T) {
	s := newTestService()

	paper, err := s.Create("owner-1", validCreate("Deep Learning"))
	require.NoError(t, err)

	updated, err := s.Update("owner-1", paper.ID, UpdatePaper{
		Domain:    strPtr("Biology"),
		Stage:     strPtr("Fully Read"),
		Citations: intPtr(200),
	})
	require.NoError(t, err)
	assert.Equal(t, tracker.DomainBiology, updated.Domain)
	assert.Equal(t, tracker.StageFullyRead, updated.Stage)
	assert.Equal(t, 200, updated.Citations)

	// Immutable fields survive updates.
	assert.Equal(t, paper.Title, updated.Title)
	assert.Equal(t, paper.Impact, updated.Impact)
	assert.True(t, paper.DateAdded.Equal(updated.DateAdded))

	// Absent fields are untouched.
	updated, err = s.Update("owner-1", paper.ID, UpdatePaper{Citations: intPtr(201)})
	require.NoError(t, err)
	assert.Equal(t, tracker.DomainBiology, updated.Domain)
	assert.Equal(t, 201, updated.Citations)
}

func TestService_Update_NotFound(t *testing.T) {
	s := newTestService()

	paper, err := s.Create("owner-1", validCreate("Deep Learning"))
	require.NoError(t, err)

	// A paper of another owner and a missing paper are the same error.
	_, err = s.Update("owner-2", paper.ID, UpdatePaper{Citations: intPtr(1)})
	require.Error(t, err)
	errors.AssertCode(t, err, 404)
	errors.AssertKind(t, err, "NOT_FOUND")

	_, err = s.Update("owner-1", "no-such-id", UpdatePaper{Citations: intPtr(1)})
	require.Error(t, err)
	errors.AssertCode(t, err, 404)
}

func TestService_Update_Validation(t *testing.T) {
	s := newTestService()

	paper, err := s.Create("owner-1", validCreate("Deep Learning"))
	require.NoError(t, err)

	tts := map[string]UpdatePaper{
		"unknown domain":          {Domain: strPtr("Astrology")},
		"unknown stage":           {Stage: strPtr("Skimmed")},
		"negative citation count": {Citations: intPtr(-3)},
	}

	for name, req := range tts {
		_, err := s.Update("owner-1", paper.ID, req)
		require.Error(t, err, name)
		errors.AssertCode(t, err, 400)
	}
}

func TestService_Archive(t *testing.T) {
	s := newTestService()

	paper, err := s.Create("owner-1", validCreate("Deep Learning"))
	require.NoError(t, err)

	require.NoError(t, s.Archive("owner-1", paper.ID))

	// Gone from listing, whatever the filters.
	res, err := s.List("owner-1", FilterSpec{Range: tracker.RangeAllTime}, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, res.Papers)
	assert.Equal(t, 0, res.Pagination.Total)

	res, err = s.List("owner-1", FilterSpec{
		Domains: []tracker.ResearchDomain{tracker.DomainComputerScience},
		Range:   tracker.RangeAllTime,
	}, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, res.Papers)

	// Gone from analytics too.
	analytics, err := s.Analytics("owner-1", FilterSpec{Range: tracker.RangeAllTime})
	require.NoError(t, err)
	assert.Equal(t, 0, analytics.Summary.TotalPapers)

	// Still fetchable directly, and archiving again is a no-op.
	_, err = s.Get("owner-1", paper.ID)
	assert.NoError(t, err)
	assert.NoError(t, s.Archive("owner-1", paper.ID))

	// Not-owned archive is not found.
	err = s.Archive("owner-2", paper.ID)
	require.Error(t, err)
	errors.AssertCode(t, err, 404)
}

func TestService_List(t *testing.T) {
	s := newTestService()

	base := time.Date(2024, time.July, 1, 12, 0, 0, 0, time.Local)
	for i := 0; i < 25; i++ {
		added := base.Add(time.Duration(i) * time.Hour)
		s.now = func() time.Time { return added }

		req := validCreate(fmt.Sprintf("Paper %02d", i))
		if i%2 == 0 {
			req.Domain = "Physics"
		}
		_, err := s.Create("owner-1", req)
		require.NoError(t, err)
	}

	// Defaults: page 1, size 10, newest first.
	res, err := s.List("owner-1", FilterSpec{Range: tracker.RangeAllTime}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Pagination.Page)
	assert.Equal(t, 10, res.Pagination.PageSize)
	assert.Equal(t, 25, res.Pagination.Total)
	require.Len(t, res.Papers, 10)
	assert.Equal(t, "Paper 24", res.Papers[0].Title)
	assert.Equal(t, "Paper 15", res.Papers[9].Title)

	// Last page is short.
	res, err = s.List("owner-1", FilterSpec{Range: tracker.RangeAllTime}, 3, 10)
	require.NoError(t, err)
	assert.Len(t, res.Papers, 5)
	assert.Equal(t, 25, res.Pagination.Total)

	// Beyond the last page.
	res, err = s.List("owner-1", FilterSpec{Range: tracker.RangeAllTime}, 4, 10)
	require.NoError(t, err)
	assert.Empty(t, res.Papers)
	assert.Equal(t, 25, res.Pagination.Total)

	// Filtered: the total matches the filter, not the whole collection.
	res, err = s.List("owner-1", FilterSpec{
		Domains: []tracker.ResearchDomain{tracker.DomainPhysics},
		Range:   tracker.RangeAllTime,
	}, 1, 50)
	require.NoError(t, err)
	assert.Len(t, res.Papers, 13)
	assert.Equal(t, 13, res.Pagination.Total)

	// Another owner sees nothing.
	res, err = s.List("owner-2", FilterSpec{Range: tracker.RangeAllTime}, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, res.Papers)
	assert.Equal(t, 0, res.Pagination.Total)
}

func TestService_List_HugePageDoesNotWrap(t *testing.T) {
	s := newTestService()

	_, err := s.Create("owner-1", validCreate("Deep Learning"))
	require.NoError(t, err)

	// (page-1)*pageSize would overflow: the page must come back empty,
	// with the total intact, not panic or wrap to an early page.
	res, err := s.List("owner-1", FilterSpec{Range: tracker.RangeAllTime}, math.MaxInt, 10)
	require.NoError(t, err)
	assert.Empty(t, res.Papers)
	assert.Equal(t, 1, res.Pagination.Total)

	// Same with a page that makes the product wrap around to offset 0,
	// which would silently serve the first page again.
	res, err = s.List("owner-1", FilterSpec{Range: tracker.RangeAllTime}, math.MaxInt/2+2, 4)
	require.NoError(t, err)
	assert.Empty(t, res.Papers)
	assert.Equal(t, 1, res.Pagination.Total)
}

func TestService_List_DateWindow(t *testing.T) {
	s := newTestService()

	// Now is Wednesday 2024-07-17; the week starts Monday 2024-07-15.
	now := time.Date(2024, time.July, 17, 15, 0, 0, 0, time.Local)

	add := func(title string, added time.Time) {
		s.now = func() time.Time { return added }
		_, err := s.Create("owner-1", validCreate(title))
		require.NoError(t, err)
	}

	add("this week", time.Date(2024, time.July, 15, 0, 0, 0, 0, time.Local))
	add("last week", time.Date(2024, time.July, 14, 23, 59, 59, 0, time.Local))
	add("months ago", time.Date(2024, time.January, 3, 10, 0, 0, 0, time.Local))

	s.now = func() time.Time { return now }

	res, err := s.List("owner-1", FilterSpec{Range: tracker.RangeThisWeek}, 1, 10)
	require.NoError(t, err)
	require.Len(t, res.Papers, 1)
	assert.Equal(t, "this week", res.Papers[0].Title)

	res, err = s.List("owner-1", FilterSpec{Range: tracker.RangeThisMonth}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, res.Papers, 2)

	res, err = s.List("owner-1", FilterSpec{Range: tracker.RangeLast3Months}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, res.Papers, 2)

	res, err = s.List("owner-1", FilterSpec{Range: tracker.RangeAllTime}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, res.Papers, 3)
	assert.Equal(t, 3, res.Pagination.Total)
}

func TestService_ListAnalyticsAgree(t *testing.T) {
	s := newTestService()

	for i := 0; i < 7; i++ {
		req := validCreate(fmt.Sprintf("Paper %d", i))
		if i < 3 {
			req.Stage = "Fully Read"
		}
		_, err := s.Create("owner-1", req)
		require.NoError(t, err)
	}

	spec := FilterSpec{
		Stages: []tracker.ReadingStage{tracker.StageFullyRead},
		Range:  tracker.RangeAllTime,
	}

	res, err := s.List("owner-1", spec, 1, 2)
	require.NoError(t, err)

	analytics, err := s.Analytics("owner-1", spec)
	require.NoError(t, err)

	// Same scope: the paginated listing's total and the analytics total
	// are the same number even though the page is smaller.
	assert.Len(t, res.Papers, 2)
	assert.Equal(t, 3, res.Pagination.Total)
	assert.Equal(t, 3, analytics.Summary.TotalPapers)
}
