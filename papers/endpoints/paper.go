package endpoints

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/BHUPESH003/research-paper-tracker/auth"
	"github.com/BHUPESH003/research-paper-tracker/errors"
	"github.com/BHUPESH003/research-paper-tracker/papers"
)

var errInvalidRequest = errors.New("invalid request", errors.BadRequest())

type PaperEndpoint struct {
	service *papers.Service
}

func NewPaperEndpoint(service *papers.Service) *PaperEndpoint {
	return &PaperEndpoint{
		service: service,
	}
}

func envelope(data interface{}) map[string]interface{} {
	return map[string]interface{}{
		"code":    "OK",
		"data":    data,
		"message": "",
	}
}

// FilterRequest carries the raw filter values as they came off the wire.
// Normalization happens in the papers package.
type FilterRequest struct {
	Stages    []string
	Domains   []string
	Impacts   []string
	DateRange string
}

func (r FilterRequest) spec() papers.FilterSpec {
	return papers.NormalizeFilters(r.Stages, r.Domains, r.Impacts, r.DateRange)
}

type ListPapersRequest struct {
	Filters  FilterRequest
	Page     int
	PageSize int
}

func (ep *PaperEndpoint) List(ctx context.Context, r interface{}) (interface{}, error) {
	ownerID, err := auth.OwnerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(ListPapersRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	res, err := ep.service.List(ownerID, req.Filters.spec(), req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	return envelope(map[string]interface{}{
		"items":      res.Papers,
		"pagination": res.Pagination,
	}), nil
}

func (ep *PaperEndpoint) Analytics(ctx context.Context, r interface{}) (interface{}, error) {
	ownerID, err := auth.OwnerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(FilterRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	analytics, err := ep.service.Analytics(ownerID, req.spec())
	if err != nil {
		return nil, err
	}

	return envelope(analytics), nil
}

func (ep *PaperEndpoint) Get(ctx context.Context, r interface{}) (interface{}, error) {
	ownerID, err := auth.OwnerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	id, ok := r.(string)
	if !ok {
		return nil, errInvalidRequest
	}

	paper, err := ep.service.Get(ownerID, id)
	if err != nil {
		return nil, err
	}

	return envelope(paper), nil
}

func (ep *PaperEndpoint) Create(ctx context.Context, r interface{}) (interface{}, error) {
	ownerID, err := auth.OwnerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(papers.CreatePaper)
	if !ok {
		return nil, errInvalidRequest
	}

	paper, err := ep.service.Create(ownerID, req)
	if err != nil {
		return nil, err
	}

	return statusCoder{
		code:     http.StatusCreated,
		response: envelope(map[string]string{"id": paper.ID}),
	}, nil
}

type UpdatePaperRequest struct {
	ID     string
	Fields papers.UpdatePaper
}

func (ep *PaperEndpoint) Update(ctx context.Context, r interface{}) (interface{}, error) {
	ownerID, err := auth.OwnerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(UpdatePaperRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	if _, err := ep.service.Update(ownerID, req.ID, req.Fields); err != nil {
		return nil, err
	}

	return envelope(nil), nil
}

func (ep *PaperEndpoint) Archive(ctx context.Context, r interface{}) (interface{}, error) {
	ownerID, err := auth.OwnerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	id, ok := r.(string)
	if !ok {
		return nil, errInvalidRequest
	}

	if err := ep.service.Archive(ownerID, id); err != nil {
		return nil, err
	}

	return envelope(nil), nil
}

// statusCoder is useful to return http responses with a status that is not
// 200 but is not an error either.
type statusCoder struct {
	code     int
	response interface{}
}

func (s statusCoder) StatusCode() int { return s.code }

func (s statusCoder) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.response)
}
