package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/BHUPESH003/research-paper-tracker/auth"
	"github.com/BHUPESH003/research-paper-tracker/papers"
	"github.com/BHUPESH003/research-paper-tracker/papers/endpoints"
	"github.com/BHUPESH003/research-paper-tracker/ratelimit"
)

func RegisterPaperEndpoints(
	srv Server,
	service *papers.Service,
	authenticator *auth.Authenticator,
	limiter *ratelimit.Limiter,
) {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(encodeError),
		kithttp.ServerBefore(auth.TokenToContext),
	}

	read := func(ep endpoint.Endpoint) endpoint.Endpoint {
		return authenticator.Authenticated(ratelimit.Middleware(limiter, ratelimit.ClassRead)(ep))
	}
	write := func(ep endpoint.Endpoint) endpoint.Endpoint {
		return authenticator.Authenticated(ratelimit.Middleware(limiter, ratelimit.ClassWrite)(ep))
	}

	ep := endpoints.NewPaperEndpoint(service)

	listPapersHandler := kithttp.NewServer(
		read(ep.List),
		decodeListPapersRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	analyticsHandler := kithttp.NewServer(
		read(ep.Analytics),
		decodeAnalyticsRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	getPaperHandler := kithttp.NewServer(
		read(ep.Get),
		decodeGetPaperRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	createPaperHandler := kithttp.NewServer(
		write(ep.Create),
		decodeCreatePaperRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	updatePaperHandler := kithttp.NewServer(
		write(ep.Update),
		decodeUpdatePaperRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	archivePaperHandler := kithttp.NewServer(
		write(ep.Archive),
		decodeGetPaperRequest, // Decoder is the same as get
		kithttp.EncodeJSONResponse,
		opts...,
	)

	srv.RegisterHandler("/papers", "GET", listPapersHandler)
	srv.RegisterHandler("/papers/analytics", "GET", analyticsHandler)
	srv.RegisterHandler("/papers", "POST", createPaperHandler)
	srv.RegisterHandler("/papers/:id", "GET", getPaperHandler)
	srv.RegisterHandler("/papers/:id", "PUT", updatePaperHandler)
	srv.RegisterHandler("/papers/:id/archive", "POST", archivePaperHandler)
}

func decodeFilters(r *http.Request) endpoints.FilterRequest {
	q := r.URL.Query()
	return endpoints.FilterRequest{
		Stages:    q["readingStages"],
		Domains:   q["researchDomains"],
		Impacts:   q["impactScores"],
		DateRange: q.Get("dateRange"),
	}
}

// queryInt is deliberately forgiving: a missing or non-numeric value comes
// back as 0 and the service falls back to its default.
func queryInt(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return i
}

func decodeListPapersRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	req := endpoints.ListPapersRequest{
		Filters:  decodeFilters(r),
		Page:     queryInt(r, "page"),
		PageSize: queryInt(r, "pageSize"),
	}
	return req, nil
}

func decodeAnalyticsRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	return decodeFilters(r), nil
}

func decodeGetPaperRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	params := ctx.Value("params").(map[string]string)
	return params["id"], nil
}

func decodeCreatePaperRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	var req papers.CreatePaper
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, invalidBody(err)
	}

	return req, nil
}

func decodeUpdatePaperRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	params := ctx.Value("params").(map[string]string)

	var fields papers.UpdatePaper
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		return nil, invalidBody(err)
	}

	return endpoints.UpdatePaperRequest{
		ID:     params["id"],
		Fields: fields,
	}, nil
}
