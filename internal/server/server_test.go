package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"dealradar/internal/domain"
	"dealradar/internal/domain/entity"
	"dealradar/internal/domain/service/deal"
	"dealradar/internal/domain/service/plan"
	"dealradar/internal/server"
	"dealradar/pkg/errcodes"
	"dealradar/pkg/middlewarex"
	"dealradar/pkg/rest"
	"dealradar/pkg/tests"
)

type dealServiceStub struct {
	searchResult deal.SearchResult
	searchErr    error

	analyzeResult deal.AnalyzeResult
	analyzeErr    error

	gotSearch  deal.SearchParams
	gotAnalyze deal.AnalyzeParams
}

func (s *dealServiceStub) Search(_ context.Context, params deal.SearchParams) (deal.SearchResult, error) {
	s.gotSearch = params
	return s.searchResult, s.searchErr
}

func (s *dealServiceStub) Analyze(_ context.Context, params deal.AnalyzeParams) (deal.AnalyzeResult, error) {
	s.gotAnalyze = params
	return s.analyzeResult, s.analyzeErr
}

type planAdvisorStub struct {
	result plan.Result
	err    error

	gotParams plan.Params
}

func (s *planAdvisorStub) BuildPlan(_ context.Context, params plan.Params) (plan.Result, error) {
	s.gotParams = params
	return s.result, s.err
}

func newTestServer(t *testing.T, dealSvc *dealServiceStub, advisor *planAdvisorStub) tests.APIClient {
	t.Helper()

	router := chi.NewRouter()
	router.Use(middlewarex.TraceID)

	srv := server.NewServer(
		server.NewDealServer(dealSvc),
		server.NewPlanServer(advisor),
	)
	srv.RegisterRoutes(router)

	testServer := httptest.NewServer(router)
	t.Cleanup(testServer.Close)

	return tests.NewAPIClient(testServer.URL, testServer.Client())
}

func TestPostDealsSearch(t *testing.T) {
	rq := require.New(t)

	dealSvc := &dealServiceStub{
		searchResult: deal.SearchResult{
			Deals: []entity.Deal{
				{
					Title:           "Laptop",
					Source:          "Example Store",
					ProductLink:     "https://shopping.example.com/p/42",
					Price:           lo.ToPtr(150.0),
					OriginalPrice:   lo.ToPtr(200.0),
					DiscountPercent: lo.ToPtr(25),
					Currency:        "USD",
				},
			},
			TotalFetched: 3,
		},
	}

	client := newTestServer(t, dealSvc, &planAdvisorStub{})

	var response rest.DealsSearchResponse

	resp, err := client.Post(context.Background(), "/v1/deals/search", nil, rest.DealsSearchRequest{
		Query:       "laptop",
		Category:    "electronics",
		MinDiscount: lo.ToPtr(20),
		Limit:       10,
	}, &response, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.Len(response.Deals, 1)
	rq.Equal("Laptop", response.Deals[0].Title)
	rq.Equal(lo.ToPtr(25), response.Deals[0].DiscountPercent)
	rq.Equal(1, response.Count)
	rq.Equal(3, response.TotalFetched)

	rq.Equal("laptop", dealSvc.gotSearch.Query)
	rq.Equal("electronics", dealSvc.gotSearch.Category)
	rq.Equal(lo.ToPtr(20), dealSvc.gotSearch.MinDiscount)
	rq.Equal(10, dealSvc.gotSearch.Limit)
}

func TestPostDealsSearchValidation(t *testing.T) {
	rq := require.New(t)

	client := newTestServer(t, &dealServiceStub{}, &planAdvisorStub{})

	var errResponse rest.Error

	resp, err := client.Post(context.Background(), "/v1/deals/search", nil, rest.DealsSearchRequest{
		Query: "",
	}, nil, &errResponse)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)

	rq.Equal(errcodes.ValidationError.String(), errResponse.Error)
	rq.NotEmpty(errResponse.SupportID)

	details, ok := errResponse.Details.([]any)
	rq.True(ok)
	rq.Len(details, 1)

	detail, ok := details[0].(map[string]any)
	rq.True(ok)
	rq.Equal("query", detail["field"])
	rq.Equal("failed on the 'required' rule", detail["message"])
}

func TestPostDealsSearchInvalidJSON(t *testing.T) {
	rq := require.New(t)

	client := newTestServer(t, &dealServiceStub{}, &planAdvisorStub{})

	var errResponse rest.Error

	resp, err := client.PostJSON(context.Background(), "/v1/deals/search", nil, `{"query": `, nil, &errResponse)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)

	rq.Equal(errcodes.ValidationError.String(), errResponse.Error)
	rq.Equal("Invalid JSON", errResponse.Details)
}

func TestPostDealsSearchUpstreamFailure(t *testing.T) {
	rq := require.New(t)

	dealSvc := &dealServiceStub{
		searchErr: domain.NewError(errcodes.UpstreamFetchFailed, "failed to fetch deals from provider"),
	}

	client := newTestServer(t, dealSvc, &planAdvisorStub{})

	var errResponse rest.Error

	resp, err := client.Post(context.Background(), "/v1/deals/search", nil, rest.DealsSearchRequest{
		Query: "laptop",
	}, nil, &errResponse)
	rq.NoError(err)
	rq.Equal(http.StatusInternalServerError, resp.StatusCode)

	rq.Equal(errcodes.UpstreamFetchFailed.String(), errResponse.Error)
}

func TestPostDealsAnalyze(t *testing.T) {
	rq := require.New(t)

	dealSvc := &dealServiceStub{
		analyzeResult: deal.AnalyzeResult{
			Answer:        "- Laptop is the best value",
			DealsAnalyzed: 5,
		},
	}

	client := newTestServer(t, dealSvc, &planAdvisorStub{})

	var response rest.DealsAnalyzeResponse

	resp, err := client.Post(context.Background(), "/v1/deals/analyze", nil, rest.DealsAnalyzeRequest{
		Question:    "Which deal is the best value?",
		Query:       "laptop",
		MinDiscount: lo.ToPtr(10),
	}, &response, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.Equal("- Laptop is the best value", response.Answer)
	rq.Equal(5, response.DealsAnalyzed)

	rq.Equal("Which deal is the best value?", dealSvc.gotAnalyze.Question)
	rq.Equal("laptop", dealSvc.gotAnalyze.Query)
	rq.Equal(lo.ToPtr(10), dealSvc.gotAnalyze.MinDiscount)
}

func TestPostDealsAnalyzeShortQuestion(t *testing.T) {
	rq := require.New(t)

	client := newTestServer(t, &dealServiceStub{}, &planAdvisorStub{})

	var errResponse rest.Error

	resp, err := client.Post(context.Background(), "/v1/deals/analyze", nil, rest.DealsAnalyzeRequest{
		Question: "hi",
	}, nil, &errResponse)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)

	rq.Equal(errcodes.ValidationError.String(), errResponse.Error)

	details, ok := errResponse.Details.([]any)
	rq.True(ok)
	rq.Len(details, 1)

	detail, ok := details[0].(map[string]any)
	rq.True(ok)
	rq.Equal("question", detail["field"])
	rq.Equal("failed on the 'min' rule", detail["message"])
}

func TestPostPlan(t *testing.T) {
	rq := require.New(t)

	timestamp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	advisor := &planAdvisorStub{
		result: plan.Result{
			Plan:          "1. Check amazon.com first",
			SitesCount:    2,
			DiscountRange: "20% - 70%",
			HasKeywords:   true,
			Timestamp:     timestamp,
		},
	}

	client := newTestServer(t, &dealServiceStub{}, advisor)

	request := rest.PlanRequest{
		Sites:       []string{"amazon.com", "ebay.com"},
		MinDiscount: lo.ToPtr(20),
		MaxDiscount: lo.ToPtr(70),
		Keywords:    "wireless headphones",
	}

	var response rest.PlanResponse

	resp, err := client.Post(context.Background(), "/v1/plan", nil, request, &response, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.Equal("1. Check amazon.com first", response.Plan)
	rq.Equal(request, response.DebugInfo.ReceivedParams)
	rq.Equal(2, response.DebugInfo.SitesCount)
	rq.Equal("20% - 70%", response.DebugInfo.DiscountRange)
	rq.True(response.DebugInfo.HasKeywords)
	rq.Equal("2025-06-01T12:00:00Z", response.DebugInfo.Timestamp)

	rq.Equal([]string{"amazon.com", "ebay.com"}, advisor.gotParams.Sites)
	rq.Equal(20, advisor.gotParams.MinDiscount)
	rq.Equal(70, advisor.gotParams.MaxDiscount)
	rq.Equal("wireless headphones", advisor.gotParams.Keywords)
}

func TestPostPlanValidation(t *testing.T) {
	rq := require.New(t)

	client := newTestServer(t, &dealServiceStub{}, &planAdvisorStub{})

	var errResponse rest.Error

	// Без sites и границ скидок — по нарушению на каждое поле.
	resp, err := client.PostJSON(context.Background(), "/v1/plan", nil, `{"keywords": "headphones"}`, nil, &errResponse)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)

	rq.Equal(errcodes.ValidationError.String(), errResponse.Error)

	details, ok := errResponse.Details.([]any)
	rq.True(ok)
	rq.Len(details, 3)

	fields := make([]string, 0, len(details))
	for _, d := range details {
		detail, ok := d.(map[string]any)
		rq.True(ok)
		fields = append(fields, detail["field"].(string))
	}

	rq.ElementsMatch([]string{"sites", "minDiscount", "maxDiscount"}, fields)
}

func TestPostPlanInvalidDiscountRange(t *testing.T) {
	rq := require.New(t)

	advisor := &planAdvisorStub{
		err: failure.NewInvalidArgumentError(
			"invalid discount range",
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("Discount must be between 0-100% and min must be <= max"),
		),
	}

	client := newTestServer(t, &dealServiceStub{}, advisor)

	var errResponse rest.Error

	resp, err := client.Post(context.Background(), "/v1/plan", nil, rest.PlanRequest{
		Sites:       []string{"amazon.com"},
		MinDiscount: lo.ToPtr(50),
		MaxDiscount: lo.ToPtr(20),
	}, nil, &errResponse)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)

	rq.Equal(errcodes.ValidationError.String(), errResponse.Error)
	rq.Equal("Discount must be between 0-100% and min must be <= max", errResponse.Details)
}
