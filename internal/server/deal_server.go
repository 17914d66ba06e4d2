package server

import (
	"context"
	"fmt"
	"net/http"

	"dealradar/internal/domain/service/deal"
	"dealradar/pkg/httpx/reply"
	"dealradar/pkg/httpx/req"
	"dealradar/pkg/lox"
	"dealradar/pkg/rest"
)

type dealService interface {
	Search(ctx context.Context, params deal.SearchParams) (deal.SearchResult, error)
	Analyze(ctx context.Context, params deal.AnalyzeParams) (deal.AnalyzeResult, error)
}

type DealServer struct {
	dealService dealService
}

func NewDealServer(dealService dealService) DealServer {
	return DealServer{
		dealService: dealService,
	}
}

func (s DealServer) postV1DealsSearch(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.DealsSearchRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	result, err := s.dealService.Search(ctx, deal.SearchParams{
		Query:       request.Query,
		Category:    request.Category,
		MinDiscount: request.MinDiscount,
		Limit:       request.Limit,
	})
	if err != nil {
		return fmt.Errorf("dealService.Search: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.DealsSearchResponse{
		Deals:        lox.Map(result.Deals, newRESTDeal),
		Count:        len(result.Deals),
		TotalFetched: result.TotalFetched,
	})

	return nil
}

func (s DealServer) postV1DealsAnalyze(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.DealsAnalyzeRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	result, err := s.dealService.Analyze(ctx, deal.AnalyzeParams{
		Question:    request.Question,
		Query:       request.Query,
		MinDiscount: request.MinDiscount,
	})
	if err != nil {
		return fmt.Errorf("dealService.Analyze: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.DealsAnalyzeResponse{
		Answer:        result.Answer,
		DealsAnalyzed: result.DealsAnalyzed,
	})

	return nil
}
