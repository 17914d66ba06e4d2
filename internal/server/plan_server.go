package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"dealradar/internal/domain/service/plan"
	"dealradar/pkg/httpx/reply"
	"dealradar/pkg/httpx/req"
	"dealradar/pkg/rest"
)

type planAdvisor interface {
	BuildPlan(ctx context.Context, params plan.Params) (plan.Result, error)
}

type PlanServer struct {
	planAdvisor planAdvisor
}

func NewPlanServer(planAdvisor planAdvisor) PlanServer {
	return PlanServer{
		planAdvisor: planAdvisor,
	}
}

func (s PlanServer) postV1Plan(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.PlanRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	result, err := s.planAdvisor.BuildPlan(ctx, plan.Params{
		Sites:       request.Sites,
		MinDiscount: *request.MinDiscount,
		MaxDiscount: *request.MaxDiscount,
		Keywords:    request.Keywords,
	})
	if err != nil {
		return fmt.Errorf("planAdvisor.BuildPlan: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.PlanResponse{
		Plan: result.Plan,
		DebugInfo: rest.PlanDebugInfo{
			ReceivedParams: request,
			SitesCount:     result.SitesCount,
			DiscountRange:  result.DiscountRange,
			HasKeywords:    result.HasKeywords,
			Timestamp:      result.Timestamp.Format(time.RFC3339),
		},
	})

	return nil
}
