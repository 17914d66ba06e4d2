package deal

import (
	"context"
	"fmt"

	"dealradar/internal/domain"
	"dealradar/pkg/errcodes"
)

const analystInstruction = "You are a shopping deals analyst. Your job is to analyze deals data and provide concise, " +
	"helpful answers to user questions. Use bullet points for clarity and be specific about products, prices, and discounts."

const (
	noDealsAnswer    = "I couldn't find any deals matching your filters. Try running a search first or adjust your filters."
	noAnswerFallback = "Unable to generate an answer."
)

type AnalyzeParams struct {
	Question    string
	Query       string
	MinDiscount *int
}

type AnalyzeResult struct {
	Answer        string
	DealsAnalyzed int
}

// Analyze отвечает на вопрос о сохранённых сделках: выбирает до 50 самых
// выгодных строк по фильтрам и передаёт их LLM вместе с вопросом.
func (s *Service) Analyze(ctx context.Context, params AnalyzeParams) (AnalyzeResult, error) {
	relevant, err := s.dealRepo.List(ctx, params.Query, params.MinDiscount, analyzeRowLimit)
	if err != nil {
		return AnalyzeResult{}, fmt.Errorf("dealRepo.List: %w", err)
	}

	// Без подходящих сделок LLM не вызываем: это успешный ответ, не ошибка.
	if len(relevant) == 0 {
		return AnalyzeResult{Answer: noDealsAnswer}, nil
	}

	userMessage := fmt.Sprintf(
		"Question: %s\n\nHere are the relevant deals:\n\n%s\n\nPlease provide a concise, bullet-pointed answer based on these deals.",
		params.Question,
		dealsContext(relevant),
	)

	answer, err := s.completer.Complete(ctx, analystInstruction, userMessage, analyzeMaxTokens)
	if err != nil {
		return AnalyzeResult{}, domain.WrapError(err, errcodes.AnalysisFailed, "failed to analyze deals")
	}

	if answer == "" {
		answer = noAnswerFallback
	}

	logger(ctx).Info("deal analysis finished", "deals_analyzed", len(relevant))

	return AnalyzeResult{
		Answer:        answer,
		DealsAnalyzed: len(relevant),
	}, nil
}
