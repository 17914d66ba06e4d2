package plan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"git.appkode.ru/pub/go/failure"

	"dealradar/internal/domain"
	"dealradar/pkg/errcodes"
)

const advisorInstruction = "You are a helpful shopping assistant that helps users find the best deals online. " +
	"Respond in a clear, structured manner."

const (
	planMaxTokens  = 500
	noPlanFallback = "No plan generated"
)

type Completer interface {
	Complete(ctx context.Context, system, user string, maxTokens int) (string, error)
}

// Advisor строит текстовый план поиска по параметрам пользователя.
// Ничего не сохраняет и не фильтрует — чисто информационный компонент.
type Advisor struct {
	completer Completer
	now       func() time.Time
}

func NewAdvisor(completer Completer) *Advisor {
	return &Advisor{
		completer: completer,
		now:       time.Now,
	}
}

func (a *Advisor) WithNow(now func() time.Time) *Advisor {
	a.now = now
	return a
}

type Params struct {
	Sites       []string
	MinDiscount int
	MaxDiscount int
	Keywords    string
}

type Result struct {
	Plan          string
	SitesCount    int
	DiscountRange string
	HasKeywords   bool
	Timestamp     time.Time
}

func (a *Advisor) BuildPlan(ctx context.Context, params Params) (Result, error) {
	if params.MaxDiscount < params.MinDiscount {
		return Result{}, failure.NewInvalidArgumentError(
			"invalid discount range",
			failure.WithCode(errcodes.ValidationError),
			failure.WithDescription("Discount must be between 0-100% and min must be <= max"),
		)
	}

	generated, err := a.completer.Complete(ctx, advisorInstruction, buildPrompt(params), planMaxTokens)
	if err != nil {
		return Result{}, domain.WrapError(err, errcodes.PlanGenerationFailed, "failed to generate search plan")
	}

	if generated == "" {
		generated = noPlanFallback
	}

	return Result{
		Plan:          generated,
		SitesCount:    len(params.Sites),
		DiscountRange: fmt.Sprintf("%d%% - %d%%", params.MinDiscount, params.MaxDiscount),
		HasKeywords:   params.Keywords != "",
		Timestamp:     a.now().UTC(),
	}, nil
}

func buildPrompt(params Params) string {
	keywordsLine := "- No specific keywords"
	if params.Keywords != "" {
		keywordsLine = "- Keywords/Product type: " + params.Keywords
	}

	return fmt.Sprintf(`You are a shopping deal finder assistant. Based on the following search parameters, create a detailed plan for finding deals.

Search Parameters:
- Sites to check: %s
- Minimum discount: %d%%
- Maximum discount: %d%%
%s

Please provide a concise, structured plan that includes:
1. Which sites will be checked
2. What discount filters will be applied
3. What product keywords (if any) will be used to filter results
4. The expected approach for finding these deals

Keep the response clear, friendly, and under 200 words.`,
		strings.Join(params.Sites, ", "),
		params.MinDiscount,
		params.MaxDiscount,
		keywordsLine,
	)
}
