package deal

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"dealradar/internal/domain"
	"dealradar/internal/domain/entity"
	"dealradar/pkg/contextx"
	"dealradar/pkg/errcodes"
)

const (
	// DefaultLimit — сколько результатов запрашивать у провайдера,
	// если клиент не указал лимит.
	DefaultLimit = 30

	analyzeRowLimit  = 50
	analyzeMaxTokens = 1000
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type SearchProvider interface {
	FetchShoppingDeals(ctx context.Context, query string, limit int) ([]entity.Deal, error)
}

type DealRepository interface {
	CreateBatch(ctx context.Context, deals []entity.Deal, searchQuery, category string) error
	List(ctx context.Context, match string, minDiscount *int, limit int) ([]entity.StoredDeal, error)
}

type Completer interface {
	Complete(ctx context.Context, system, user string, maxTokens int) (string, error)
}

type Service struct {
	provider  SearchProvider
	dealRepo  DealRepository
	completer Completer
}

func NewService(
	provider SearchProvider,
	dealRepo DealRepository,
	completer Completer,
) *Service {
	return &Service{
		provider:  provider,
		dealRepo:  dealRepo,
		completer: completer,
	}
}

type SearchParams struct {
	Query       string
	Category    string
	MinDiscount *int
	Limit       int
}

type SearchResult struct {
	Deals        []entity.Deal
	TotalFetched int
}

// Search запрашивает лоты у провайдера, фильтрует их по порогу скидки и
// сохраняет отфильтрованный набор одной транзакцией. Ошибка хранилища
// роняет всю операцию: уже выбранные сделки клиенту не возвращаются.
func (s *Service) Search(ctx context.Context, params SearchParams) (SearchResult, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	fetched, err := s.provider.FetchShoppingDeals(ctx, params.Query, limit)
	if err != nil {
		return SearchResult{}, domain.WrapError(err, errcodes.UpstreamFetchFailed, "failed to fetch deals from provider")
	}

	filtered := FilterByMinDiscount(fetched, params.MinDiscount)

	if len(filtered) > 0 {
		if err := s.dealRepo.CreateBatch(ctx, filtered, params.Query, params.Category); err != nil {
			return SearchResult{}, fmt.Errorf("dealRepo.CreateBatch: %w", err)
		}
	}

	logger(ctx).Info("deal search finished",
		"query", params.Query,
		"fetched", len(fetched),
		"kept", len(filtered),
	)

	return SearchResult{
		Deals:        filtered,
		TotalFetched: len(fetched),
	}, nil
}

// FilterByMinDiscount оставляет сделки с известной скидкой не ниже порога,
// сохраняя порядок. Без порога список возвращается как есть; с порогом
// сделки без скидки отбрасываются всегда.
func FilterByMinDiscount(deals []entity.Deal, minDiscount *int) []entity.Deal {
	if minDiscount == nil {
		return deals
	}

	return lo.Filter(deals, func(deal entity.Deal, _ int) bool {
		return deal.DiscountPercent != nil && *deal.DiscountPercent >= *minDiscount
	})
}
