package deal

import (
	"fmt"
	"strings"

	"dealradar/internal/domain/entity"
)

// dealsContext собирает компактный текстовый контекст для LLM:
// одна сделка — одна строка, ранжирование совпадает с порядком выборки.
func dealsContext(deals []entity.StoredDeal) string {
	lines := make([]string, 0, len(deals))

	for i, deal := range deals {
		lines = append(lines, contextLine(i+1, deal))
	}

	return strings.Join(lines, "\n")
}

func contextLine(rank int, deal entity.StoredDeal) string {
	discountText := "No discount"
	if deal.DiscountPercent != nil && *deal.DiscountPercent != 0 {
		discountText = fmt.Sprintf("%d%% off", *deal.DiscountPercent)
	}

	originalPriceText := ""
	if deal.OriginalPrice != nil {
		originalPriceText = fmt.Sprintf("(was %s %s) ", deal.Currency, formatAmount(*deal.OriginalPrice))
	}

	price := 0.0
	if deal.Price != nil {
		price = *deal.Price
	}

	return fmt.Sprintf("%d. %s - %s - %s %s %s%s - %s",
		rank,
		deal.Title,
		deal.Source,
		deal.Currency,
		formatAmount(price),
		originalPriceText,
		discountText,
		deal.ProductLink,
	)
}

// formatAmount печатает сумму с двумя знаками — как она хранится в numeric(10,2).
func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
