package serpapi

import (
	"math"

	"dealradar/internal/domain/entity"
)

const (
	defaultTitle    = "Untitled Product"
	defaultSource   = "Unknown Source"
	defaultCurrency = "USD"
)

// ShoppingResult — сырой результат движка google_shopping. Все поля опциональны.
type ShoppingResult struct {
	Position          int      `json:"position,omitempty"`
	Title             string   `json:"title,omitempty"`
	Link              string   `json:"link,omitempty"`
	ProductLink       string   `json:"product_link,omitempty"`
	ProductID         string   `json:"product_id,omitempty"`
	Source            string   `json:"source,omitempty"`
	Price             string   `json:"price,omitempty"`
	ExtractedPrice    *float64 `json:"extracted_price,omitempty"`
	OldPrice          string   `json:"old_price,omitempty"`
	ExtractedOldPrice *float64 `json:"extracted_old_price,omitempty"`
	Thumbnail         string   `json:"thumbnail,omitempty"`
	Delivery          string   `json:"delivery,omitempty"`
}

// Normalize приводит сырой результат к канонической сделке.
// Чистая функция: отсутствующие поля заменяются дефолтами, ошибок не бывает.
func Normalize(result ShoppingResult) entity.Deal {
	deal := entity.Deal{
		Title:           result.Title,
		Source:          result.Source,
		ProductLink:     result.ProductLink,
		ImageURL:        result.Thumbnail,
		Price:           result.ExtractedPrice,
		OriginalPrice:   result.ExtractedOldPrice,
		DiscountPercent: ComputeDiscountPercent(result.ExtractedPrice, result.ExtractedOldPrice),
		Currency:        defaultCurrency,
	}

	if deal.Title == "" {
		deal.Title = defaultTitle
	}

	if deal.Source == "" {
		deal.Source = defaultSource
	}

	if deal.ProductLink == "" {
		deal.ProductLink = result.Link
	}

	return deal
}

// ComputeDiscountPercent возвращает nil, когда скидка не выводима:
// nil — это "неизвестно", ноль означал бы "скидки нет".
func ComputeDiscountPercent(price, originalPrice *float64) *int {
	if price == nil || originalPrice == nil {
		return nil
	}

	if *originalPrice <= *price || *originalPrice == 0 {
		return nil
	}

	discount := int(math.Round((*originalPrice - *price) / *originalPrice * 100))

	return &discount
}
