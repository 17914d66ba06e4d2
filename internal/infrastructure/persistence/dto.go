package persistence

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"dealradar/internal/domain/entity"
)

// dealSchema — внутренняя структура для маппинга строки БД.
// Денежные колонки читаются как numeric, чтобы значения не плыли
// при повторных чтениях.
type dealSchema struct {
	ID              int64               `db:"id"`
	Title           string              `db:"title"`
	Source          string              `db:"source"`
	ProductLink     string              `db:"product_link"`
	ImageURL        string              `db:"image_url"`
	Price           decimal.Decimal     `db:"price"`
	OriginalPrice   decimal.NullDecimal `db:"original_price"`
	DiscountPercent decimal.NullDecimal `db:"discount_percent"`
	Currency        string              `db:"currency"`
	SearchQuery     string              `db:"search_query"`
	Category        sql.NullString      `db:"category"`
	CreatedAt       time.Time           `db:"created_at"`
}

func (s *dealSchema) toDomain() entity.StoredDeal {
	price := s.Price.InexactFloat64()

	stored := entity.StoredDeal{
		ID: s.ID,
		Deal: entity.Deal{
			Title:       s.Title,
			Source:      s.Source,
			ProductLink: s.ProductLink,
			ImageURL:    s.ImageURL,
			Price:       &price,
			Currency:    s.Currency,
		},
		SearchQuery: s.SearchQuery,
		CreatedAt:   s.CreatedAt,
	}

	if s.OriginalPrice.Valid {
		v := s.OriginalPrice.Decimal.InexactFloat64()
		stored.OriginalPrice = &v
	}

	if s.DiscountPercent.Valid {
		v := int(s.DiscountPercent.Decimal.IntPart())
		stored.DiscountPercent = &v
	}

	if s.Category.Valid {
		stored.Category = s.Category.String
	}

	return stored
}

// insertParams готовит параметры вставки одной сделки.
// Отсутствующая цена пишется как 0.00 (колонка NOT NULL),
// остальные опциональные поля — как NULL.
func insertParams(deal entity.Deal, searchQuery, category string) map[string]any {
	price := decimal.Zero

	if deal.Price != nil {
		price = decimal.NewFromFloat(*deal.Price).Round(2) //nolint:mnd // numeric(10,2)
	}

	var originalPrice, discountPercent decimal.NullDecimal

	if deal.OriginalPrice != nil {
		originalPrice = decimal.NewNullDecimal(decimal.NewFromFloat(*deal.OriginalPrice).Round(2)) //nolint:mnd // numeric(10,2)
	}

	if deal.DiscountPercent != nil {
		discountPercent = decimal.NewNullDecimal(decimal.NewFromInt(int64(*deal.DiscountPercent)))
	}

	var dbCategory sql.NullString

	if category != "" {
		dbCategory = sql.NullString{String: category, Valid: true}
	}

	return map[string]any{
		"title":            deal.Title,
		"source":           deal.Source,
		"product_link":     deal.ProductLink,
		"image_url":        deal.ImageURL,
		"price":            price,
		"original_price":   originalPrice,
		"discount_percent": discountPercent,
		"currency":         deal.Currency,
		"search_query":     searchQuery,
		"category":         dbCategory,
	}
}
