package server

import (
	"dealradar/internal/domain/entity"
	"dealradar/pkg/rest"
)

func newRESTDeal(deal entity.Deal) rest.Deal {
	return rest.Deal{
		Title:           deal.Title,
		Source:          deal.Source,
		ProductLink:     deal.ProductLink,
		ImageURL:        deal.ImageURL,
		Price:           deal.Price,
		OriginalPrice:   deal.OriginalPrice,
		DiscountPercent: deal.DiscountPercent,
		Currency:        deal.Currency,
	}
}
