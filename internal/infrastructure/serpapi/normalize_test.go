package serpapi_test

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"dealradar/internal/infrastructure/serpapi"
)

func TestComputeDiscountPercent(t *testing.T) {
	tests := []struct {
		name          string
		price         *float64
		originalPrice *float64
		expected      *int
	}{
		{
			name:          "обычная скидка",
			price:         lo.ToPtr(80.0),
			originalPrice: lo.ToPtr(100.0),
			expected:      lo.ToPtr(20),
		},
		{
			name:          "скидка с округлением вверх",
			price:         lo.ToPtr(150.0),
			originalPrice: lo.ToPtr(200.0),
			expected:      lo.ToPtr(25),
		},
		{
			name:          "дробный процент округляется до ближайшего",
			price:         lo.ToPtr(66.5),
			originalPrice: lo.ToPtr(100.0),
			expected:      lo.ToPtr(34),
		},
		{
			name:          "нет старой цены",
			price:         lo.ToPtr(50.0),
			originalPrice: nil,
			expected:      nil,
		},
		{
			name:          "нет текущей цены",
			price:         nil,
			originalPrice: lo.ToPtr(100.0),
			expected:      nil,
		},
		{
			name:          "старая цена равна текущей",
			price:         lo.ToPtr(100.0),
			originalPrice: lo.ToPtr(100.0),
			expected:      nil,
		},
		{
			name:          "старая цена меньше текущей",
			price:         lo.ToPtr(120.0),
			originalPrice: lo.ToPtr(100.0),
			expected:      nil,
		},
		{
			name:          "нулевая старая цена",
			price:         lo.ToPtr(0.0),
			originalPrice: lo.ToPtr(0.0),
			expected:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			actual := serpapi.ComputeDiscountPercent(tt.price, tt.originalPrice)

			rq.Equal(tt.expected, actual)

			if actual != nil {
				rq.GreaterOrEqual(*actual, 0)
				rq.LessOrEqual(*actual, 100)
			}
		})
	}
}

func TestNormalizeDefaults(t *testing.T) {
	rq := require.New(t)

	deal := serpapi.Normalize(serpapi.ShoppingResult{})

	rq.Equal("Untitled Product", deal.Title)
	rq.Equal("Unknown Source", deal.Source)
	rq.Equal("USD", deal.Currency)
	rq.Empty(deal.ProductLink)
	rq.Empty(deal.ImageURL)
	rq.Nil(deal.Price)
	rq.Nil(deal.OriginalPrice)
	rq.Nil(deal.DiscountPercent)
}

func TestNormalizeLinkFallback(t *testing.T) {
	rq := require.New(t)

	deal := serpapi.Normalize(serpapi.ShoppingResult{
		Title: "Headphones",
		Link:  "https://example.com/headphones",
	})

	rq.Equal("https://example.com/headphones", deal.ProductLink)

	deal = serpapi.Normalize(serpapi.ShoppingResult{
		Title:       "Headphones",
		Link:        "https://example.com/headphones",
		ProductLink: "https://shopping.example.com/p/1",
	})

	rq.Equal("https://shopping.example.com/p/1", deal.ProductLink)
}

func TestNormalizeFullResult(t *testing.T) {
	rq := require.New(t)

	deal := serpapi.Normalize(serpapi.ShoppingResult{
		Position:          1,
		Title:             "Laptop",
		ProductLink:       "https://shopping.example.com/p/42",
		Source:            "Example Store",
		Price:             "$799.00",
		ExtractedPrice:    lo.ToPtr(799.0),
		OldPrice:          "$999.00",
		ExtractedOldPrice: lo.ToPtr(999.0),
		Thumbnail:         "https://img.example.com/42.jpg",
	})

	rq.Equal("Laptop", deal.Title)
	rq.Equal("Example Store", deal.Source)
	rq.Equal("https://shopping.example.com/p/42", deal.ProductLink)
	rq.Equal("https://img.example.com/42.jpg", deal.ImageURL)
	rq.Equal(lo.ToPtr(799.0), deal.Price)
	rq.Equal(lo.ToPtr(999.0), deal.OriginalPrice)
	rq.Equal(lo.ToPtr(20), deal.DiscountPercent)
	rq.Equal("USD", deal.Currency)
}
