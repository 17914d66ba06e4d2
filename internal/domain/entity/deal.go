package entity

import "time"

// Deal — нормализованный лот из провайдера поиска.
// Price/OriginalPrice/DiscountPercent равны nil, когда провайдер их не отдал.
type Deal struct {
	Title           string   `json:"title"`
	Source          string   `json:"source"`
	ProductLink     string   `json:"productLink"`
	ImageURL        string   `json:"imageUrl"`
	Price           *float64 `json:"price"`
	OriginalPrice   *float64 `json:"originalPrice"`
	DiscountPercent *int     `json:"discountPercent"`
	Currency        string   `json:"currency"`
}

// StoredDeal — сделка, сохранённая в БД. ID и CreatedAt назначает хранилище.
type StoredDeal struct {
	ID int64 `json:"id"`
	Deal
	SearchQuery string    `json:"searchQuery"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
