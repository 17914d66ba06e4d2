// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

// Deal — нормализованный лот из провайдера поиска.
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

type DealsSearchRequest struct {
	Query       string `json:"query" validate:"required,min=1"`
	Category    string `json:"category"`
	MinDiscount *int   `json:"minDiscount" validate:"omitempty,min=0,max=100"`
	Limit       int    `json:"limit" validate:"omitempty,min=1,max=100"`
}

type DealsSearchResponse struct {
	Deals        []Deal `json:"deals"`
	Count        int    `json:"count"`
	TotalFetched int    `json:"totalFetched"`
}

type DealsAnalyzeRequest struct {
	Question    string `json:"question" validate:"required,min=5"`
	Query       string `json:"query"`
	MinDiscount *int   `json:"minDiscount" validate:"omitempty,min=0,max=100"`
}

type DealsAnalyzeResponse struct {
	Answer        string `json:"answer"`
	DealsAnalyzed int    `json:"dealsAnalyzed"`
}

type PlanRequest struct {
	Sites       []string `json:"sites" validate:"required,min=1,dive,required"`
	MinDiscount *int     `json:"minDiscount" validate:"required,min=0,max=100"`
	MaxDiscount *int     `json:"maxDiscount" validate:"required,min=0,max=100"`
	Keywords    string   `json:"keywords"`
}

type PlanDebugInfo struct {
	ReceivedParams PlanRequest `json:"receivedParams"`
	SitesCount     int         `json:"sitesCount"`
	DiscountRange  string      `json:"discountRange"`
	HasKeywords    bool        `json:"hasKeywords"`
	Timestamp      string      `json:"timestamp"`
}

type PlanResponse struct {
	Plan      string        `json:"plan"`
	DebugInfo PlanDebugInfo `json:"debugInfo"`
}

// Error Модель ошибок
type Error struct {
	// Error Код ошибки
	Error string `json:"error"`

	// Details Сообщение об ошибке или список нарушений по полям
	Details any `json:"details,omitempty"`

	// SupportID Идентификатор для поиска запроса в логах
	SupportID string `json:"supportId"`
}
