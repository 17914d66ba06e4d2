package serpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"dealradar/internal/config"
	"dealradar/internal/domain"
	"dealradar/internal/domain/entity"
	"dealradar/pkg/errcodes"
	"dealradar/pkg/lox"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	engineGoogleShopping = "google_shopping"
	searchLocale         = "en"
	searchRegion         = "us"
)

type searchResponse struct {
	ShoppingResults []ShoppingResult `json:"shopping_results"`
	Error           string           `json:"error"`
}

// Client — клиент провайдера поиска покупок (SerpAPI).
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg config.SerpAPI, httpClient *http.Client) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, domain.NewError(errcodes.MissingConfiguration, "SERPAPI_API_KEY is not set")
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}, nil
}

// FetchShoppingDeals запрашивает у провайдера до limit результатов по запросу
// query и возвращает их нормализованными, в порядке провайдера.
func (c *Client) FetchShoppingDeals(ctx context.Context, query string, limit int) ([]entity.Deal, error) {
	params := url.Values{}
	params.Set("engine", engineGoogleShopping)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(limit))
	params.Set("hl", searchLocale)
	params.Set("gl", searchRegion)
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck // тело нужно только для сообщения об ошибке

		return nil, fmt.Errorf("search request failed with status %d: %s", resp.StatusCode, body)
	}

	var response searchResponse

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("json.Decode: %w", err)
	}

	if response.Error != "" {
		return nil, fmt.Errorf("provider error: %s", response.Error)
	}

	return lox.Map(response.ShoppingResults, Normalize), nil
}
