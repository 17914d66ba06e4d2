package config

import "time"

type SerpAPI struct {
	BaseURL string        `env:"SERPAPI_BASE_URL" envDefault:"https://serpapi.com"`
	APIKey  string        `env:"SERPAPI_API_KEY,required" json:"-"`
	Timeout time.Duration `env:"SERPAPI_TIMEOUT" envDefault:"30s"`
}
