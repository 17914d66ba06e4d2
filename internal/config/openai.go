package config

import "time"

type OpenAI struct {
	BaseURL string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	APIKey  string        `env:"OPENAI_API_KEY,required" json:"-"`
	Model   string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	Timeout time.Duration `env:"OPENAI_TIMEOUT" envDefault:"60s"`
}
