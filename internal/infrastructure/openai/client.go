package openai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"dealradar/internal/config"
	"dealradar/internal/domain"
	"dealradar/pkg/errcodes"
	"dealradar/pkg/httpx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// Температура фиксирована для всех запросов, лимит токенов задаёт вызывающая сторона.
const completionTemperature = 0.7

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// staticKeyAuthenticator отдаёт фиксированный API-ключ; повторная
// аутентификация для него не имеет смысла.
type staticKeyAuthenticator struct {
	token string
}

func (a staticKeyAuthenticator) Authenticate(context.Context) error { return nil }

func (a staticKeyAuthenticator) BearerToken() string { return a.token }

// Client — клиент chat-completions провайдера языковой модели.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewClient(cfg config.OpenAI) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, domain.NewError(errcodes.MissingConfiguration, "OPENAI_API_KEY is not set")
	}

	transport := httpx.NewAuthBearerRoundTripper(
		http.DefaultTransport,
		staticKeyAuthenticator{token: cfg.APIKey},
	)

	return &Client{
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
	}, nil
}

// Complete отправляет системную инструкцию и сообщение пользователя,
// возвращает сгенерированный текст. Пустой ответ без ошибки означает,
// что модель не вернула ни одного choice.
func (c *Client) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	request := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: completionTemperature,
		MaxTokens:   maxTokens,
	}

	b, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck // тело нужно только для сообщения об ошибке

		return "", fmt.Errorf("completion request failed with status %d: %s", resp.StatusCode, body)
	}

	var response chatCompletionResponse

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("json.Decode: %w", err)
	}

	if response.Error != nil {
		return "", fmt.Errorf("provider error: %s", response.Error.Message)
	}

	if len(response.Choices) == 0 {
		return "", nil
	}

	return response.Choices[0].Message.Content, nil
}
