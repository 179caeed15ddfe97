package ai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chronicle-server/internal/config"
	"chronicle-server/internal/models"

	"github.com/ollama/ollama/api"
	"github.com/pkoukk/tiktoken-go"
	"github.com/prometheus/client_golang/prometheus"
	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// NarrativeClient is the narrative generation collaborator. Generate sends a
// single prompt and returns the raw response text; the response format is the
// caller's contract with the prompt, not this client's. Malformed content is
// the caller's problem; transport and provider failures come back wrapped in
// models.ErrGenerationFailed.
type NarrativeClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// --- OpenAI Client Implementation ---

type openAIClient struct {
	client *openaigo.Client
	model  string
	logger *zap.Logger
}

func (c *openAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		generationRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", fmt.Errorf("%w: пустой промт", models.ErrGenerationFailed)
	}

	startTime := time.Now()
	c.logger.Debug("Sending request to AI",
		zap.String("model", c.model),
		zap.Int("promptBytes", len(prompt)))

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openaigo.ChatCompletionRequest{
			Model: c.model,
			Messages: []openaigo.ChatCompletionMessage{
				{
					Role:    openaigo.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		},
	)

	duration := time.Since(startTime)

	if err != nil {
		c.logger.Error("AI API request failed", zap.Error(err), zap.Duration("duration", duration))
		generationRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", fmt.Errorf("%w: %v", models.ErrGenerationFailed, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		c.logger.Warn("AI API returned empty response", zap.Duration("duration", duration))
		generationRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error_empty_response"}).Inc()
		return "", fmt.Errorf("%w: получен пустой ответ", models.ErrGenerationFailed)
	}

	generationRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "success"}).Inc()
	generationRequestDuration.With(prometheus.Labels{"model": c.model}).Observe(duration.Seconds())

	generatedText := resp.Choices[0].Message.Content
	c.logger.Debug("AI API response received",
		zap.Duration("duration", duration),
		zap.Int("responseChars", len(generatedText)))

	if resp.Usage.TotalTokens > 0 {
		generationPromptTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(resp.Usage.PromptTokens))
		generationCompletionTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(resp.Usage.CompletionTokens))
	} else {
		// Некоторые OpenAI-совместимые эндпоинты не возвращают usage,
		// оцениваем токены локально.
		c.observeEstimatedTokens(prompt, generatedText)
	}

	return generatedText, nil
}

func (c *openAIClient) observeEstimatedTokens(prompt, completion string) {
	tke, err := tiktoken.EncodingForModel(c.model)
	if err != nil {
		// Неизвестная модель для tiktoken, метрики токенов пропускаем.
		return
	}
	generationPromptTokens.With(prometheus.Labels{"model": c.model}).
		Observe(float64(len(tke.Encode(prompt, nil, nil))))
	generationCompletionTokens.With(prometheus.Labels{"model": c.model}).
		Observe(float64(len(tke.Encode(completion, nil, nil))))
}

// --- Ollama Client Implementation ---

type ollamaClient struct {
	client  *api.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

func newOllamaClient(cfg *config.Config, logger *zap.Logger) (NarrativeClient, error) {
	httpClient := &http.Client{
		Timeout: cfg.AITimeout,
	}

	// api.NewClient требует URL без суффикса /v1
	ollamaBaseURL := strings.TrimSuffix(cfg.AIBaseURL, "/v1")
	ollamaBaseURL = strings.TrimSuffix(ollamaBaseURL, "/")

	parsedURL, err := url.Parse(ollamaBaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга Ollama Base URL '%s': %w", ollamaBaseURL, err)
	}

	client := api.NewClient(parsedURL, httpClient)

	logger.Info("Ollama client created",
		zap.String("baseURL", ollamaBaseURL),
		zap.String("model", cfg.AIModel),
		zap.Duration("timeout", cfg.AITimeout))

	return &ollamaClient{
		client:  client,
		model:   cfg.AIModel,
		timeout: cfg.AITimeout,
		logger:  logger.Named("OllamaClient"),
	}, nil
}

func (c *ollamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		generationRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", fmt.Errorf("%w: пустой промт", models.ErrGenerationFailed)
	}

	req := &api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{Role: "user", Content: prompt},
		},
		Stream: func(b bool) *bool { return &b }(false),
	}

	requestCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	startTime := time.Now()
	c.logger.Debug("Sending request to Ollama",
		zap.String("model", c.model),
		zap.Int("promptBytes", len(prompt)))

	var resp api.ChatResponse
	err := c.client.Chat(requestCtx, req, func(r api.ChatResponse) error {
		resp = r
		return nil
	})

	duration := time.Since(startTime)

	if err != nil {
		c.logger.Error("Ollama API request failed", zap.Error(err), zap.Duration("duration", duration))
		generationRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", fmt.Errorf("%w: %v", models.ErrGenerationFailed, err)
	}

	if resp.Message.Content == "" {
		c.logger.Warn("Ollama API returned empty response", zap.Duration("duration", duration))
		generationRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error_empty_response"}).Inc()
		return "", fmt.Errorf("%w: получен пустой ответ", models.ErrGenerationFailed)
	}

	generationRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "success"}).Inc()
	generationRequestDuration.With(prometheus.Labels{"model": c.model}).Observe(duration.Seconds())

	if resp.PromptEvalCount > 0 || resp.EvalCount > 0 {
		generationPromptTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(resp.PromptEvalCount))
		generationCompletionTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(resp.EvalCount))
	}

	return resp.Message.Content, nil
}

// --- Factory Function ---

// NewNarrativeClient создает клиент нарративной генерации в зависимости от
// конфигурации.
func NewNarrativeClient(cfg *config.Config, logger *zap.Logger) (NarrativeClient, error) {
	switch strings.ToLower(cfg.AIClientType) {
	case "openai":
		openaiConfig := openaigo.DefaultConfig(cfg.AIAPIKey)
		openaiConfig.BaseURL = cfg.AIBaseURL
		openaiConfig.HTTPClient = &http.Client{
			Timeout: cfg.AITimeout,
		}
		client := openaigo.NewClientWithConfig(openaiConfig)
		logger.Info("OpenAI client created",
			zap.String("baseURL", cfg.AIBaseURL),
			zap.String("model", cfg.AIModel),
			zap.Duration("timeout", cfg.AITimeout))
		return &openAIClient{
			client: client,
			model:  cfg.AIModel,
			logger: logger.Named("OpenAIClient"),
		}, nil
	case "ollama":
		return newOllamaClient(cfg, logger)
	default:
		return nil, fmt.Errorf("неизвестный тип AI клиента: '%s'", cfg.AIClientType)
	}
}
