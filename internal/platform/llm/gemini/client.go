// Package gemini はGoogle Gemini APIを使ったテキスト生成クライアントを提供します。
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"google.golang.org/genai"

	"advisor_backend/internal/platform/metrics"
	"advisor_backend/internal/shared/ratelimiter"
)

// ErrEmptyResponse はモデルが空のテキストを返した場合のエラーです。
var ErrEmptyResponse = errors.New("llm returned an empty response")

// 用途ごとの温度。分析は低め、レポート文章は高め。
var (
	primaryTemperatures = []float32{0.1, 0.2, 0.15}
	researchTemperature = float32(0.2)
	creativeTemperature = float32(0.5)
)

// contentGenerator は genai.Models のうち利用するメソッドだけを抜き出したものです。
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type purpose int

const (
	purposeAnalysis purpose = iota
	purposeResearch
	purposeCreative
)

func (p purpose) String() string {
	switch p {
	case purposeResearch:
		return "research"
	case purposeCreative:
		return "creative"
	default:
		return "analysis"
	}
}

// Client はモデルプールを管理し、失敗時にフォールバックモデルで再試行します。
type Client struct {
	models  contentGenerator
	cfg     Config
	limiter ratelimiter.RateLimiterInterface
	pick    func(n int) int
}

// NewClient はADCもしくはAPIキーを使ってClientを生成します。
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	limiter := ratelimiter.NewRateLimiter("gemini", cfg.RequestsPerMinute, time.Minute)
	return newClient(client.Models, cfg, limiter), nil
}

func newClient(models contentGenerator, cfg Config, limiter ratelimiter.RateLimiterInterface) *Client {
	if len(cfg.PrimaryModels) == 0 {
		cfg.PrimaryModels = []string{DefaultModel}
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	return &Client{models: models, cfg: cfg, limiter: limiter, pick: rand.IntN}
}

// Analyze は構造化された抽出（企業プロファイルなど）向けに、主プールのモデルで生成します。
func (c *Client) Analyze(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, purposeAnalysis, prompt)
}

// Research は調査結果の要約向けに生成します。
func (c *Client) Research(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, purposeResearch, prompt)
}

// Compose はユースケースやレポート本文など長文の生成に使います。
func (c *Client) Compose(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, purposeCreative, prompt)
}

func (c *Client) generate(ctx context.Context, p purpose, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt is empty")
	}

	var (
		text    string
		attempt int
	)
	first := c.pick(len(c.cfg.PrimaryModels))

	err := retry.Do(
		func() error {
			model, temp := c.modelFor(p, first, attempt)
			attempt++

			if c.limiter != nil {
				if err := c.limiter.Wait(ctx); err != nil {
					return retry.Unrecoverable(err)
				}
			}
			out, err := c.call(ctx, model, temp, prompt)
			metrics.LLMCalls.WithLabelValues(model, metrics.Outcome(err)).Inc()
			if err != nil {
				return fmt.Errorf("%s: %w", model, err)
			}
			text = out
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.cfg.MaxAttempts)),
		retry.Delay(c.cfg.RetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("llm call failed, switching model", "purpose", p.String(), "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	return text, nil
}

// modelFor は試行回数に応じたモデルと温度を返します。
// 初回は主プールから選んだモデル、以降はフォールバックを順に、尽きたら主プールを巡回します。
func (c *Client) modelFor(p purpose, first, attempt int) (string, float32) {
	primary := c.cfg.PrimaryModels
	var model string
	idx := first
	switch {
	case attempt == 0:
		model = primary[first]
	case attempt-1 < len(c.cfg.FallbackModels):
		model = c.cfg.FallbackModels[attempt-1]
	default:
		idx = (first + attempt) % len(primary)
		model = primary[idx]
	}

	switch p {
	case purposeResearch:
		return model, researchTemperature
	case purposeCreative:
		return model, creativeTemperature
	default:
		return model, primaryTemperatures[idx%len(primaryTemperatures)]
	}
}

func (c *Client) call(ctx context.Context, model string, temperature float32, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(temperature),
		MaxOutputTokens: c.cfg.MaxOutputTokens,
	}
	resp, err := c.models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
