package plan

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	"github.com/rutalab/core/internal/config"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetanthropic "go.jetify.com/ai/provider/anthropic"
	jetopenai "go.jetify.com/ai/provider/openai"
)

const (
	planTemperature     = 0.6
	planMaxOutputTokens = 2000
	providerTimeout     = 30 * time.Second
)

// ProviderError classifies a completion-provider failure.
type ProviderError struct {
	// Cause is one of "no-credentials", "timeout", "transport", "upstream",
	// "bad-json".
	Cause          string
	UpstreamStatus int
	Err            error
}

func (e *ProviderError) Error() string {
	if e.UpstreamStatus > 0 {
		return fmt.Sprintf("provider error (%s, status %d): %v", e.Cause, e.UpstreamStatus, e.Err)
	}
	return fmt.Sprintf("provider error (%s): %v", e.Cause, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Client wraps the external completion provider.
type Client struct {
	cfg        config.AIConfig
	httpClient *http.Client
}

// NewClient builds a provider client from the configured provider list.
func NewClient(cfg config.AIConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: providerTimeout},
	}
}

// Generate asks the completion provider for a JSON-shaped study plan.
// It fails fast when no provider credentials are configured, before any
// network call.
func (c *Client) Generate(ctx context.Context, req PlanRequest) (RawPlan, error) {
	provider := selectProvider(c.cfg)
	if provider == nil || strings.TrimSpace(provider.APIKey) == "" {
		return nil, &ProviderError{Cause: "no-credentials", Err: errors.New("no AI provider credentials configured")}
	}

	systemPrompt, prompt := buildPlanPrompt(req)

	var raw string
	var err error
	if isOpenAICompatibleProviderType(provider.Type) {
		raw, err = c.callChatCompletions(ctx, provider, systemPrompt, prompt)
	} else {
		raw, err = c.callLanguageModel(ctx, provider, systemPrompt, prompt)
	}
	if err != nil {
		return nil, err
	}

	out := RawPlan{}
	if err := unmarshalPlanJSON(raw, &out); err != nil {
		return nil, &ProviderError{Cause: "bad-json", Err: err}
	}

	backfillPlan(out, req)
	return out, nil
}

// backfillPlan fills the four request-derived fields the provider may omit.
// Values the provider did supply are never overwritten.
func backfillPlan(p RawPlan, req PlanRequest) {
	if v, ok := p["goal"]; !ok || v == nil {
		p["goal"] = req.Objective
	}
	if v, ok := p["level"]; !ok || v == nil {
		p["level"] = req.Level
	}
	if v, ok := p["hoursPerWeek"]; !ok || v == nil {
		p["hoursPerWeek"] = req.HoursPerWeek
	}
	if v, ok := p["durationWeeks"]; !ok || v == nil {
		p["durationWeeks"] = float64(req.Weeks)
	}
}

func (c *Client) callChatCompletions(ctx context.Context, provider *config.AIProvider, systemPrompt, prompt string) (string, error) {
	endpoint := normalizeCompatibleEndpoint(provider.Endpoint)
	model := strings.TrimSpace(provider.DefaultModel)
	if model == "" {
		model = "gpt-4o-mini"
	}

	messages := []map[string]string{
		{"role": "system", "content": systemPrompt},
		{"role": "user", "content": prompt},
	}
	body, _ := json.Marshal(map[string]interface{}{
		"model":           model,
		"messages":        messages,
		"temperature":     planTemperature,
		"max_tokens":      planMaxOutputTokens,
		"response_format": map[string]string{"type": "json_object"},
	})

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &ProviderError{Cause: "transport", Err: err}
	}
	httpReq.Header.Set("Authorization", "Bearer "+strings.TrimSpace(provider.APIKey))
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &ProviderError{Cause: classifyTransport(err), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Cause: classifyTransport(err), Err: err}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return "", &ProviderError{
			Cause:          "upstream",
			UpstreamStatus: resp.StatusCode,
			Err:            fmt.Errorf("chat completions failed: %s", strings.TrimSpace(string(respBody))),
		}
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &ProviderError{Cause: "bad-json", Err: err}
	}
	if result.Error != nil && strings.TrimSpace(result.Error.Message) != "" {
		return "", &ProviderError{Cause: "upstream", Err: errors.New(result.Error.Message)}
	}
	if len(result.Choices) == 0 {
		return "", &ProviderError{Cause: "upstream", Err: errors.New("empty response from provider")}
	}
	return result.Choices[0].Message.Content, nil
}

func (c *Client) callLanguageModel(ctx context.Context, provider *config.AIProvider, systemPrompt, prompt string) (string, error) {
	model, err := buildLanguageModel(provider)
	if err != nil {
		return "", &ProviderError{Cause: "transport", Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, providerTimeout)
	defer cancel()

	resp, err := jetai.GenerateText(
		ctx,
		buildPromptMessages(systemPrompt, prompt),
		jetai.WithModel(model),
		jetai.WithMaxOutputTokens(planMaxOutputTokens),
	)
	if err != nil {
		return "", &ProviderError{Cause: classifyTransport(err), Err: err}
	}
	return extractResponseText(resp)
}

func buildPromptMessages(systemPrompt, prompt string) []jetapi.Message {
	return []jetapi.Message{
		&jetapi.SystemMessage{Content: systemPrompt},
		&jetapi.UserMessage{Content: jetapi.ContentFromText(prompt)},
	}
}

func extractResponseText(resp *jetapi.Response) (string, error) {
	if resp == nil {
		return "", &ProviderError{Cause: "upstream", Err: errors.New("empty response from provider")}
	}

	var full strings.Builder
	for _, block := range resp.Content {
		textBlock, ok := block.(*jetapi.TextBlock)
		if !ok || textBlock.Text == "" {
			continue
		}
		full.WriteString(textBlock.Text)
	}

	text := full.String()
	if strings.TrimSpace(text) == "" {
		return "", &ProviderError{Cause: "upstream", Err: errors.New("empty response from provider")}
	}
	return text, nil
}

func buildLanguageModel(provider *config.AIProvider) (jetapi.LanguageModel, error) {
	apiKey := strings.TrimSpace(provider.APIKey)
	modelID := strings.TrimSpace(provider.DefaultModel)
	endpoint := strings.TrimSpace(provider.Endpoint)

	if isAnthropicProviderType(provider.Type) {
		if modelID == "" {
			modelID = "claude-haiku-4-5-20251001"
		}

		opts := []anthropicoption.RequestOption{
			anthropicoption.WithAPIKey(apiKey),
			anthropicoption.WithMaxRetries(0),
		}
		if endpoint != "" {
			opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(endpoint, "/")))
		}

		client := anthropicclient.NewClient(opts...)
		return jetanthropic.NewLanguageModel(modelID, jetanthropic.WithClient(client)), nil
	}

	if modelID == "" {
		modelID = "gpt-4o-mini"
	}

	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(apiKey),
		openaioption.WithMaxRetries(0),
	}
	if normalized := normalizeOpenAIBaseURL(endpoint); normalized != "" {
		opts = append(opts, openaioption.WithBaseURL(normalized))
	}

	client := openaiclient.NewClient(opts...)
	return jetopenai.NewLanguageModel(modelID, jetopenai.WithClient(client)), nil
}

// classifyTransport separates timeouts from other transport failures.
func classifyTransport(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	return "transport"
}

// unmarshalPlanJSON parses provider output strictly as JSON, tolerating the
// code fences some models wrap their output in.
func unmarshalPlanJSON(raw string, out interface{}) error {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), out); err == nil {
			return nil
		}
	}

	return fmt.Errorf("invalid JSON response from provider")
}

func selectProvider(cfg config.AIConfig) *config.AIProvider {
	for _, provider := range cfg.Providers {
		if !provider.Enabled {
			continue
		}
		selected := provider
		return &selected
	}
	return nil
}

func isOpenAICompatibleProviderType(raw string) bool {
	t := normalizeProviderType(raw)
	return t == "openai-compatible" || t == "openaicompatible"
}

func isAnthropicProviderType(raw string) bool {
	return normalizeProviderType(raw) == "anthropic"
}

func normalizeProviderType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, "_", "-")
	t = strings.ReplaceAll(t, " ", "")
	return t
}

func normalizeOpenAIBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimRight(base, "/")
	}

	path := strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(path, "/v1") {
		if path == "" {
			path = "/v1"
		} else {
			path += "/v1"
		}
	}
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/")
}

func normalizeCompatibleEndpoint(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return "https://api.openai.com"
	}

	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		cleaned := strings.TrimRight(base, "/")
		return strings.TrimSuffix(cleaned, "/v1")
	}

	path := strings.TrimRight(parsed.Path, "/")
	path = strings.TrimSuffix(path, "/v1")
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/")
}
