package plan

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rutalab/core/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var providerReq = PlanRequest{
	Objective:    "Power BI",
	Level:        "Junior",
	HoursPerWeek: 6,
	Weeks:        8,
}

func compatibleConfig(endpoint string) config.AIConfig {
	return config.AIConfig{
		Providers: []config.AIProvider{
			{
				ID:       "test",
				Type:     "openai-compatible",
				APIKey:   "test-key",
				Endpoint: endpoint,
				Enabled:  true,
			},
		},
	}
}

func chatCompletionBody(t *testing.T, content string) string {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	require.NoError(t, err)
	return string(body)
}

func TestGeneratePlanFromProvider(t *testing.T) {
	planJSON := `{"title":"Plan Power BI","goal":"dominar Power BI","blocks":[{"title":"Semana 1","bullets":["x"]}]}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Temperature    float64           `json:"temperature"`
			ResponseFormat map[string]string `json:"response_format"`
			Messages       []map[string]string
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 0.6, req.Temperature)
		assert.Equal(t, "json_object", req.ResponseFormat["type"])
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0]["role"])
		assert.Contains(t, req.Messages[1]["content"], "Power BI")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatCompletionBody(t, planJSON)))
	}))
	defer srv.Close()

	client := NewClient(compatibleConfig(srv.URL))
	p, err := client.Generate(context.Background(), providerReq)
	require.NoError(t, err)

	assert.Equal(t, "Plan Power BI", p["title"])
	// goal was supplied by the provider: back-fill must not overwrite it.
	assert.Equal(t, "dominar Power BI", p["goal"])
	// level and the numeric fields were omitted: back-fill fills them.
	assert.Equal(t, "Junior", p["level"])
	assert.Equal(t, 6.0, p["hoursPerWeek"])
	assert.Equal(t, 8.0, p["durationWeeks"])
}

func TestGenerateStripsCodeFences(t *testing.T) {
	fenced := "```json\n{\"title\":\"Plan\"}\n```"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatCompletionBody(t, fenced)))
	}))
	defer srv.Close()

	client := NewClient(compatibleConfig(srv.URL))
	p, err := client.Generate(context.Background(), providerReq)
	require.NoError(t, err)
	assert.Equal(t, "Plan", p["title"])
}

func TestGenerateNonJSONOutputIsBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatCompletionBody(t, "lo siento, no puedo generar JSON")))
	}))
	defer srv.Close()

	client := NewClient(compatibleConfig(srv.URL))
	_, err := client.Generate(context.Background(), providerReq)

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "bad-json", provErr.Cause)
}

func TestGenerateUpstreamFailureCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(compatibleConfig(srv.URL))
	_, err := client.Generate(context.Background(), providerReq)

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "upstream", provErr.Cause)
	assert.Equal(t, http.StatusServiceUnavailable, provErr.UpstreamStatus)
}

func TestGenerateFailsFastWithoutCredentials(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	cfg := compatibleConfig(srv.URL)
	cfg.Providers[0].APIKey = ""

	client := NewClient(cfg)
	_, err := client.Generate(context.Background(), providerReq)

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "no-credentials", provErr.Cause)
	assert.False(t, called, "no network call may happen without credentials")
}

func TestGenerateNoEnabledProvider(t *testing.T) {
	client := NewClient(config.AIConfig{
		Providers: []config.AIProvider{
			{ID: "off", Type: "openai-compatible", APIKey: "k", Enabled: false},
		},
	})
	_, err := client.Generate(context.Background(), providerReq)

	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "no-credentials", provErr.Cause)
}

func TestUnmarshalPlanJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "plain object", raw: `{"a":1}`},
		{name: "fenced object", raw: "```json\n{\"a\":1}\n```"},
		{name: "object with chatter around it", raw: "Aquí está tu plan: {\"a\":1} ¡suerte!"},
		{name: "no object at all", raw: "sin JSON", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out map[string]interface{}
			err := unmarshalPlanJSON(tt.raw, &out)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1.0, out["a"])
		})
	}
}

func TestClassifyTransport(t *testing.T) {
	assert.Equal(t, "timeout", classifyTransport(context.DeadlineExceeded))
	assert.Equal(t, "transport", classifyTransport(errors.New("connection refused")))
}
