package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/common"
)

func testSchema() *Schema {
	return Object([]string{"items"},
		Field{Name: "items", Schema: Array(Object([]string{"numeroExpediente"},
			Field{Name: "numeroExpediente", Schema: String("")},
			Field{Name: "moneda", Schema: Enum("CRC", "USD")},
		))},
	)
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{name: "default provider is gemini", config: Config{APIKey: "k"}},
		{name: "openai", config: Config{Provider: "openai", APIKey: "k"}},
		{name: "anthropic", config: Config{Provider: "Anthropic", APIKey: "k"}},
		{name: "rate limited", config: Config{Provider: "gemini", APIKey: "k", RateLimit: 30}},
		{name: "missing key", config: Config{Provider: "gemini"}, wantErr: common.ErrMissingAPIKey},
		{name: "unknown provider", config: Config{Provider: "mistral", APIKey: "k"}, wantErr: errors.New("unsupported")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.config)
			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, common.ErrMissingAPIKey) {
					assert.ErrorIs(t, err, common.ErrMissingAPIKey)
				}
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestGeminiClient_Extract(t *testing.T) {
	var captured map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))

		_, _ = fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"{\"items\":"},{"text":"[]}"}]}}]}`)
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	resp, err := client.Extract(context.Background(), Request{
		SystemInstruction: "Eres un experto",
		Prompt:            "Extrae datos",
		Schema:            testSchema(),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, resp.Text)
	assert.Equal(t, "gemini-2.5-flash", resp.Model)

	config := captured["generationConfig"].(map[string]any)
	assert.InDelta(t, 0.0, config["temperature"], 0.0001)
	assert.Equal(t, "application/json", config["responseMimeType"])
	schema := config["responseSchema"].(map[string]any)
	assert.Equal(t, "OBJECT", schema["type"])

	system := captured["systemInstruction"].(map[string]any)
	parts := system["parts"].([]any)
	assert.Equal(t, "Eres un experto", parts[0].(map[string]any)["text"])
}

func TestGeminiClient_StatusErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = fmt.Fprint(w, `{"error":{"status":"RESOURCE_EXHAUSTED"}}`)
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Extract(context.Background(), Request{Prompt: "x"})
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.True(t, IsTransient(err))
}

func TestGeminiClient_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `{"candidates":[]}`)
	}))
	defer server.Close()

	client, err := NewClient(Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Extract(context.Background(), Request{Prompt: "x"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOpenAIClient_Extract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		format := body["response_format"].(map[string]any)
		assert.Equal(t, "json_schema", format["type"])

		_, _ = fmt.Fprint(w, `{"choices":[{"message":{"content":"{\"items\":[]}"}}]}`)
	}))
	defer server.Close()

	client, err := NewClient(Config{Provider: "openai", APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	resp, err := client.Extract(context.Background(), Request{Prompt: "x", Schema: testSchema()})
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, resp.Text)
}

func TestAnthropicClient_Extract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body["system"], "numeroExpediente")

		_, _ = fmt.Fprint(w, `{"content":[{"type":"text","text":"{\"items\":[]}"}]}`)
	}))
	defer server.Close()

	client, err := NewClient(Config{Provider: "anthropic", APIKey: "test-key", BaseURL: server.URL})
	require.NoError(t, err)

	resp, err := client.Extract(context.Background(), Request{SystemInstruction: "sys", Prompt: "x", Schema: testSchema()})
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, resp.Text)
}

func TestAnthropicClient_Overloaded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(statusOverloaded)
		_, _ = fmt.Fprint(w, `{"type":"error","error":{"type":"overloaded_error"}}`)
	}))
	defer server.Close()

	client, err := NewClient(Config{Provider: "anthropic", APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Extract(context.Background(), Request{Prompt: "x"})
	assert.True(t, IsTransient(err))
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "429 status", err: &StatusError{StatusCode: 429}, want: true},
		{name: "503 status", err: &StatusError{StatusCode: 503}, want: true},
		{name: "529 status", err: &StatusError{StatusCode: 529}, want: true},
		{name: "400 status", err: &StatusError{StatusCode: 400, Body: "bad schema"}, want: false},
		{name: "quota text", err: errors.New("Quota exceeded for project"), want: true},
		{name: "overloaded text", err: errors.New("model is Overloaded"), want: true},
		{name: "wrapped status", err: fmt.Errorf("chunk 2: %w", &StatusError{StatusCode: 429}), want: true},
		{name: "plain error", err: errors.New("invalid argument"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestSchemaRendering(t *testing.T) {
	s := testSchema()

	gemini := s.Gemini()
	assert.Equal(t, "OBJECT", gemini["type"])
	items := gemini["properties"].(map[string]any)["items"].(map[string]any)
	assert.Equal(t, "ARRAY", items["type"])
	item := items["items"].(map[string]any)
	assert.Equal(t, []string{"numeroExpediente", "moneda"}, item["propertyOrdering"])
	assert.Equal(t, []string{"CRC", "USD"}, item["properties"].(map[string]any)["moneda"].(map[string]any)["enum"])

	jsonSchema := s.JSONSchema()
	assert.Equal(t, "object", jsonSchema["type"])
	assert.NotContains(t, jsonSchema, "propertyOrdering")
	assert.Equal(t, []string{"items"}, jsonSchema["required"])
}
