package script

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docpod/internal/app/errors"
	"docpod/internal/config"
)

type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *mockCompleter) Name() string {
	return "mock"
}

func TestScriptGenerator_Generate(t *testing.T) {
	t.Run("returns raw model output", func(t *testing.T) {
		completer := new(mockCompleter)
		raw := "Host: Welcome!\nExpert: Thanks for having me."
		completer.On("Complete", mock.Anything, BuildPrompt("Hello world.")).Return(raw, nil).Once()

		gen := NewScriptGenerator(completer, "key", time.Minute, zap.NewNop())
		got := gen.Generate(context.Background(), "Hello world.")

		assert.Equal(t, raw, got)
		assert.False(t, IsError(got))
		completer.AssertExpectations(t)
	})

	t.Run("transport failure becomes error marker", func(t *testing.T) {
		completer := new(mockCompleter)
		completer.On("Complete", mock.Anything, mock.Anything).Return("", stderrors.New("dial tcp: connection refused")).Once()

		gen := NewScriptGenerator(completer, "key", time.Minute, zap.NewNop())
		got := gen.Generate(context.Background(), "text")

		assert.True(t, IsError(got))
		assert.Equal(t, "Error: Could not generate script. Details: dial tcp: connection refused", got)
	})

	t.Run("missing key skips the network call", func(t *testing.T) {
		completer := new(mockCompleter)

		gen := NewScriptGenerator(completer, "  ", time.Minute, zap.NewNop())
		got := gen.Generate(context.Background(), "text")

		assert.True(t, IsError(got))
		assert.Contains(t, got, "API key")
		completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	})

	t.Run("timeout is applied to the call", func(t *testing.T) {
		completer := new(mockCompleter)
		completer.On("Complete", mock.MatchedBy(func(ctx context.Context) bool {
			_, ok := ctx.Deadline()
			return ok
		}), mock.Anything).Return("Host: hi", nil).Once()

		gen := NewScriptGenerator(completer, "key", time.Second, zap.NewNop())
		assert.Equal(t, "Host: hi", gen.Generate(context.Background(), "text"))
		completer.AssertExpectations(t)
	})
}

func TestNewGenerator(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.ScriptConfig
		wantErr error
	}{
		{
			name:    "missing key",
			cfg:     config.ScriptConfig{Provider: config.ProviderGemini, Model: "gemini-2.0-flash"},
			wantErr: errors.ErrMissingAPIKey,
		},
		{
			name:    "unknown provider",
			cfg:     config.ScriptConfig{Provider: "claude", APIKey: "key"},
			wantErr: errors.ErrInvalidConfig,
		},
		{
			name: "gemini",
			cfg:  config.ScriptConfig{Provider: config.ProviderGemini, Model: "gemini-2.0-flash", APIKey: "key"},
		},
		{
			name: "openai",
			cfg:  config.ScriptConfig{Provider: config.ProviderOpenAI, Model: "gpt-4o-mini", APIKey: "key"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewGenerator(tt.cfg, time.Minute, zap.NewNop())
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, stderrors.Is(err, tt.wantErr))
				assert.Nil(t, gen)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cfg.Provider, gen.completer.Name())
		})
	}
}

func TestOpenAICompleter_Complete(t *testing.T) {
	var gotModel, gotContent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotModel = body.Model
		if len(body.Messages) > 0 {
			gotContent = body.Messages[0].Content
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Host: Hi\nExpert: Hello"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	completer := NewOpenAICompleter("test-key", "gpt-4o-mini", server.URL)
	out, err := completer.Complete(context.Background(), "prompt text")

	require.NoError(t, err)
	assert.Equal(t, "Host: Hi\nExpert: Hello", out)
	assert.Equal(t, "gpt-4o-mini", gotModel)
	assert.Equal(t, "prompt text", gotContent)
}

func TestOpenAICompleter_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer server.Close()

	gen := NewScriptGenerator(NewOpenAICompleter("test-key", "gpt-4o-mini", server.URL), "test-key", time.Minute, zap.NewNop())
	got := gen.Generate(context.Background(), "text")

	assert.True(t, IsError(got))
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Photosynthesis converts light.")

	assert.Contains(t, prompt, "Host:")
	assert.Contains(t, prompt, "Expert:")
	assert.Contains(t, prompt, "--- TEXT CONTENT ---\nPhotosynthesis converts light.\n--- END OF TEXT ---")
}
