package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAPIKeys(t *testing.T) {
	testCases := []struct {
		name          string
		openaiKey     string
		geminiKey     string
		googleKey     string
		wantGemini    string
		expectError   bool
		errorContains string
	}{
		{
			name:      "valid OpenAI key",
			openaiKey: "sk-1234567890abcdef1234567890abcdef",
		},
		{
			name:       "valid Gemini key",
			geminiKey:  "AIzaTest-1234567890abcdef1234567890",
			wantGemini: "AIzaTest-1234567890abcdef1234567890",
		},
		{
			name:       "GOOGLE_API_KEY fallback",
			googleKey:  "AIzaGoogle-1234567890abcdef123456789",
			wantGemini: "AIzaGoogle-1234567890abcdef123456789",
		},
		{
			name:          "invalid OpenAI key format",
			openaiKey:     "invalid-key",
			expectError:   true,
			errorContains: "invalid OPENAI_API_KEY format",
		},
		{
			name:          "Gemini key too short",
			geminiKey:     "AIza-short",
			expectError:   true,
			errorContains: "too short",
		},
		{
			name: "empty keys are allowed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", tc.openaiKey)
			t.Setenv("GEMINI_API_KEY", tc.geminiKey)
			t.Setenv("GOOGLE_API_KEY", tc.googleKey)

			apiKeys, err := GetAPIKeys()

			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.errorContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.openaiKey, apiKeys.OpenAI)
			assert.Equal(t, tc.wantGemini, apiKeys.Gemini)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	path, err := LoadEnv()
	require.NoError(t, err)
	assert.Empty(t, path, "no .env file should be found in an empty directory")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DOCPOD_TEST_VALUE=from-dotenv\n"), 0644))
	t.Setenv("DOCPOD_TEST_VALUE", "")
	os.Unsetenv("DOCPOD_TEST_VALUE")

	path, err = LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, ".env", path)
	assert.Equal(t, "from-dotenv", os.Getenv("DOCPOD_TEST_VALUE"))
}
