package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		name        string
		development bool
		level       string
		expectError bool
		enabled     zapcore.Level
	}{
		{"development default", true, "", false, zapcore.DebugLevel},
		{"production default", false, "", false, zapcore.InfoLevel},
		{"explicit warn", false, "warn", false, zapcore.WarnLevel},
		{"bad level", false, "loud", true, zapcore.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := NewLogger(tc.development, tc.level)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tc.enabled))
			assert.False(t, logger.Core().Enabled(tc.enabled-1))
		})
	}
}
