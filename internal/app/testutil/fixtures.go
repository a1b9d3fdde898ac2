package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SampleScript is a small well-formed two-speaker script
const SampleScript = `Host: Welcome to the show. Today we read a paper.
Expert: Thanks for having me. It is a short one.
Host: What is it about?`

// WriteTestFile writes content to name inside a fresh temp dir and returns the path
func WriteTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
