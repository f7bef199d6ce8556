package tools

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunToolCapturesOutput(t *testing.T) {
	result, err := RunTool(context.Background(), "sh", "-c", "echo one; echo two; echo err >&2")
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two"}, ParseLines(result.Stdout))
	assert.Contains(t, result.Stderr, "err")
	assert.Equal(t, 0, result.ExitCode)
}

func TestRunToolNonZeroExit(t *testing.T) {
	result, err := RunTool(context.Background(), "sh", "-c", "exit 3")
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 3, result.ExitCode)
	assert.Contains(t, err.Error(), "exit code 3")
}

func TestRunToolMissingBinary(t *testing.T) {
	_, err := RunTool(context.Background(), "definitely-not-a-binary-xyz")
	assert.Error(t, err)
}

func TestRunToolContextCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := RunTool(ctx, "sleep", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
}

func TestParseLines(t *testing.T) {
	out := []byte("  a.example.com  \n\nb.example.com\n   \n")
	assert.Equal(t, []string{"a.example.com", "b.example.com"}, ParseLines(out))
	assert.Empty(t, ParseLines(nil))
}

func TestCheckToolMissing(t *testing.T) {
	result := CheckTool(ToolRequirement{Name: "ghost", Binary: "definitely-not-a-binary-xyz"})
	assert.False(t, result.Found)
	assert.Empty(t, result.Path)
}

func TestDefaultToolsAreOptional(t *testing.T) {
	for _, req := range DefaultTools() {
		assert.False(t, req.Required, "%s must stay optional", req.Name)
		assert.NotEmpty(t, req.InstallCmd)
	}
}
