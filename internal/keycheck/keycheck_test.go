package keycheck

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllOK(t *testing.T) {
	assert.True(t, AllOK(nil))
	assert.True(t, AllOK([]KeyResult{{OK: true}, {OK: true}}))
	assert.False(t, AllOK([]KeyResult{{OK: true}, {OK: false}}))
}

func TestCheckGeminiLabelsNeverContainKeys(t *testing.T) {
	// Bad keys fail fast at the provider; the point here is that results
	// carry positional labels, never the key material
	if testing.Short() {
		t.Skip("Skipping provider call in short mode")
	}

	keys := []string{"invalid-key-aaaa", "invalid-key-bbbb"}
	results := CheckGemini(context.Background(), keys)

	require.Len(t, results, 2)
	for i, res := range results {
		assert.Equal(t, "gemini", res.Provider)
		assert.NotContains(t, res.Label, keys[i])
		assert.False(t, res.OK)
	}
}

func TestCheckOpenAIWithRealKey(t *testing.T) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		t.Skip("OPENAI_API_KEY not set, skipping integration test")
	}
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	res := CheckOpenAI(context.Background(), key)
	assert.True(t, res.OK, "key probe failed: %v", res.Err)
	assert.Greater(t, res.Latency.Nanoseconds(), int64(0))
}
