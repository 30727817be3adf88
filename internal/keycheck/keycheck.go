// Package keycheck probes the AI provider keys directly, bypassing the
// backend. The rate-limit-status endpoint says what the backend thinks of
// its key pool; these checks say what the providers think.
package keycheck

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"google.golang.org/genai"
)

const (
	geminiPingModel = "gemini-2.0-flash"
	pingPrompt      = "Reply with the single word: pong"
	pingTimeout     = 30 * time.Second
)

// KeyResult is the outcome of probing one key
type KeyResult struct {
	Provider string
	Label    string // "key 1", "key 2", ... keys are never printed
	OK       bool
	Err      error
	Latency  time.Duration
}

// CheckGemini sends one trivial generation through every configured Gemini
// key and reports per-key results
func CheckGemini(ctx context.Context, keys []string) []KeyResult {
	results := make([]KeyResult, 0, len(keys))

	for i, key := range keys {
		label := fmt.Sprintf("key %d", i+1)
		log.Printf("🔑 GEMINI: probing %s...", label)

		start := time.Now()
		err := pingGemini(ctx, key)
		latency := time.Since(start)

		if err != nil {
			log.Printf("❌ GEMINI %s failed after %v: %v", label, latency, err)
			sentry.CaptureException(err)
		} else {
			log.Printf("✅ GEMINI %s ok in %v", label, latency)
		}

		results = append(results, KeyResult{
			Provider: "gemini",
			Label:    label,
			OK:       err == nil,
			Err:      err,
			Latency:  latency,
		})
	}

	return results
}

func pingGemini(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, geminiPingModel, genai.Text(pingPrompt), nil)
	if err != nil {
		return fmt.Errorf("gemini ping failed: %w", err)
	}
	if len(result.Candidates) == 0 {
		return fmt.Errorf("gemini ping returned no candidates")
	}
	return nil
}

// CheckOpenAI verifies the OpenAI key with a model-list call
func CheckOpenAI(ctx context.Context, key string) KeyResult {
	log.Printf("🔑 OPENAI: probing key...")

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	client := openai.NewClient(option.WithAPIKey(key))
	_, err := client.Models.List(ctx)
	latency := time.Since(start)

	if err != nil {
		log.Printf("❌ OPENAI key failed after %v: %v", latency, err)
		sentry.CaptureException(err)
	} else {
		log.Printf("✅ OPENAI key ok in %v", latency)
	}

	return KeyResult{
		Provider: "openai",
		Label:    "key 1",
		OK:       err == nil,
		Err:      err,
		Latency:  latency,
	}
}

// AllOK reports whether every probed key worked
func AllOK(results []KeyResult) bool {
	for _, r := range results {
		if !r.OK {
			return false
		}
	}
	return true
}
