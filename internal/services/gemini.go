package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/genai"

	"github.com/nagmanijha/ResumeRev.ai/internal/config"
)

// Embedder produces dense vectors for arbitrary text.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// TextGenerator produces free-form text from a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeminiService wraps the Gemini API for embeddings and generation.
type GeminiService interface {
	Embedder
	TextGenerator
}

type geminiService struct {
	client     *genai.Client
	model      string
	embedModel string
	breaker    *APIBreaker
}

func NewGeminiService(cfg *config.Config, breaker *APIBreaker) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	log.Printf("✅ Gemini client initialized (model: %s)", cfg.Gemini.Model)

	return &geminiService{
		client:     client,
		model:      cfg.Gemini.Model,
		embedModel: cfg.Gemini.EmbedModel,
		breaker:    breaker,
	}, nil
}

// GenerateEmbedding returns a 768-dimension vector for the given text.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	result, err := execWithBreaker(g.breaker, func() (*genai.EmbedContentResponse, error) {
		return g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}

	return result.Embeddings[0].Values, nil
}

func (g *geminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	temp := float32(0.2)
	resp, err := execWithBreaker(g.breaker, func() (*genai.GenerateContentResponse, error) {
		return g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
			Temperature: &temp,
		})
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return text, nil
}

// retryBackoffUnit scales the wait between attempts.
var retryBackoffUnit = time.Second

// generateTextWithRetry retries with quadratic backoff. The circuit
// breaker still counts each attempt, so a dead upstream opens fast.
func generateTextWithRetry(ctx context.Context, gen TextGenerator, prompt string, maxRetries int) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		text, err := gen.GenerateText(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if attempt < maxRetries {
			backoff := time.Duration(attempt*attempt) * retryBackoffUnit
			log.Printf("🔄 Gemini attempt %d/%d failed, retrying in %v: %v", attempt, maxRetries, backoff, err)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}

	return "", fmt.Errorf("gemini request failed after %d attempts: %w", maxRetries, lastErr)
}
