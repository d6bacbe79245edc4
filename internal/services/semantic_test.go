package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagmanijha/ResumeRev.ai/internal/models"
)

// fakeEmbedder returns canned vectors keyed by input text. Unknown
// inputs get the fallback vector; a nil table means every call fails.
type fakeEmbedder struct {
	vectors  map[string][]float32
	fallback []float32
}

func (f *fakeEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if f.vectors == nil && f.fallback == nil {
		return nil, assert.AnError
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return f.fallback, nil
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 0}, []float32{1, 0}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity(nil, nil), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 0}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1}, []float32{1, 0}), 1e-9)
}

func TestMatchScoreWithEmbeddings(t *testing.T) {
	svc := NewSemanticService(&fakeEmbedder{fallback: []float32{1, 0, 0}})

	score := svc.MatchScore(context.Background(), "resume text", "job description")
	assert.Equal(t, 100, score)
}

func TestMatchScoreFallbackNeutral(t *testing.T) {
	svc := NewSemanticService(&fakeEmbedder{})

	// No shared vocabulary at all, so the fallback yields the neutral 50.
	score := svc.MatchScore(context.Background(), "alpha beta gamma", "delta epsilon zeta")
	assert.Equal(t, 50, score)
}

func TestMatchScoreFallbackOverlap(t *testing.T) {
	svc := NewSemanticService(&fakeEmbedder{})

	score := svc.MatchScore(context.Background(),
		"golang kubernetes postgres backend services",
		"golang kubernetes postgres backend services")
	assert.Equal(t, 100, score)
}

func TestExperienceMatchEmpty(t *testing.T) {
	svc := NewSemanticService(&fakeEmbedder{fallback: []float32{1, 0}})

	score := svc.ExperienceMatch(context.Background(), nil, "job description")
	assert.Equal(t, 30, score)
}

func TestExperienceMatchTakesBestRole(t *testing.T) {
	emb := &fakeEmbedder{
		vectors: map[string][]float32{
			"job description":                {1, 0},
			"Backend Engineer built apis":    {1, 0},
			"Support Agent answered tickets": {0, 1},
		},
	}
	svc := NewSemanticService(emb)

	experiences := []models.Experience{
		{Title: "Support Agent", Description: "answered tickets"},
		{Title: "Backend Engineer", Description: "built apis"},
	}

	score := svc.ExperienceMatch(context.Background(), experiences, "job description")
	assert.Equal(t, 100, score)
}

func TestProjectRelevanceSorted(t *testing.T) {
	emb := &fakeEmbedder{
		vectors: map[string][]float32{
			"job description":        {1, 0},
			"Chat App realtime chat": {0, 1},
			"API Gateway routing":    {1, 0},
		},
	}
	svc := NewSemanticService(emb)

	projects := []models.Project{
		{Title: "Chat App", Description: "realtime chat"},
		{Title: "API Gateway", Description: "routing"},
	}

	ranked := svc.ProjectRelevance(context.Background(), projects, "job description")

	require.Len(t, ranked, 2)
	assert.Equal(t, "API Gateway", ranked[0].Title)
	assert.Equal(t, 100, ranked[0].RelevanceScore)
	assert.GreaterOrEqual(t, ranked[0].RelevanceScore, ranked[1].RelevanceScore)
}

func TestProjectRelevanceEmpty(t *testing.T) {
	svc := NewSemanticService(&fakeEmbedder{fallback: []float32{1}})

	assert.Empty(t, svc.ProjectRelevance(context.Background(), nil, "jd"))
}
