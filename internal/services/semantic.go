package services

import (
	"context"
	"log"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/nagmanijha/ResumeRev.ai/internal/models"
)

// SemanticService scores textual similarity between resume content and a
// job description, using embeddings when available and a term-frequency
// fallback when they are not.
type SemanticService interface {
	MatchScore(ctx context.Context, resumeText, jobDescription string) int
	ExperienceMatch(ctx context.Context, experiences []models.Experience, jobDescription string) int
	ProjectRelevance(ctx context.Context, projects []models.Project, jobDescription string) []models.Project
}

type semanticService struct {
	embedder Embedder
}

func NewSemanticService(embedder Embedder) SemanticService {
	return &semanticService{embedder: embedder}
}

// CosineSimilarity returns the cosine of the angle between two vectors,
// or 0 when either vector is degenerate.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// MatchScore compares the full resume against the job description.
// Embedding failures fall back to term-frequency cosine, and an empty
// fallback yields a neutral 50 rather than punishing the candidate for
// an upstream outage.
func (s *semanticService) MatchScore(ctx context.Context, resumeText, jobDescription string) int {
	resumeVec, err1 := s.embedder.GenerateEmbedding(ctx, truncateForEmbedding(resumeText))
	jdVec, err2 := s.embedder.GenerateEmbedding(ctx, truncateForEmbedding(jobDescription))

	if err1 == nil && err2 == nil {
		return clampScore(CosineSimilarity(resumeVec, jdVec) * 100)
	}

	log.Printf("⚠️ Embedding unavailable, using term-frequency fallback")
	sim := termFrequencyCosine(resumeText, jobDescription)
	if sim == 0 {
		return 50
	}
	return clampScore(sim * 100)
}

// ExperienceMatch takes the best-matching role: max cosine between the
// job description and each "title description" pair.
func (s *semanticService) ExperienceMatch(ctx context.Context, experiences []models.Experience, jobDescription string) int {
	if len(experiences) == 0 {
		return 30
	}

	jdVec, err := s.embedder.GenerateEmbedding(ctx, truncateForEmbedding(jobDescription))
	if err != nil {
		return s.experienceMatchFallback(experiences, jobDescription)
	}

	best := 0.0
	for _, exp := range experiences {
		text := strings.TrimSpace(exp.Title + " " + exp.Description)
		if text == "" {
			continue
		}
		expVec, err := s.embedder.GenerateEmbedding(ctx, truncateForEmbedding(text))
		if err != nil {
			continue
		}
		if sim := CosineSimilarity(jdVec, expVec); sim > best {
			best = sim
		}
	}

	if best == 0 {
		return 30
	}
	return clampScore(best * 100)
}

func (s *semanticService) experienceMatchFallback(experiences []models.Experience, jobDescription string) int {
	best := 0.0
	for _, exp := range experiences {
		if sim := termFrequencyCosine(exp.Title+" "+exp.Description, jobDescription); sim > best {
			best = sim
		}
	}
	if best == 0 {
		return 30
	}
	return clampScore(best * 100)
}

// ProjectRelevance scores each project against the job description and
// returns them sorted by relevance, highest first.
func (s *semanticService) ProjectRelevance(ctx context.Context, projects []models.Project, jobDescription string) []models.Project {
	if len(projects) == 0 {
		return projects
	}

	jdVec, jdErr := s.embedder.GenerateEmbedding(ctx, truncateForEmbedding(jobDescription))

	scored := make([]models.Project, len(projects))
	copy(scored, projects)

	for i := range scored {
		text := strings.TrimSpace(scored[i].Title + " " + scored[i].Description + " " + strings.Join(scored[i].Technologies, " "))
		var sim float64
		if jdErr == nil {
			if projVec, err := s.embedder.GenerateEmbedding(ctx, truncateForEmbedding(text)); err == nil {
				sim = CosineSimilarity(jdVec, projVec)
			}
		}
		if sim == 0 {
			sim = termFrequencyCosine(text, jobDescription)
		}
		scored[i].RelevanceScore = clampScore(sim * 100)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})
	return scored
}

var tokenRe = regexp.MustCompile(`[a-z0-9+#.]+`)

// termFrequencyCosine is a dependency-free similarity used only when the
// embedding API is down.
func termFrequencyCosine(a, b string) float64 {
	ta := termFreq(a)
	tb := termFreq(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for term, fa := range ta {
		normA += fa * fa
		if fb, ok := tb[term]; ok {
			dot += fa * fb
		}
	}
	for _, fb := range tb {
		normB += fb * fb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "you": true,
	"are": true, "our": true, "will": true, "have": true, "this": true,
	"that": true, "from": true, "your": true, "who": true, "not": true,
}

func termFreq(text string) map[string]float64 {
	freq := make(map[string]float64)
	for _, tok := range tokenRe.FindAllString(strings.ToLower(text), -1) {
		if len(tok) < 3 || stopwords[tok] {
			continue
		}
		freq[tok]++
	}
	return freq
}

func truncateForEmbedding(text string) string {
	const maxLen = 8000
	if len(text) > maxLen {
		return text[:maxLen]
	}
	return text
}

func clampScore(v float64) int {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return int(math.Round(v))
}
