package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/nagmanijha/ResumeRev.ai/internal/models"
)

// SuggestionService asks the LLM for concrete resume improvements.
type SuggestionService interface {
	Suggest(ctx context.Context, parsed *models.ParsedResume, score *models.AtsScore, jobDescription string) []string
}

type suggestionService struct {
	generator  TextGenerator
	cache      CacheService
	maxRetries int
}

func NewSuggestionService(generator TextGenerator, cache CacheService, maxRetries int) SuggestionService {
	return &suggestionService{generator: generator, cache: cache, maxRetries: maxRetries}
}

var fallbackSuggestions = []string{
	"Quantify your achievements with concrete numbers, such as performance gains or user counts.",
	"Mirror the key technologies from the job description in your skills section where you genuinely have them.",
	"Open each experience bullet with a strong action verb like 'built', 'led', or 'reduced'.",
	"Add a short project section highlighting work that matches the role you are applying for.",
}

// Suggest returns 3-4 tailored suggestions. Responses are cached by the
// content hash of resume plus job description, and any LLM failure
// falls back to static advice so the endpoint never errors on this.
func (s *suggestionService) Suggest(ctx context.Context, parsed *models.ParsedResume, score *models.AtsScore, jobDescription string) []string {
	key := suggestionCacheKey(parsed.FullText, jobDescription)

	if cached, ok := s.cache.Get(ctx, key); ok {
		if suggestions := parseSuggestionJSON(cached); len(suggestions) > 0 {
			log.Printf("✅ Suggestion cache hit")
			return suggestions
		}
	}

	prompt := buildSuggestionPrompt(parsed, score, jobDescription)

	raw, err := generateTextWithRetry(ctx, s.generator, prompt, s.maxRetries)
	if err != nil {
		log.Printf("⚠️ Suggestion generation failed, using fallback: %v", err)
		return fallbackSuggestions
	}

	suggestions := parseSuggestionJSON(raw)
	if len(suggestions) == 0 {
		log.Printf("⚠️ Could not parse suggestion response, using fallback")
		return fallbackSuggestions
	}

	if encoded, err := json.Marshal(suggestions); err == nil {
		s.cache.Set(ctx, key, string(encoded))
	}
	return suggestions
}

func buildSuggestionPrompt(parsed *models.ParsedResume, score *models.AtsScore, jobDescription string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert technical recruiter reviewing a resume against a job description.\n\n")
	fmt.Fprintf(&sb, "The resume scored %d/100 overall (semantic %d, skills %d, experience %d, projects %d).\n",
		score.TotalScore,
		score.Breakdown.SemanticMatch,
		score.Breakdown.SkillMatch,
		score.Breakdown.ExperienceMatch,
		score.Breakdown.ProjectMatch)

	if len(score.SkillGap.Missing) > 0 {
		fmt.Fprintf(&sb, "Missing skills: %s\n", strings.Join(score.SkillGap.Missing, ", "))
	}

	fmt.Fprintf(&sb, "Writing quality: achievements %.0f/100, content %.0f/100. Seniority: %s.\n",
		AchievementsScore(parsed.Experience),
		ContentQualityScore(parsed.FullText),
		SeniorityLevel(parsed.Experience, parsed.FullText))

	sb.WriteString("\nJob description:\n")
	sb.WriteString(truncateForEmbedding(jobDescription))
	sb.WriteString("\n\nResume:\n")
	sb.WriteString(truncateForEmbedding(parsed.FullText))

	sb.WriteString("\n\nGive 3 to 4 specific, actionable suggestions to improve this resume for this job. ")
	sb.WriteString("Respond with ONLY a JSON array of strings, no markdown, no commentary. ")
	sb.WriteString(`Example: ["suggestion one", "suggestion two", "suggestion three"]`)

	return sb.String()
}

// parseSuggestionJSON tolerates markdown fences and leading prose around
// the JSON array the model was asked for.
func parseSuggestionJSON(raw string) []string {
	cleaned := extractJSONArray(raw)

	var suggestions []string
	if err := json.Unmarshal([]byte(cleaned), &suggestions); err != nil {
		return nil
	}

	var out []string
	for _, s := range suggestions {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func extractJSONArray(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start >= 0 && end > start {
		return cleaned[start : end+1]
	}
	return cleaned
}

func suggestionCacheKey(resumeText, jobDescription string) string {
	sum := sha256.Sum256([]byte(resumeText + "\x00" + jobDescription))
	return "suggestions:" + hex.EncodeToString(sum[:])
}
