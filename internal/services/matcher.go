package services

import (
	"context"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/nagmanijha/ResumeRev.ai/internal/models"
)

// maxRequiredSkills caps how many skills are pulled from a job
// description so a keyword-stuffed posting cannot drown the score.
const maxRequiredSkills = 50

// SkillMatcher computes the skill gap between a resume and the skills a
// job description demands.
type SkillMatcher interface {
	Match(ctx context.Context, resumeSkills []string, jobDescription string) models.SkillGap
}

type skillMatcher struct {
	embedder Embedder
	fuzzy    *metrics.SorensenDice
}

func NewSkillMatcher(embedder Embedder) SkillMatcher {
	sd := metrics.NewSorensenDice()
	sd.CaseSensitive = false
	return &skillMatcher{embedder: embedder, fuzzy: sd}
}

// Match resolves each required skill in three stages: exact match on the
// normalized name, fuzzy string match at 0.85, then embedding similarity
// above 0.7. A skill counts as matched in exactly one stage.
func (m *skillMatcher) Match(ctx context.Context, resumeSkills []string, jobDescription string) models.SkillGap {
	required := ExtractSkills(jobDescription)
	if len(required) > maxRequiredSkills {
		required = required[:maxRequiredSkills]
	}

	gap := models.SkillGap{Matched: []string{}, Missing: []string{}}
	if len(required) == 0 {
		gap.MatchPercent = 100
		return gap
	}

	have := make(map[string]bool, len(resumeSkills))
	for _, s := range resumeSkills {
		have[strings.ToLower(s)] = true
	}

	var unresolved []string
	for _, req := range required {
		if have[strings.ToLower(req)] {
			gap.Matched = append(gap.Matched, req)
		} else {
			unresolved = append(unresolved, req)
		}
	}

	var stillMissing []string
	for _, req := range unresolved {
		if m.fuzzyMatch(req, resumeSkills) {
			gap.Matched = append(gap.Matched, req)
		} else {
			stillMissing = append(stillMissing, req)
		}
	}

	for _, req := range stillMissing {
		if m.semanticMatch(ctx, req, resumeSkills) {
			gap.Matched = append(gap.Matched, req)
		} else {
			gap.Missing = append(gap.Missing, req)
		}
	}

	sort.Strings(gap.Matched)
	sort.Strings(gap.Missing)
	gap.MatchPercent = float64(len(gap.Matched)) / float64(len(required)) * 100
	return gap
}

func (m *skillMatcher) fuzzyMatch(required string, resumeSkills []string) bool {
	for _, skill := range resumeSkills {
		if strutil.Similarity(required, skill, m.fuzzy) >= 0.85 {
			return true
		}
	}
	return false
}

// semanticMatch catches skills phrased differently, like "k8s" in the
// posting against "Kubernetes" on the resume. Embedding errors simply
// mean no match; the earlier stages already did the cheap work.
func (m *skillMatcher) semanticMatch(ctx context.Context, required string, resumeSkills []string) bool {
	if m.embedder == nil || len(resumeSkills) == 0 {
		return false
	}

	reqVec, err := m.embedder.GenerateEmbedding(ctx, required)
	if err != nil {
		return false
	}

	for _, skill := range resumeSkills {
		skillVec, err := m.embedder.GenerateEmbedding(ctx, skill)
		if err != nil {
			continue
		}
		if CosineSimilarity(reqVec, skillVec) > 0.7 {
			return true
		}
	}
	return false
}
