package services

import (
	"context"
	"math"

	"github.com/nagmanijha/ResumeRev.ai/internal/models"
)

// ScoringService produces the full score breakdown for one resume
// against one job description.
type ScoringService interface {
	Score(ctx context.Context, parsed *models.ParsedResume, jobDescription string) (*models.AtsScore, []models.Project)
}

type scoringService struct {
	semantic SemanticService
	matcher  SkillMatcher
	roles    RoleService
}

func NewScoringService(semantic SemanticService, matcher SkillMatcher, roles RoleService) ScoringService {
	return &scoringService{semantic: semantic, matcher: matcher, roles: roles}
}

// Score blends the four component scores with role-specific weights,
// then applies consistency floors so a resume that covers nearly every
// required skill cannot land a failing total on soft-signal noise
// alone. Returns the score plus projects annotated with relevance.
func (s *scoringService) Score(ctx context.Context, parsed *models.ParsedResume, jobDescription string) (*models.AtsScore, []models.Project) {
	gap := s.matcher.Match(ctx, parsed.Skills, jobDescription)

	semanticScore := s.semantic.MatchScore(ctx, parsed.FullText, jobDescription)
	skillScore := int(math.Round(gap.MatchPercent))
	experienceScore := s.semantic.ExperienceMatch(ctx, parsed.Experience, jobDescription)
	rankedProjects := s.semantic.ProjectRelevance(ctx, parsed.Projects, jobDescription)

	projectScore := 0
	if len(rankedProjects) > 0 {
		sum := 0
		for _, p := range rankedProjects {
			sum += p.RelevanceScore
		}
		projectScore = clampScore(float64(sum) / float64(len(rankedProjects)))
	}

	role := s.roles.DetectRole(jobDescription)
	w := s.roles.Weights(role)

	total := float64(semanticScore)*w.Semantic +
		float64(skillScore)*w.Skill +
		float64(experienceScore)*w.Experience +
		float64(projectScore)*w.Project

	adjusted := false
	switch {
	case skillScore >= 90 && total < 70:
		total = 70
		adjusted = true
	case skillScore >= 80 && total < 60:
		total = 60
		adjusted = true
	}

	required := append(append([]string{}, gap.Matched...), gap.Missing...)

	return &models.AtsScore{
		TotalScore: clampScore(total),
		Breakdown: models.ScoreBreakdown{
			SemanticMatch:   semanticScore,
			SkillMatch:      skillScore,
			ExperienceMatch: experienceScore,
			ProjectMatch:    projectScore,
		},
		SkillGap: gap,
		Context: models.ScoreContext{
			SkillsMatched:     len(gap.Matched),
			SkillsRequired:    len(required),
			SkillsMissing:     len(gap.Missing),
			ExperienceEntries: len(parsed.Experience),
			ProjectsAnalyzed:  len(rankedProjects),
			ScoreAdjusted:     adjusted,
		},
	}, rankedProjects
}
