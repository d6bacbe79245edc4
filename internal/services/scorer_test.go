package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nagmanijha/ResumeRev.ai/internal/models"
)

type fakeSemantic struct {
	matchScore int
	expScore   int
	projScore  int
}

func (f *fakeSemantic) MatchScore(ctx context.Context, resumeText, jobDescription string) int {
	return f.matchScore
}

func (f *fakeSemantic) ExperienceMatch(ctx context.Context, experiences []models.Experience, jobDescription string) int {
	return f.expScore
}

func (f *fakeSemantic) ProjectRelevance(ctx context.Context, projects []models.Project, jobDescription string) []models.Project {
	out := make([]models.Project, len(projects))
	copy(out, projects)
	for i := range out {
		out[i].RelevanceScore = f.projScore
	}
	return out
}

type fakeMatcher struct {
	gap models.SkillGap
}

func (f *fakeMatcher) Match(ctx context.Context, resumeSkills []string, jobDescription string) models.SkillGap {
	return f.gap
}

func newScorer(sem *fakeSemantic, gap models.SkillGap) ScoringService {
	return NewScoringService(sem, &fakeMatcher{gap: gap}, NewRoleService())
}

func TestScoreBlendsComponents(t *testing.T) {
	sem := &fakeSemantic{matchScore: 80, expScore: 60, projScore: 40}
	gap := models.SkillGap{
		Matched:      []string{"Go"},
		Missing:      []string{"Rust"},
		MatchPercent: 50,
	}
	scorer := newScorer(sem, gap)

	parsed := &models.ParsedResume{
		Skills:   []string{"Go"},
		Projects: []models.Project{{Title: "Thing"}},
	}

	score, ranked := scorer.Score(context.Background(), parsed, "a generic position")

	// default weights: 80*.30 + 50*.35 + 60*.20 + 40*.15 = 59.5
	assert.Equal(t, 60, score.TotalScore)
	assert.Equal(t, 80, score.Breakdown.SemanticMatch)
	assert.Equal(t, 50, score.Breakdown.SkillMatch)
	assert.Equal(t, 60, score.Breakdown.ExperienceMatch)
	assert.Equal(t, 40, score.Breakdown.ProjectMatch)
	assert.Len(t, ranked, 1)
}

func TestScoreFloorHighSkillMatch(t *testing.T) {
	sem := &fakeSemantic{matchScore: 10, expScore: 10, projScore: 0}
	gap := models.SkillGap{Matched: []string{"Go"}, MatchPercent: 95}
	scorer := newScorer(sem, gap)

	score, _ := scorer.Score(context.Background(), &models.ParsedResume{}, "a generic position")

	// blended total would be well under 70, the floor lifts it
	assert.Equal(t, 70, score.TotalScore)
	assert.True(t, score.Context.ScoreAdjusted)
}

func TestScoreFloorMediumSkillMatch(t *testing.T) {
	sem := &fakeSemantic{matchScore: 10, expScore: 10, projScore: 0}
	gap := models.SkillGap{Matched: []string{"Go"}, MatchPercent: 85}
	scorer := newScorer(sem, gap)

	score, _ := scorer.Score(context.Background(), &models.ParsedResume{}, "a generic position")

	assert.Equal(t, 60, score.TotalScore)
	assert.True(t, score.Context.ScoreAdjusted)
}

func TestScoreNoAdjustmentWhenAboveFloor(t *testing.T) {
	sem := &fakeSemantic{matchScore: 90, expScore: 90, projScore: 90}
	gap := models.SkillGap{Matched: []string{"Go"}, MatchPercent: 95}
	scorer := newScorer(sem, gap)

	score, _ := scorer.Score(context.Background(), &models.ParsedResume{}, "a generic position")

	assert.False(t, score.Context.ScoreAdjusted)
	assert.GreaterOrEqual(t, score.TotalScore, 90)
}

func TestScoreContextCounts(t *testing.T) {
	sem := &fakeSemantic{matchScore: 50, expScore: 50, projScore: 50}
	gap := models.SkillGap{
		Matched:      []string{"Go", "Docker"},
		Missing:      []string{"Rust"},
		MatchPercent: 66.7,
	}
	scorer := newScorer(sem, gap)

	parsed := &models.ParsedResume{
		Experience: []models.Experience{{Title: "Engineer"}},
		Projects:   []models.Project{{Title: "A"}, {Title: "B"}},
	}

	score, _ := scorer.Score(context.Background(), parsed, "a generic position")

	assert.Equal(t, 2, score.Context.SkillsMatched)
	assert.Equal(t, 3, score.Context.SkillsRequired)
	assert.Equal(t, 1, score.Context.SkillsMissing)
	assert.Equal(t, 1, score.Context.ExperienceEntries)
	assert.Equal(t, 2, score.Context.ProjectsAnalyzed)
}

func TestScoreResultWithinBounds(t *testing.T) {
	sem := &fakeSemantic{matchScore: 100, expScore: 100, projScore: 100}
	gap := models.SkillGap{MatchPercent: 100}
	scorer := newScorer(sem, gap)

	score, _ := scorer.Score(context.Background(), &models.ParsedResume{}, "a generic position")

	assert.LessOrEqual(t, score.TotalScore, 100)
	assert.GreaterOrEqual(t, score.TotalScore, 0)
}
