package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/nagmanijha/ResumeRev.ai/internal/models"
	"github.com/nagmanijha/ResumeRev.ai/internal/repositories"
)

// AnalyzerService runs the full analysis pipeline for a single resume.
type AnalyzerService interface {
	Analyze(ctx context.Context, content []byte, filename, jobDescription string) (*models.AnalysisReport, error)
	ScoreResume(ctx context.Context, content []byte, filename, jobDescription string) (*models.ParsedResume, *models.AtsScore, error)
	FindSimilar(ctx context.Context, analysisID uuid.UUID, limit int) ([]models.SimilarCandidate, error)
}

type analyzerService struct {
	parser    ResumeParser
	scorer    ScoringService
	roles     RoleService
	suggester SuggestionService
	repo      repositories.AnalysisRepository
	embedder  Embedder
	vectors   VectorStore
}

func NewAnalyzerService(
	parser ResumeParser,
	scorer ScoringService,
	roles RoleService,
	suggester SuggestionService,
	repo repositories.AnalysisRepository,
	embedder Embedder,
	vectors VectorStore,
) AnalyzerService {
	return &analyzerService{
		parser:    parser,
		scorer:    scorer,
		roles:     roles,
		suggester: suggester,
		repo:      repo,
		embedder:  embedder,
		vectors:   vectors,
	}
}

// Analyze implements AnalyzerService. The report is persisted and the
// resume embedding is pushed to the vector store; a vector store outage
// only costs the similarity feature, not the analysis.
func (a *analyzerService) Analyze(ctx context.Context, content []byte, filename, jobDescription string) (*models.AnalysisReport, error) {
	parsed, score, err := a.ScoreResume(ctx, content, filename, jobDescription)
	if err != nil {
		return nil, err
	}

	report := &models.AnalysisReport{
		ParsedData:      parsed,
		AtsScore:        score,
		SkillLevels:     SkillLevels(parsed),
		Suggestions:     a.suggester.Suggest(ctx, parsed, score, jobDescription),
		RoleSuitability: a.roles.RoleSuitability(parsed),
		DetectedRole:    a.roles.DetectRole(jobDescription),
		IndustryFit:     a.roles.IndustryFit(jobDescription, parsed.FullText),
		SeniorityLevel:  SeniorityLevel(parsed.Experience, parsed.FullText),
		ContentSignals: &models.ContentSignals{
			Achievements:   AchievementsScore(parsed.Experience),
			ContentQuality: ContentQualityScore(parsed.FullText),
		},
	}

	analysisID, err := a.persist(report, filename)
	if err != nil {
		return nil, err
	}
	report.AnalysisID = analysisID.String()

	a.indexCandidate(ctx, report)

	log.Printf("✅ Analysis %s completed with score %d", report.AnalysisID, score.TotalScore)
	return report, nil
}

// ScoreResume runs parsing and scoring only. The batch worker uses this
// directly since batch mode skips suggestions and persistence per item.
func (a *analyzerService) ScoreResume(ctx context.Context, content []byte, filename, jobDescription string) (*models.ParsedResume, *models.AtsScore, error) {
	parsed, err := a.parser.Parse(content, filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse resume %s: %w", filename, err)
	}

	score, rankedProjects := a.scorer.Score(ctx, parsed, jobDescription)
	parsed.Projects = rankedProjects

	return parsed, score, nil
}

func (a *analyzerService) persist(report *models.AnalysisReport, filename string) (uuid.UUID, error) {
	details, err := json.Marshal(report)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to encode analysis details: %w", err)
	}

	analysis := &models.Analysis{
		Filename:   filename,
		Name:       report.ParsedData.Name,
		Email:      report.ParsedData.Contact.Email,
		Phone:      report.ParsedData.Contact.Phone,
		TotalScore: float64(report.AtsScore.TotalScore),
		Details:    details,
		Timestamp:  time.Now(),
	}

	if err := a.repo.Create(analysis, report.ParsedData.Skills); err != nil {
		return uuid.Nil, fmt.Errorf("failed to store analysis: %w", err)
	}
	return analysis.ID, nil
}

func (a *analyzerService) indexCandidate(ctx context.Context, report *models.AnalysisReport) {
	if a.vectors == nil {
		return
	}

	embedding, err := a.embedder.GenerateEmbedding(ctx, truncateForEmbedding(report.ParsedData.FullText))
	if err != nil {
		log.Printf("⚠️ Skipping candidate indexing, embedding failed: %v", err)
		return
	}

	err = a.vectors.UpsertCandidate(ctx, report.AnalysisID, report.ParsedData.Name, report.ParsedData.Filename, embedding)
	if err != nil {
		log.Printf("⚠️ Failed to index candidate %s: %v", report.AnalysisID, err)
	}
}

// FindSimilar implements AnalyzerService. The stored resume text is
// re-embedded to query the vector store.
func (a *analyzerService) FindSimilar(ctx context.Context, analysisID uuid.UUID, limit int) ([]models.SimilarCandidate, error) {
	if a.vectors == nil {
		return nil, fmt.Errorf("similarity search is not configured")
	}

	analysis, err := a.repo.FindByID(analysisID)
	if err != nil {
		return nil, err
	}

	var stored models.AnalysisReport
	if err := json.Unmarshal(analysis.Details, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode stored analysis: %w", err)
	}
	if stored.ParsedData == nil || stored.ParsedData.FullText == "" {
		return nil, fmt.Errorf("analysis %s has no resume text to compare", analysisID)
	}

	embedding, err := a.embedder.GenerateEmbedding(ctx, truncateForEmbedding(stored.ParsedData.FullText))
	if err != nil {
		return nil, fmt.Errorf("failed to embed stored resume: %w", err)
	}

	return a.vectors.FindSimilar(ctx, embedding, analysisID.String(), limit)
}
