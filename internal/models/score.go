package models

// AtsScore is the blended scoring result for one resume against one job
// description. Total and every breakdown value are percentages in [0,100].
type AtsScore struct {
	TotalScore int            `json:"total_score"`
	Breakdown  ScoreBreakdown `json:"breakdown"`
	SkillGap   SkillGap       `json:"skill_gap"`
	Context    ScoreContext   `json:"context"`
}

type ScoreBreakdown struct {
	SemanticMatch   int `json:"semantic_match"`
	SkillMatch      int `json:"skill_match"`
	ExperienceMatch int `json:"experience_match"`
	ProjectMatch    int `json:"project_match"`
}

// SkillGap lists job-description skills found on the resume and those absent
// from it. Matched and Missing are disjoint and together cover every required
// skill.
type SkillGap struct {
	Matched      []string `json:"matched"`
	Missing      []string `json:"missing"`
	MatchPercent float64  `json:"match_percent"`
}

type ScoreContext struct {
	SkillsMatched     int  `json:"skills_matched"`
	SkillsRequired    int  `json:"skills_required"`
	SkillsMissing     int  `json:"skills_missing"`
	ExperienceEntries int  `json:"experience_entries"`
	ProjectsAnalyzed  int  `json:"projects_analyzed"`
	ScoreAdjusted     bool `json:"score_adjusted"`
}

// ContentSignals carries the deterministic writing-quality scores that feed
// the suggestion prompt but are not part of the weighted total.
type ContentSignals struct {
	Achievements   float64 `json:"achievements"`
	ContentQuality float64 `json:"content_quality"`
}

// AnalysisReport is the full /analyze response payload.
type AnalysisReport struct {
	AnalysisID      string             `json:"analysis_id,omitempty"`
	ParsedData      *ParsedResume      `json:"parsed_data"`
	AtsScore        *AtsScore          `json:"ats_score"`
	SkillLevels     map[string]string  `json:"skill_levels"`
	Suggestions     []string           `json:"suggestions"`
	RoleSuitability map[string]float64 `json:"role_suitability"`
	DetectedRole    string             `json:"detected_role"`
	IndustryFit     string             `json:"industry_fit"`
	SeniorityLevel  string             `json:"seniority_level"`
	ContentSignals  *ContentSignals    `json:"content_signals"`
}

// BatchItemResult is one ranked row in a completed batch response.
type BatchItemResult struct {
	ItemID        string   `json:"item_id"`
	Filename      string   `json:"filename"`
	Rank          int      `json:"rank"`
	TotalScore    int      `json:"total_score"`
	SkillScore    int      `json:"skill_score"`
	ExpScore      int      `json:"experience_score"`
	MissingSkills []string `json:"missing_skills"`
	Status        string   `json:"status"`
	ErrorMessage  string   `json:"error_message,omitempty"`
}

type BatchResponse struct {
	BatchID        string            `json:"batch_id"`
	Status         string            `json:"status"`
	ProcessedCount int               `json:"processed_count"`
	Results        []BatchItemResult `json:"results,omitempty"`
	ErrorMessage   string            `json:"error_message,omitempty"`
}

type BatchAcceptedResponse struct {
	BatchID      string `json:"batch_id"`
	Status       string `json:"status"`
	FileCount    int    `json:"file_count"`
	SkippedCount int    `json:"skipped_count,omitempty"`
}

type SimilarCandidate struct {
	AnalysisID string  `json:"analysis_id"`
	Name       string  `json:"name"`
	Filename   string  `json:"filename"`
	Similarity float32 `json:"similarity"`
}
