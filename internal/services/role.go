package services

import (
	"strings"

	"github.com/nagmanijha/ResumeRev.ai/internal/models"
)

// WeightProfile controls how the component scores blend into the total.
// Every profile sums to 1.
type WeightProfile struct {
	Semantic   float64
	Skill      float64
	Experience float64
	Project    float64
}

var defaultWeights = WeightProfile{Semantic: 0.30, Skill: 0.35, Experience: 0.20, Project: 0.15}

var roleWeights = map[string]WeightProfile{
	"frontend":  {Semantic: 0.25, Skill: 0.35, Experience: 0.15, Project: 0.25},
	"backend":   {Semantic: 0.30, Skill: 0.35, Experience: 0.20, Project: 0.15},
	"fullstack": {Semantic: 0.30, Skill: 0.30, Experience: 0.20, Project: 0.20},
	"devops":    {Semantic: 0.25, Skill: 0.40, Experience: 0.25, Project: 0.10},
	"data":      {Semantic: 0.35, Skill: 0.30, Experience: 0.20, Project: 0.15},
	"mobile":    {Semantic: 0.25, Skill: 0.35, Experience: 0.15, Project: 0.25},
}

// roleFamilies fixes the evaluation order so keyword-count ties always
// resolve to the same family.
var roleFamilies = []string{"frontend", "backend", "fullstack", "devops", "data", "mobile"}

var roleKeywords = map[string][]string{
	"frontend":  {"react", "vue", "angular", "css", "frontend", "front-end", "ui", "ux", "javascript", "typescript"},
	"backend":   {"backend", "back-end", "api", "microservice", "database", "server", "golang", "java", "node"},
	"fullstack": {"fullstack", "full-stack", "full stack"},
	"devops":    {"devops", "kubernetes", "docker", "terraform", "ci/cd", "infrastructure", "sre", "cloud"},
	"data":      {"data scientist", "machine learning", "ml", "data engineer", "analytics", "pandas", "spark", "etl"},
	"mobile":    {"android", "ios", "flutter", "react native", "swift", "kotlin", "mobile"},
}

var industryKeywords = map[string][]string{
	"fintech":    {"fintech", "banking", "payments", "trading", "finance"},
	"healthcare": {"healthcare", "medical", "clinical", "patient", "hipaa"},
	"ecommerce":  {"ecommerce", "e-commerce", "retail", "marketplace", "checkout"},
	"saas":       {"saas", "b2b", "subscription", "enterprise software"},
	"gaming":     {"gaming", "game", "unity", "unreal"},
}

// RoleService classifies the role family of a job description and rates
// how well a resume fits each family.
type RoleService interface {
	DetectRole(jobDescription string) string
	Weights(role string) WeightProfile
	RoleSuitability(parsed *models.ParsedResume) map[string]float64
	IndustryFit(jobDescription, resumeText string) string
}

type roleService struct{}

func NewRoleService() RoleService {
	return &roleService{}
}

// DetectRole picks the family with the most keyword hits. Ties go to
// the earliest family in roleFamilies order.
func (r *roleService) DetectRole(jobDescription string) string {
	lower := strings.ToLower(jobDescription)

	bestRole := "general"
	bestHits := 0
	for _, role := range roleFamilies {
		hits := 0
		for _, kw := range roleKeywords[role] {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits > bestHits {
			bestHits = hits
			bestRole = role
		}
	}
	return bestRole
}

func (r *roleService) Weights(role string) WeightProfile {
	if w, ok := roleWeights[role]; ok {
		return w
	}
	return defaultWeights
}

// RoleSuitability scores the resume against every role family as the
// fraction of that family's keywords found in the resume.
func (r *roleService) RoleSuitability(parsed *models.ParsedResume) map[string]float64 {
	lower := strings.ToLower(parsed.FullText + " " + strings.Join(parsed.Skills, " "))

	suitability := make(map[string]float64, len(roleKeywords))
	for role, keywords := range roleKeywords {
		hits := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		suitability[role] = float64(hits) / float64(len(keywords)) * 100
	}
	return suitability
}

// IndustryFit names the industry both texts share, or "general" when no
// industry vocabulary overlaps.
func (r *roleService) IndustryFit(jobDescription, resumeText string) string {
	jd := strings.ToLower(jobDescription)
	resume := strings.ToLower(resumeText)

	bestIndustry := "general"
	bestHits := 0
	for industry, keywords := range industryKeywords {
		jdHit := false
		resumeHits := 0
		for _, kw := range keywords {
			if strings.Contains(jd, kw) {
				jdHit = true
			}
			if strings.Contains(resume, kw) {
				resumeHits++
			}
		}
		if jdHit && resumeHits > bestHits {
			bestHits = resumeHits
			bestIndustry = industry
		}
	}
	return bestIndustry
}
