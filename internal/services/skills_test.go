package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSkills(t *testing.T) {
	text := "Built microservices in Python and Go, deployed with Docker on AWS. Datastore: PostgreSQL."

	skills := ExtractSkills(text)

	assert.Contains(t, skills, "Python")
	assert.Contains(t, skills, "Go")
	assert.Contains(t, skills, "Docker")
	assert.Contains(t, skills, "AWS")
	assert.Contains(t, skills, "PostgreSQL")
	assert.Contains(t, skills, "Microservices")
}

func TestExtractSkillsAliases(t *testing.T) {
	skills := ExtractSkills("Backend in NodeJS with a REST layer, CI via github-actions")

	assert.Contains(t, skills, "Node.js")
	assert.Contains(t, skills, "Rest Api")
	assert.Contains(t, skills, "GitHub Actions")
}

func TestExtractSkillsPunctuatedNames(t *testing.T) {
	skills := ExtractSkills("Systems programming in C++ and C#, some Node.js")

	assert.Contains(t, skills, "C++")
	assert.Contains(t, skills, "C#")
	assert.Contains(t, skills, "Node.js")
}

func TestExtractSkillsNoSubstringMatches(t *testing.T) {
	// "java" must not be found inside "javascript"
	skills := ExtractSkills("Frontend developer writing JavaScript")

	assert.Contains(t, skills, "JavaScript")
	assert.NotContains(t, skills, "Java")
}

func TestExtractSkillsEmptyText(t *testing.T) {
	assert.Empty(t, ExtractSkills(""))
}

func TestExtractSkillsSorted(t *testing.T) {
	skills := ExtractSkills("Rust and Python and Docker")
	assert.Equal(t, []string{"Docker", "Python", "Rust"}, skills)
}

func TestNormalizeSkill(t *testing.T) {
	assert.Equal(t, "PostgreSQL", NormalizeSkill("postgresql"))
	assert.Equal(t, "CI/CD", NormalizeSkill("CICD"))
	assert.Equal(t, "Machine Learning", NormalizeSkill("machine learning"))
	assert.Equal(t, "Kafka", NormalizeSkill("kafka"))
}
