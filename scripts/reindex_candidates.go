package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/nagmanijha/ResumeRev.ai/internal/config"
	"github.com/nagmanijha/ResumeRev.ai/internal/models"
	"github.com/nagmanijha/ResumeRev.ai/internal/repositories"
	"github.com/nagmanijha/ResumeRev.ai/internal/services"
)

// Rebuilds the qdrant candidate collection from analyses already stored
// in postgres. Run after wiping or migrating the vector store.
func main() {
	log.Println("🚀 Starting candidate reindex...")

	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	analysisRepo := repositories.NewAnalysisRepository(db)

	breaker := services.NewAPIBreaker()
	geminiService, err := services.NewGeminiService(cfg, breaker)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	vectorStore, err := services.NewVectorStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}
	if err := vectorStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	ctx := context.Background()

	const pageSize = 50
	successCount := 0
	failCount := 0

	for skip := 0; ; skip += pageSize {
		analyses, err := analysisRepo.FindAll(skip, pageSize)
		if err != nil {
			log.Fatalf("❌ Failed to list analyses: %v", err)
		}
		if len(analyses) == 0 {
			break
		}

		for _, analysis := range analyses {
			var report models.AnalysisReport
			if err := json.Unmarshal(analysis.Details, &report); err != nil || report.ParsedData == nil {
				log.Printf("⚠️ Skipping %s: stored details unreadable", analysis.ID)
				failCount++
				continue
			}

			embedding, err := geminiService.GenerateEmbedding(ctx, report.ParsedData.FullText)
			if err != nil {
				log.Printf("❌ Embedding failed for %s: %v", analysis.ID, err)
				failCount++
				continue
			}

			err = vectorStore.UpsertCandidate(ctx, analysis.ID.String(), analysis.Name, analysis.Filename, embedding)
			if err != nil {
				log.Printf("❌ Upsert failed for %s: %v", analysis.ID, err)
				failCount++
				continue
			}

			successCount++
			log.Printf("✅ Reindexed %s (%s)", analysis.ID, analysis.Name)
		}
	}

	log.Printf("🏁 Done: %d reindexed, %d failed", successCount, failCount)
}
