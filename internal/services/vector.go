package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"

	"github.com/nagmanijha/ResumeRev.ai/internal/models"
)

// VectorStore keeps one embedding per analyzed resume so recruiters can
// pull up candidates similar to one they already like.
type VectorStore interface {
	InitCollection() error
	UpsertCandidate(ctx context.Context, analysisID, name, filename string, embedding []float32) error
	FindSimilar(ctx context.Context, embedding []float32, excludeAnalysisID string, limit int) ([]models.SimilarCandidate, error)
}

type vectorStore struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewVectorStore(urlStr, apiKey, collectionName string) (VectorStore, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, not the 6333 REST port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &vectorStore{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768,
	}, nil
}

// InitCollection implements VectorStore.
func (v *vectorStore) InitCollection() error {
	ctx := context.Background()

	exists, err := v.client.CollectionExists(ctx, v.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Candidate collection already exists")
		return nil
	}

	err = v.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: v.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     v.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", v.collectionName)
	return nil
}

// UpsertCandidate implements VectorStore. The analysis UUID doubles as
// the point ID so re-analyzing the same resume overwrites the old point.
func (v *vectorStore) UpsertCandidate(ctx context.Context, analysisID, name, filename string, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(analysisID),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"analysis_id": analysisID,
			"name":        name,
			"filename":    filename,
		}),
	}

	_, err := v.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: v.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert candidate point: %w", err)
	}

	return nil
}

// FindSimilar implements VectorStore.
func (v *vectorStore) FindSimilar(ctx context.Context, embedding []float32, excludeAnalysisID string, limit int) ([]models.SimilarCandidate, error) {
	searchResult, err := v.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: v.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          qdrant.PtrOf(uint64(limit + 1)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search candidates: %w", err)
	}

	var results []models.SimilarCandidate
	for _, point := range searchResult {
		candidate := models.SimilarCandidate{Similarity: point.Score}

		if id, ok := point.Payload["analysis_id"]; ok {
			if val, ok := id.GetKind().(*qdrant.Value_StringValue); ok {
				candidate.AnalysisID = val.StringValue
			}
		}
		if candidate.AnalysisID == excludeAnalysisID {
			continue
		}

		if name, ok := point.Payload["name"]; ok {
			if val, ok := name.GetKind().(*qdrant.Value_StringValue); ok {
				candidate.Name = val.StringValue
			}
		}
		if filename, ok := point.Payload["filename"]; ok {
			if val, ok := filename.GetKind().(*qdrant.Value_StringValue); ok {
				candidate.Filename = val.StringValue
			}
		}

		results = append(results, candidate)
		if len(results) == limit {
			break
		}
	}

	return results, nil
}
