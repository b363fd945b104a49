package services

import (
	"context"
	"fmt"
	"strings"

	"careerpath/careerpath-api/internal/models"
)

// KnowledgeService retrieves career documents (job postings, skills,
// learning resources, certifications) from the vector knowledge base and
// categorizes them for the guidance UI.
type KnowledgeService interface {
	Retrieve(ctx context.Context, query string, profile *models.ResumeProfile, topK int) (*models.RetrieveResponse, error)
}

type knowledgeService struct {
	model         ModelClient
	store         VectorStore
	collection    string
	promptBuilder *PromptBuilder
}

func NewKnowledgeService(model ModelClient, store VectorStore, collection string) KnowledgeService {
	return &knowledgeService{
		model:         model,
		store:         store,
		collection:    collection,
		promptBuilder: NewPromptBuilder(),
	}
}

// Retrieve implements KnowledgeService. When query is empty the retrieval
// query is formatted from the profile instead.
func (k *knowledgeService) Retrieve(ctx context.Context, query string, profile *models.ResumeProfile, topK int) (*models.RetrieveResponse, error) {
	if topK <= 0 {
		topK = 10
	}

	if query == "" {
		query = k.promptBuilder.BuildRetrievalQuery(profile)
	}

	embedding, err := k.model.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed retrieval query: %w", err)
	}

	hits, err := k.store.SearchSimilar(ctx, embedding, "", topK)
	if err != nil {
		return nil, fmt.Errorf("failed to search knowledge base: %w", err)
	}

	results := make([]models.RetrievedDoc, 0, len(hits))
	sources := []string{}
	for _, hit := range hits {
		doc := models.RetrievedDoc{
			Content: hit.Text,
			Score:   hit.Score,
			DocType: hit.DocType,
			Source:  hit.Source,
		}
		results = append(results, doc)
		if hit.Source != "" {
			sources = append(sources, hit.Source)
		}
	}

	return &models.RetrieveResponse{
		Query:        query,
		TotalResults: len(results),
		Results:      results,
		Categorized:  categorizeResults(results),
		Explainability: models.RetrievalExplainability{
			Collection:      k.collection,
			RetrievalMethod: "semantic",
			TopK:            topK,
			Sources:         sources,
		},
	}, nil
}

// categoryRules is an ordered cascade over doc_type metadata first, then
// content keywords; the first matching category wins.
var categoryRules = []struct {
	Category string
	DocTypes []string
	Keywords []string
}{
	{"job_postings", []string{"job", "job_posting"}, []string{"job posting", "position", "hiring"}},
	{"skills", []string{"skill", "skill_guide"}, []string{"skill"}},
	{"learning_resources", []string{"course"}, []string{"learning", "tutorial", "course"}},
	{"certifications", []string{"certification"}, []string{"certified", "certification"}},
}

func categorizeResults(results []models.RetrievedDoc) map[string][]models.RetrievedDoc {
	categorized := map[string][]models.RetrievedDoc{
		"job_postings":       {},
		"skills":             {},
		"learning_resources": {},
		"certifications":     {},
		"other":              {},
	}

	for _, result := range results {
		category := "other"
		content := strings.ToLower(result.Content)

	rules:
		for _, rule := range categoryRules {
			for _, docType := range rule.DocTypes {
				if result.DocType == docType {
					category = rule.Category
					break rules
				}
			}
			for _, keyword := range rule.Keywords {
				if strings.Contains(content, keyword) {
					category = rule.Category
					break rules
				}
			}
		}

		categorized[category] = append(categorized[category], result)
	}

	return categorized
}
