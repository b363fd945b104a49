package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerpath/careerpath-api/internal/models"
)

type fakeVectorStore struct {
	hits      []SearchResult
	searchErr error
	upserts   []string
}

func (f *fakeVectorStore) InitCollection() error { return nil }

func (f *fakeVectorStore) UpsertDocument(ctx context.Context, docID, docType, source, text string, embedding []float32) error {
	f.upserts = append(f.upserts, docID)
	return nil
}

func (f *fakeVectorStore) SearchSimilar(ctx context.Context, queryEmbedding []float32, docType string, limit int) ([]SearchResult, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.hits, nil
}

func (f *fakeVectorStore) DeleteDocument(ctx context.Context, docID string) error { return nil }

func TestRetrieveWithExplicitQuery(t *testing.T) {
	store := &fakeVectorStore{
		hits: []SearchResult{
			{ID: "doc-1", Score: 0.91, Text: "Senior Backend Engineer position, hiring now.", DocType: "job_posting", Source: "initech.txt"},
			{ID: "doc-2", Score: 0.77, Text: "A hands-on course on distributed systems.", DocType: "course", Source: "catalog.pdf"},
		},
	}
	knowledge := NewKnowledgeService(&fakeModelClient{embedding: []float32{0.1, 0.2}}, store, "careerpath_knowledge")

	result, err := knowledge.Retrieve(context.Background(), "backend roles", nil, 5)
	require.NoError(t, err)

	assert.Equal(t, "backend roles", result.Query)
	assert.Equal(t, 2, result.TotalResults)
	assert.Len(t, result.Categorized["job_postings"], 1)
	assert.Len(t, result.Categorized["learning_resources"], 1)
	assert.Equal(t, "careerpath_knowledge", result.Explainability.Collection)
	assert.Equal(t, "semantic", result.Explainability.RetrievalMethod)
	assert.Equal(t, []string{"initech.txt", "catalog.pdf"}, result.Explainability.Sources)
}

func TestRetrieveDerivesQueryFromProfile(t *testing.T) {
	store := &fakeVectorStore{}
	knowledge := NewKnowledgeService(&fakeModelClient{embedding: []float32{0.1}}, store, "careerpath_knowledge")

	result, err := knowledge.Retrieve(context.Background(), "", seniorBackendProfile(), 0)
	require.NoError(t, err)

	assert.Contains(t, result.Query, "Python")
	assert.Contains(t, result.Query, "Senior")
	assert.Zero(t, result.TotalResults)
	assert.NotNil(t, result.Results)
}

func TestRetrievePropagatesEmbeddingError(t *testing.T) {
	knowledge := NewKnowledgeService(&fakeModelClient{embedErr: fmt.Errorf("quota exceeded")}, &fakeVectorStore{}, "careerpath_knowledge")

	_, err := knowledge.Retrieve(context.Background(), "backend roles", nil, 5)
	assert.Error(t, err)
}

func TestCategorizeResults(t *testing.T) {
	results := []models.RetrievedDoc{
		{Content: "We are hiring a platform engineer.", DocType: "job_posting"},
		{Content: "Kubernetes skill guide for operators.", DocType: "skill_guide"},
		{Content: "This tutorial walks through Terraform basics.", DocType: ""},
		{Content: "Become AWS certified in 90 days.", DocType: "certification"},
		{Content: "Quarterly market commentary.", DocType: ""},
	}

	categorized := categorizeResults(results)

	assert.Len(t, categorized["job_postings"], 1)
	assert.Len(t, categorized["skills"], 1)
	assert.Len(t, categorized["learning_resources"], 1)
	assert.Len(t, categorized["certifications"], 1)
	assert.Len(t, categorized["other"], 1)
}
