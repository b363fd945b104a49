package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"careerpath/careerpath-api/internal/config"
	"careerpath/careerpath-api/internal/services"
)

// Ingests career knowledge documents (job postings, course catalogs,
// certification guides) into the Qdrant collection so /retrieve and /chat
// have something to cite. Files live under ./knowledge_docs, one
// subdirectory per document type.
func main() {
	log.Println("🚀 Starting knowledge base ingestion...")

	cfg := config.Load()

	if !cfg.ModelEnabled() {
		log.Fatal("❌ GEMINI_API_KEY is required to generate embeddings")
	}

	modelClient, err := services.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	vectorStore, err := services.NewQdrantStore(
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

	textExtractor := services.NewTextExtractor(
		services.NewPDFParserService(),
		services.NewDocxParserService(),
	)
	chunker := services.NewTextChunker()

	ctx := context.Background()

	docTypes := []struct {
		Dir     string
		DocType string
	}{
		{"./knowledge_docs/job_postings", "job_posting"},
		{"./knowledge_docs/skills", "skill_guide"},
		{"./knowledge_docs/courses", "course"},
		{"./knowledge_docs/certifications", "certification"},
	}

	successCount := 0
	failCount := 0

	for _, dt := range docTypes {
		entries, err := os.ReadDir(dt.Dir)
		if err != nil {
			log.Printf("⚠️  Skipping %s: %v", dt.Dir, err)
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}

			path := filepath.Join(dt.Dir, entry.Name())
			log.Printf("\n📄 Processing: %s (%s)", entry.Name(), dt.DocType)

			text, err := textExtractor.ExtractFile(path)
			if err != nil {
				log.Printf("   ❌ Failed to extract text: %v", err)
				failCount++
				continue
			}

			chunks := chunker.ChunkText(text, 1000, 200)
			log.Printf("   ✂️  Created %d chunks", len(chunks))

			stored := 0
			for i, chunk := range chunks {
				embedding, err := modelClient.GenerateEmbedding(ctx, chunk)
				if err != nil {
					log.Printf("   ❌ Failed to generate embedding for chunk %d: %v", i+1, err)
					continue
				}

				docID := fmt.Sprintf("%s_%s_chunk_%d",
					dt.DocType, strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())), i)

				if err := vectorStore.UpsertDocument(ctx, docID, dt.DocType, entry.Name(), chunk, embedding); err != nil {
					log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
					continue
				}
				stored++
			}

			log.Printf("   ✅ Stored %d/%d chunks", stored, len(chunks))
			if stored > 0 {
				successCount++
			} else {
				failCount++
			}
		}
	}

	log.Printf("\n🏁 Ingestion finished: %d documents ingested, %d failed\n", successCount, failCount)
}
