package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerpath/careerpath-api/internal/models"
)

func TestChunkTextShortDocument(t *testing.T) {
	chunker := NewTextChunker()

	chunks := chunker.ChunkText("A short job posting.", 1000, 200)

	require.Len(t, chunks, 1)
	assert.Equal(t, "A short job posting.", chunks[0])
}

func TestChunkTextEmptyDocument(t *testing.T) {
	chunker := NewTextChunker()

	assert.Empty(t, chunker.ChunkText("", 1000, 200))
	assert.Empty(t, chunker.ChunkText("\n\n\n\n", 1000, 200))
}

func TestChunkTextRespectsMaxSize(t *testing.T) {
	chunker := NewTextChunker()

	paragraphs := make([]string, 20)
	for i := range paragraphs {
		paragraphs[i] = strings.Repeat("word ", 20)
	}
	text := strings.Join(paragraphs, "\n\n")

	chunks := chunker.ChunkText(text, 300, 50)

	require.Greater(t, len(chunks), 1)
	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 300+50+1, "chunk %d too large", i)
	}
}

func TestChunkTextSplitsOversizedSentence(t *testing.T) {
	chunker := NewTextChunker()

	// No sentence or paragraph breaks anywhere.
	text := strings.Repeat("x", 1000)
	chunks := chunker.ChunkText(text, 200, 40)

	require.NotEmpty(t, chunks)
	for i, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 200+40+1, "chunk %d too large", i)
	}
}

func TestChunkTextCountsRunes(t *testing.T) {
	chunker := NewTextChunker()

	text := strings.Repeat("héllo wörld. ", 100)
	chunks := chunker.ChunkText(text, 150, 30)

	require.NotEmpty(t, chunks)
	for i, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk), "chunk %d is not valid UTF-8", i)
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 150+30+1, "chunk %d too large", i)
	}
}

func TestChunkTextOverlapCarriesTail(t *testing.T) {
	chunker := NewTextChunker()

	text := strings.Repeat("alpha beta gamma delta. ", 40)
	chunks := chunker.ChunkText(text, 200, 40)

	require.Greater(t, len(chunks), 1)
	tail := chunks[0][len(chunks[0])-40:]
	assert.True(t, strings.HasPrefix(chunks[1], tail))
}

func TestBuildProfileText(t *testing.T) {
	profile := seniorBackendProfile()
	profile.Summary = "Backend engineer focused on reliability."
	profile.Experience = []models.Experience{
		{Title: "Backend Engineer", Company: "Acme", Responsibilities: []string{"Own the billing service"}},
	}
	profile.Certifications = nil

	text := BuildProfileText(profile)

	assert.Contains(t, text, "Summary: Backend engineer focused on reliability.")
	assert.Contains(t, text, "Skills: Python, Django, PostgreSQL")
	assert.Contains(t, text, "Backend Engineer at Acme")
	assert.Contains(t, text, "Career Level: Senior")
	assert.Contains(t, text, "Domain: Backend Development")
}
