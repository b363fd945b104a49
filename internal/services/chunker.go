package services

import (
	"strings"
	"unicode/utf8"
)

// TextChunker splits knowledge-base documents into overlapping chunks
// before embedding, so retrieval hits stay small enough to quote in
// prompts and in the transparency panel.
type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText implements TextChunker. Paragraphs are packed into chunks of
// at most maxChunkSize characters; paragraphs that are themselves too long
// get split on sentence boundaries.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	var pieces []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if utf8.RuneCountInString(para) <= maxChunkSize {
			pieces = append(pieces, para)
			continue
		}
		for _, sentence := range splitIntoSentences(para) {
			if utf8.RuneCountInString(sentence) > maxChunkSize {
				pieces = append(pieces, splitRunes(sentence, maxChunkSize)...)
			} else {
				pieces = append(pieces, sentence)
			}
		}
	}

	// All sizes are counted in runes so multi-byte text chunks the same as
	// ASCII.
	var chunks []string
	var current strings.Builder
	currentRunes := 0

	flush := func() {
		if currentRunes == 0 {
			return
		}
		chunks = append(chunks, current.String())
		current.Reset()
		currentRunes = 0
		if overlap > 0 {
			tail := lastNRunes(chunks[len(chunks)-1], overlap)
			current.WriteString(tail)
			currentRunes = utf8.RuneCountInString(tail)
		}
	}

	for _, piece := range pieces {
		pieceRunes := utf8.RuneCountInString(piece)
		if currentRunes+pieceRunes+1 > maxChunkSize {
			flush()
		}
		if currentRunes > 0 {
			current.WriteString(" ")
			currentRunes++
		}
		current.WriteString(piece)
		currentRunes += pieceRunes
	}

	if currentRunes > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

func splitIntoSentences(text string) []string {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var result []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

// splitRunes hard-splits text into slices of at most size runes. Used for
// sentences that are themselves longer than a chunk.
func splitRunes(text string, size int) []string {
	runes := []rune(text)
	var out []string
	for len(runes) > size {
		out = append(out, string(runes[:size]))
		runes = runes[size:]
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}

func firstNRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[:n])
}

func lastNRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}
