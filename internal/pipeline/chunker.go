package pipeline

import (
	"regexp"
	"strings"
)

// DefaultChunkSize bounds one generation request's input.
const DefaultChunkSize = 2000

var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)

// SplitChunks splits normalized text into chunks of at most maxSize
// characters, aligned to sentence boundaries. A single sentence longer than
// maxSize becomes its own oversized chunk rather than being split mid-sentence.
// Empty input yields an empty slice.
func SplitChunks(text string, maxSize int) []string {
	if maxSize <= 0 {
		maxSize = DefaultChunkSize
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	sentences := sentencePattern.FindAllString(text, -1)
	if len(sentences) == 0 {
		// No sentence-terminal punctuation: the whole text is one sentence
		sentences = []string{text}
	}

	var chunks []string
	var buffer strings.Builder
	for _, sentence := range sentences {
		if buffer.Len() > 0 && buffer.Len()+len(sentence) > maxSize {
			chunks = append(chunks, strings.TrimSpace(buffer.String()))
			buffer.Reset()
		}
		buffer.WriteString(sentence)
	}
	if buffer.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(buffer.String()))
	}

	return chunks
}
