package pipeline

import (
	"strings"
	"testing"
)

func TestSplitChunksEmptyInput(t *testing.T) {
	if chunks := SplitChunks("", 2000); len(chunks) != 0 {
		t.Errorf("empty input: got %d chunks, want 0", len(chunks))
	}
	if chunks := SplitChunks("   \n\t  ", 2000); len(chunks) != 0 {
		t.Errorf("whitespace-only input: got %d chunks, want 0", len(chunks))
	}
}

func TestSplitChunksSingleSentence(t *testing.T) {
	chunks := SplitChunks("The mitochondria is the powerhouse of the cell.", 2000)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0] != "The mitochondria is the powerhouse of the cell." {
		t.Errorf("unexpected chunk: %q", chunks[0])
	}
}

func TestSplitChunksRespectsMaxSize(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 50; i++ {
		sb.WriteString("This sentence is repeated to build a long document for chunking. ")
	}
	text := sb.String()

	chunks := SplitChunks(text, 200)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk) > 200 {
			t.Errorf("chunk %d exceeds max size: %d chars", i, len(chunk))
		}
	}
}

func TestSplitChunksPreservesSentenceSequence(t *testing.T) {
	text := "First sentence here. Second one follows! Third asks a question? Fourth wraps up."
	chunks := SplitChunks(text, 40)

	var joined strings.Builder
	for _, chunk := range chunks {
		joined.WriteString(chunk)
		joined.WriteString(" ")
	}

	normalize := func(s string) string {
		return strings.Join(strings.Fields(s), " ")
	}
	if normalize(joined.String()) != normalize(text) {
		t.Errorf("chunks do not reconstruct input:\ngot  %q\nwant %q", joined.String(), text)
	}
}

func TestSplitChunksOversizedSentence(t *testing.T) {
	long := strings.Repeat("word ", 100) + "end."
	chunks := SplitChunks(long, 50)
	if len(chunks) != 1 {
		t.Fatalf("oversized single sentence should be one chunk, got %d", len(chunks))
	}
	if len(chunks[0]) <= 50 {
		t.Errorf("expected oversized chunk, got %d chars", len(chunks[0]))
	}
}

func TestSplitChunksNoTerminalPunctuation(t *testing.T) {
	chunks := SplitChunks("fragment without terminal punctuation", 2000)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0] != "fragment without terminal punctuation" {
		t.Errorf("unexpected chunk: %q", chunks[0])
	}
}
