package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short", 100, 10)
	if len(chunks) != 1 || chunks[0] != "short" {
		t.Fatalf("expected single chunk, got %v", chunks)
	}
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("a", 50) + strings.Repeat("b", 50)
	chunks := SplitText(text, 60, 20)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Each chunk after the first starts inside the previous chunk.
	first := chunks[0]
	second := chunks[1]
	if !strings.HasPrefix(second, first[len(first)-20:]) {
		t.Errorf("second chunk does not overlap first: %q vs %q", first, second)
	}
}

func TestSplitTextCoversWholeInput(t *testing.T) {
	text := strings.Repeat("x", 95)
	chunks := SplitText(text, 30, 5)

	last := chunks[len(chunks)-1]
	if !strings.HasSuffix(text, last) {
		t.Errorf("last chunk %q is not a suffix of the input", last)
	}

	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	if total < len(text) {
		t.Errorf("chunks cover %d runes, input has %d", total, len(text))
	}
}

func TestSplitTextDegenerateOverlap(t *testing.T) {
	// overlap >= chunkSize must still terminate
	chunks := SplitText(strings.Repeat("y", 40), 10, 10)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
}
