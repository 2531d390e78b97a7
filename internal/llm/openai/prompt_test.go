package openai

import (
	"strings"
	"testing"
)

func wordsOfLength(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = "word"
	}
	return strings.Join(words, " ")
}

func TestBandForText(t *testing.T) {
	cases := []struct {
		words int
		want  string
	}{
		{0, "short"},
		{499, "short"},
		{500, "medium"},
		{2000, "medium"},
		{2001, "long"},
	}
	for _, tc := range cases {
		if got := BandForText(wordsOfLength(tc.words)); got.Name != tc.want {
			t.Fatalf("BandForText(%d words) = %q, want %q", tc.words, got.Name, tc.want)
		}
	}
}

func TestBuildPromptMediumBandCounts(t *testing.T) {
	prompt := BuildPrompt(wordsOfLength(1000), "english")

	if !strings.Contains(prompt, "10-15 cards") {
		t.Fatalf("prompt missing medium flashcard range:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Exam questions (8 questions)") {
		t.Fatalf("prompt missing medium question count")
	}
	if !strings.Contains(prompt, "in English") {
		t.Fatalf("prompt missing language name")
	}
	if !strings.Contains(prompt, `["True", "False"]`) {
		t.Fatalf("prompt missing english true/false options")
	}
}

func TestBuildPromptArabic(t *testing.T) {
	prompt := BuildPrompt("some text", "arabic")

	if !strings.Contains(prompt, "in Arabic") {
		t.Fatalf("prompt missing Arabic language name")
	}
	if !strings.Contains(prompt, `["صحيح", "خطأ"]`) {
		t.Fatalf("prompt missing arabic true/false options")
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	text := wordsOfLength(600)
	if BuildPrompt(text, "english") != BuildPrompt(text, "english") {
		t.Fatalf("BuildPrompt is not deterministic")
	}
}

func TestBuildPromptTruncatesLongText(t *testing.T) {
	// ~3000 words of 4 chars + separator, well past the character budget.
	text := wordsOfLength(3000)
	prompt := BuildPrompt(text, "english")

	if strings.Contains(prompt, text) {
		t.Fatalf("prompt contains untruncated source text")
	}
	if !strings.Contains(prompt, TruncateText(text)) {
		t.Fatalf("prompt missing truncated source text")
	}
}

func TestBandComputedOnTruncatedText(t *testing.T) {
	// 3000 words raw would be the long band, but the 8000-char cap leaves
	// 1600 four-char words, which lands in the medium band.
	prompt := BuildPrompt(wordsOfLength(3000), "english")
	if !strings.Contains(prompt, "10-15 cards") {
		t.Fatalf("band not computed on truncated text:\n%s", prompt[:200])
	}
}

func TestTruncateText(t *testing.T) {
	short := "short text"
	if got := TruncateText(short); got != short {
		t.Fatalf("TruncateText changed short input")
	}
	long := strings.Repeat("a", maxPromptChars+100)
	if got := TruncateText(long); len(got) != maxPromptChars {
		t.Fatalf("TruncateText length = %d, want %d", len(got), maxPromptChars)
	}
}
