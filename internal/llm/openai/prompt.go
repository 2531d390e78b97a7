package openai

import (
	"fmt"
	"strings"
)

// maxPromptChars bounds the source text included in the prompt.
const maxPromptChars = 8000

// SizeBand holds the adaptive generation counts for a content-length band.
type SizeBand struct {
	Name          string
	FlashcardsMin int
	FlashcardsMax int
	ExamQuestions int
}

var (
	bandShort  = SizeBand{Name: "short", FlashcardsMin: 5, FlashcardsMax: 8, ExamQuestions: 5}
	bandMedium = SizeBand{Name: "medium", FlashcardsMin: 10, FlashcardsMax: 15, ExamQuestions: 8}
	bandLong   = SizeBand{Name: "long", FlashcardsMin: 15, FlashcardsMax: 20, ExamQuestions: 10}
)

// BandForText selects the size band from the word count of the source text.
func BandForText(text string) SizeBand {
	words := len(strings.Fields(text))
	switch {
	case words < 500:
		return bandShort
	case words <= 2000:
		return bandMedium
	default:
		return bandLong
	}
}

// TruncateText bounds the source text to the prompt character budget.
func TruncateText(text string) string {
	if len(text) <= maxPromptChars {
		return text
	}
	return text[:maxPromptChars]
}

// BuildPrompt assembles the generation instruction. Deterministic for
// identical inputs; no side effects.
func BuildPrompt(text, language string) string {
	truncated := TruncateText(text)
	band := BandForText(truncated)
	langName := languageName(language)

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert educational content creator. Analyze the following document and create comprehensive study materials in %s.\n\n", langName)
	fmt.Fprintf(&b, "Document content:\n%s\n\n", truncated)
	b.WriteString("Generate the following study materials (respond ONLY with valid JSON, no markdown formatting):\n\n")
	b.WriteString("1. A summary (1-4 paragraphs based on content length)\n")
	fmt.Fprintf(&b, "2. Flashcards (%d-%d cards - each with \"question\" and \"answer\")\n", band.FlashcardsMin, band.FlashcardsMax)
	fmt.Fprintf(&b, "3. Exam questions (%d questions):\n", band.ExamQuestions)
	b.WriteString("   - Mix of: multiple choice (type \"mcq\"), true/false (type \"true_false\"), and short answer (type \"short_answer\")\n")
	b.WriteString("   - Each question must have: \"type\", \"question\", \"options\" (array for mcq and true_false), \"correctAnswer\", \"explanation\"\n\n")
	b.WriteString("Important rules:\n")
	fmt.Fprintf(&b, "- All content must be in %s\n", langName)
	b.WriteString("- For mcq, provide 4 options as full text strings (NOT letters like A, B, C, D)\n")
	b.WriteString("- CRITICAL: \"correctAnswer\" MUST be the EXACT full text of the correct option from the \"options\" array, NOT a letter reference\n")
	fmt.Fprintf(&b, "- For true/false, options must be %s\n", trueFalseOptions(language))
	b.WriteString("- Explanations should be brief (1-2 sentences) and reference the material\n\n")
	b.WriteString("Return ONLY this JSON structure:\n")
	b.WriteString(`{
  "summary": "...",
  "flashcards": [{"question": "...", "answer": "..."}],
  "examQuestions": [
    {
      "type": "mcq",
      "question": "What is the main purpose of X?",
      "options": ["Full text of option 1", "Full text of option 2", "Full text of option 3", "Full text of option 4"],
      "correctAnswer": "Full text of option 1",
      "explanation": "Brief explanation here"
    }
  ]
}`)
	return b.String()
}

func languageName(language string) string {
	if strings.EqualFold(strings.TrimSpace(language), "arabic") {
		return "Arabic"
	}
	return "English"
}

func trueFalseOptions(language string) string {
	if strings.EqualFold(strings.TrimSpace(language), "arabic") {
		return `["صحيح", "خطأ"]`
	}
	return `["True", "False"]`
}
