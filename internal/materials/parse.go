package materials

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse indicates the model completion could not be parsed
// into the required structure after fence stripping.
var ErrMalformedResponse = errors.New("malformed generation response")

// Parse strips enclosing code fences from a model completion, unmarshals it
// and validates the resulting shape.
func Parse(raw string) (StudyMaterials, error) {
	cleaned := StripFences(raw)

	var m StudyMaterials
	if err := json.Unmarshal([]byte(cleaned), &m); err != nil {
		return StudyMaterials{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := m.Validate(); err != nil {
		return StudyMaterials{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return m, nil
}

// StripFences removes an enclosing markdown code fence (with or without a
// language tag) around the response body, if present.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// Drop the fence line, including any language tag such as "json".
		s = s[idx+1:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Validate checks the structural rules for generated study materials.
func (m StudyMaterials) Validate() error {
	if strings.TrimSpace(m.Summary) == "" {
		return errors.New("summary is empty")
	}
	if len(m.Flashcards) == 0 {
		return errors.New("flashcards are empty")
	}
	for i, card := range m.Flashcards {
		if strings.TrimSpace(card.Question) == "" || strings.TrimSpace(card.Answer) == "" {
			return fmt.Errorf("flashcard %d is incomplete", i)
		}
	}
	if len(m.ExamQuestions) == 0 {
		return errors.New("exam questions are empty")
	}
	for i, q := range m.ExamQuestions {
		if err := validateQuestion(q); err != nil {
			return fmt.Errorf("exam question %d: %w", i, err)
		}
	}
	return nil
}

func validateQuestion(q ExamQuestion) error {
	if strings.TrimSpace(q.Question) == "" {
		return errors.New("question text is empty")
	}
	switch q.Type {
	case QuestionTypeMCQ, QuestionTypeTrueFalse:
		if len(q.Options) < 2 {
			return fmt.Errorf("type %s requires options", q.Type)
		}
		if !containsVerbatim(q.Options, q.CorrectAnswer) {
			return fmt.Errorf("correctAnswer %q is not one of the options", q.CorrectAnswer)
		}
	case QuestionTypeShortAnswer:
		if strings.TrimSpace(q.CorrectAnswer) == "" {
			return errors.New("short answer question has no correctAnswer")
		}
	default:
		return fmt.Errorf("unknown question type %q", q.Type)
	}
	return nil
}

func containsVerbatim(options []string, answer string) bool {
	for _, opt := range options {
		if opt == answer {
			return true
		}
	}
	return false
}
