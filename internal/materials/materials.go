package materials

// Question types emitted by the generation prompt.
const (
	QuestionTypeMCQ         = "mcq"
	QuestionTypeTrueFalse   = "true_false"
	QuestionTypeShortAnswer = "short_answer"
)

// Flashcard is a question/answer pair used for spaced review.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ExamQuestion is a single generated exam item. Options are present for
// mcq and true_false types; CorrectAnswer is the verbatim text of an option.
type ExamQuestion struct {
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// StudyMaterials is the generated bundle for one document.
type StudyMaterials struct {
	Summary       string         `json:"summary"`
	Flashcards    []Flashcard    `json:"flashcards"`
	ExamQuestions []ExamQuestion `json:"examQuestions"`
}
