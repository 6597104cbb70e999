// Package gemini implements the generation interface using Google's
// Gemini API.
package gemini

// promptData represents the data passed to the prompt template
type promptData struct {
	NoteText string
}

// ResponseSchema represents the expected structure of the Gemini API
// response: a JSON object with one questions array.
type ResponseSchema struct {
	Questions []QuestionSchema `json:"questions"`
}

// QuestionSchema represents a single quiz question in the API response
type QuestionSchema struct {
	// Prompt is the question text shown to the student
	Prompt string `json:"prompt"`

	// Options are the answer choices, in display order
	Options []string `json:"options"`

	// Answer is the zero-based index of the correct option
	Answer int `json:"answer"`

	// Explanation optionally justifies the correct answer
	Explanation string `json:"explanation,omitempty"`
}
