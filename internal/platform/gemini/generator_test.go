package gemini

import (
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notewell/notewell-api/internal/generation"
)

// newPromptOnlyGenerator builds a Generator without a live client, enough
// for exercising prompt rendering.
func newPromptOnlyGenerator(t *testing.T) *Generator {
	t.Helper()
	tmpl, err := template.New("quiz").Parse(defaultPromptTemplate)
	require.NoError(t, err)
	return &Generator{promptTemplate: tmpl}
}

func TestBuildPromptIncludesNoteText(t *testing.T) {
	t.Parallel()

	g := newPromptOnlyGenerator(t)

	prompt, err := g.buildPrompt("Mitochondria are the powerhouse of the cell.")
	require.NoError(t, err)
	assert.Contains(t, prompt, "Mitochondria are the powerhouse of the cell.")
	assert.Contains(t, prompt, `"questions"`)
}

func TestBuildPromptRejectsEmptyText(t *testing.T) {
	t.Parallel()

	g := newPromptOnlyGenerator(t)

	_, err := g.buildPrompt("")
	assert.ErrorIs(t, err, generation.ErrEmptyNoteText)
}

func TestParseResponseValid(t *testing.T) {
	t.Parallel()

	response := &ResponseSchema{
		Questions: []QuestionSchema{
			{
				Prompt:      "What produces most of a cell's ATP?",
				Options:     []string{"Nucleus", "Mitochondria", "Ribosome"},
				Answer:      1,
				Explanation: "Mitochondria run cellular respiration.",
			},
		},
	}

	questions, err := parseResponse(response)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, 1, questions[0].Answer)
	assert.Equal(t, "Mitochondria run cellular respiration.", questions[0].Explanation)
}

func TestParseResponseRejectsEmpty(t *testing.T) {
	t.Parallel()

	_, err := parseResponse(nil)
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)

	_, err = parseResponse(&ResponseSchema{})
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)
}

func TestParseResponseRejectsInvalidQuestion(t *testing.T) {
	t.Parallel()

	response := &ResponseSchema{
		Questions: []QuestionSchema{
			{Prompt: "p", Options: []string{"a", "b"}, Answer: 5},
		},
	}

	_, err := parseResponse(response)
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)
}
