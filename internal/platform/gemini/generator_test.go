package gemini

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/studywise-api/internal/config"
	"github.com/phrazzld/studywise-api/internal/domain"
	"github.com/phrazzld/studywise-api/internal/generation"
)

// newTestGenerator builds a Generator with the prompt template parsed but no
// API client, for exercising the prompt and parse paths.
func newTestGenerator(t *testing.T) *Generator {
	t.Helper()

	tmpl, err := template.New("flashcards").Parse(systemPromptTemplate)
	require.NoError(t, err)

	return &Generator{
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		promptTemplate: tmpl,
		model:          "gemini-2.0-flash",
	}
}

func TestNewGeneratorValidation(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name      string
		logger    *slog.Logger
		cfg       config.LLMConfig
		expectErr error
	}{
		{
			name:   "missing_api_key",
			logger: log,
			cfg: config.LLMConfig{
				ModelName: "gemini-2.0-flash",
			},
			expectErr: generation.ErrInvalidConfig,
		},
		{
			name:   "missing_model_name",
			logger: log,
			cfg: config.LLMConfig{
				GeminiAPIKey: "test-key",
			},
			expectErr: generation.ErrInvalidConfig,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen, err := NewGenerator(ctx, tc.logger, tc.cfg)
			assert.ErrorIs(t, err, tc.expectErr)
			assert.Nil(t, gen)
		})
	}
}

func TestNewGeneratorNilLogger(t *testing.T) {
	gen, err := NewGenerator(context.Background(), nil, config.LLMConfig{
		GeminiAPIKey: "test-key",
		ModelName:    "gemini-2.0-flash",
	})
	assert.Error(t, err)
	assert.Nil(t, gen)
}

func TestBuildSystemPromptEmbedsCount(t *testing.T) {
	g := newTestGenerator(t)

	prompt, err := g.buildSystemPrompt(7)
	require.NoError(t, err)

	assert.Contains(t, prompt, "create exactly 7 flashcards")
	assert.Contains(t, prompt, `"flashcards"`)
	assert.Contains(t, prompt, `"front"`)
	assert.Contains(t, prompt, `"back"`)
}

func TestParseResponse(t *testing.T) {
	g := newTestGenerator(t)

	tests := []struct {
		name      string
		body      string
		expected  []domain.Card
		expectErr error
	}{
		{
			name: "three_cards",
			body: `{"flashcards":[{"front":"A","back":"B"},{"front":"C","back":"D"},{"front":"E","back":"F"}]}`,
			expected: []domain.Card{
				{Front: "A", Back: "B"},
				{Front: "C", Back: "D"},
				{Front: "E", Back: "F"},
			},
		},
		{
			name: "malformed_entries_pass_through",
			body: `{"flashcards":[{"front":"only front"},{"back":"only back"},{}]}`,
			expected: []domain.Card{
				{Front: "only front"},
				{Back: "only back"},
				{},
			},
		},
		{
			name:     "empty_card_list",
			body:     `{"flashcards":[]}`,
			expected: []domain.Card{},
		},
		{
			name:     "missing_flashcards_field",
			body:     `{"cards":[{"front":"A","back":"B"}]}`,
			expected: []domain.Card{},
		},
		{
			name:      "not_json",
			body:      "Sure! Here are your flashcards:",
			expectErr: generation.ErrInvalidResponse,
		},
		{
			name:      "flashcards_not_an_array",
			body:      `{"flashcards":"nope"}`,
			expectErr: generation.ErrInvalidResponse,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cards, err := g.parseResponse(tc.body)

			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				assert.Nil(t, cards)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, cards)
		})
	}
}

func TestGenerateFlashcardsInputValidation(t *testing.T) {
	g := newTestGenerator(t)
	ctx := context.Background()

	_, err := g.GenerateFlashcards(ctx, "", 3)
	assert.ErrorIs(t, err, ErrEmptySourceText)

	_, err = g.GenerateFlashcards(ctx, "Photosynthesis basics", 0)
	assert.ErrorIs(t, err, ErrInvalidCount)

	_, err = g.GenerateFlashcards(ctx, "Photosynthesis basics", -2)
	assert.ErrorIs(t, err, ErrInvalidCount)
}

func TestExtractResponseTextNilResponse(t *testing.T) {
	_, err := extractResponseText(nil)
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)
}
