package extract

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/mascotacare/vetcli/pkg/errors"
)

type stubGenerator struct {
	reply  string
	err    error
	prompt string
}

func (s *stubGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.reply, s.err
}

func newTestExtractor(reply string) (*Extractor, *stubGenerator) {
	gen := &stubGenerator{reply: reply}
	e := NewExtractor(gen, zerolog.Nop())
	e.now = func() time.Time { return anchor }
	return e, gen
}

func TestExtractJSONPrefersFencedBlock(t *testing.T) {
	text := "Aquí está el resultado:\n```json\n{\"name\":\"Luna\"}\n```\ngracias"
	assert.Equal(t, `{"name":"Luna"}`, ExtractJSON(text))

	assert.Equal(t, `{"name":"Luna"}`, ExtractJSON("  {\"name\":\"Luna\"}  "))
}

func TestExtractNormalizesMessyReply(t *testing.T) {
	e, gen := newTestExtractor("```json\n" + `{
		"name": "",
		"species": "Perro",
		"assistant_id": "3",
		"assistant_name": "",
		"notes": ["controlar peso", 7],
		"medications": [{
			"name": "Amoxicilina",
			"dosage": "250mg",
			"frequency": "cada 8 horas",
			"duration_days": "2 semanas",
			"start_time": "mañana a las 9",
			"notes": "con comida"
		}]
	}` + "\n```")

	draft, err := e.Extract(context.Background(), "perro con amoxicilina")
	require.NoError(t, err)

	assert.Equal(t, PlaceholderName, draft.Name)
	assert.Equal(t, "Perro", draft.Species)
	assert.Equal(t, 3, draft.AssistantID)
	assert.Equal(t, PlaceholderAssistant, draft.AssistantName)
	require.Len(t, draft.Notes, 2)
	assert.Equal(t, "controlar peso", draft.Notes[0].Content)
	assert.Equal(t, "", draft.Notes[1].Content)

	require.Len(t, draft.Medications, 1)
	med := draft.Medications[0]
	assert.Equal(t, "Amoxicilina", med.Name)
	assert.Equal(t, 8, med.Frequency)
	assert.Equal(t, 14, med.DurationDays)
	assert.Equal(t, "2024-01-02 09:00:00", med.StartTime)
	assert.Equal(t, "con comida", med.Notes)

	assert.Contains(t, gen.prompt, "perro con amoxicilina")
	assert.Contains(t, gen.prompt, "2024-01-01")
}

func TestExtractRejectsNonJSONReply(t *testing.T) {
	e, _ := newTestExtractor("lo siento, no puedo ayudar con eso")
	_, err := e.Extract(context.Background(), "hola")
	require.Error(t, err)
	assert.Equal(t, apperr.ErrBadResponse, apperr.CodeOf(err))
}

func TestExtractPropagatesGeneratorError(t *testing.T) {
	gen := &stubGenerator{err: assert.AnError}
	e := NewExtractor(gen, zerolog.Nop())
	_, err := e.Extract(context.Background(), "hola")
	assert.ErrorIs(t, err, assert.AnError)
}
