package extract

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	apperr "github.com/mascotacare/vetcli/pkg/errors"
)

// Placeholder values for records the model could not fill.
const (
	PlaceholderName      = "Paciente sin nombre"
	PlaceholderSpecies   = "Especie sin determinar"
	PlaceholderAssistant = "Sin Asistente"
)

// TextGenerator produces free text for a prompt. Satisfied by
// genai.Client.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Extractor turns free-form Spanish intake text into an editable
// patient draft.
type Extractor struct {
	gen TextGenerator
	log zerolog.Logger
	now func() time.Time
}

func NewExtractor(gen TextGenerator, log zerolog.Logger) *Extractor {
	return &Extractor{gen: gen, log: log.With().Str("component", "extractor").Logger(), now: time.Now}
}

// rawPatient is the tolerant wire shape: numeric fields may arrive as
// text and note entries in either form.
type rawPatient struct {
	Name          string            `json:"name"`
	Species       string            `json:"species"`
	AssistantID   RawField          `json:"assistant_id"`
	AssistantName string            `json:"assistant_name"`
	Notes         []json.RawMessage `json:"notes"`
	Medications   []rawMedication   `json:"medications"`
}

type rawMedication struct {
	Name         string   `json:"name"`
	Dosage       string   `json:"dosage"`
	Frequency    RawField `json:"frequency"`
	DurationDays RawField `json:"duration_days"`
	StartTime    RawField `json:"start_time"`
	Notes        RawField `json:"notes"`
}

var jsonFence = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// ExtractJSON pulls the first fenced JSON block out of a model reply,
// falling back to the whole body.
func ExtractJSON(text string) string {
	if m := jsonFence.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return strings.TrimSpace(text)
}

// Extract runs the model over the user's message and normalizes the
// reply into a draft. Malformed model output is a bad-response error;
// individual odd fields are repaired with defaults instead of failing.
func (e *Extractor) Extract(ctx context.Context, message string) (*PatientDraft, error) {
	text, err := e.gen.GenerateText(ctx, BuildPrompt(e.now(), message))
	if err != nil {
		return nil, err
	}

	var raw rawPatient
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &raw); err != nil {
		e.log.Error().Err(err).Msg("model reply is not valid JSON")
		return nil, apperr.BadResponse("no se pudo interpretar la respuesta de la IA", err)
	}

	return e.normalize(raw), nil
}

func (e *Extractor) normalize(raw rawPatient) *PatientDraft {
	draft := &PatientDraft{
		Name:          raw.Name,
		Species:       raw.Species,
		AssistantID:   coerceAssistantID(raw.AssistantID),
		AssistantName: raw.AssistantName,
		Notes:         coerceNotes(raw.Notes),
	}
	if draft.Name == "" {
		draft.Name = PlaceholderName
	}
	if draft.Species == "" {
		draft.Species = PlaceholderSpecies
	}
	if draft.AssistantName == "" {
		draft.AssistantName = PlaceholderAssistant
	}

	now := e.now()
	for _, m := range raw.Medications {
		start := ResolveStartTime(m.StartTime.AsText(), now)
		draft.Medications = append(draft.Medications, MedicationDraft{
			Name:         m.Name,
			Dosage:       m.Dosage,
			Frequency:    CoerceFrequency(m.Frequency),
			DurationDays: CoerceDuration(m.DurationDays),
			StartTime:    FormatLocal(start),
			Notes:        m.Notes.AsText(),
		})
	}
	return draft
}

func coerceAssistantID(f RawField) int {
	if f.Number != nil {
		return int(*f.Number)
	}
	if f.Text != nil {
		if m := leadingDigits.FindStringSubmatch(*f.Text); m != nil {
			n, _ := strconv.Atoi(m[1])
			return n
		}
	}
	return 0
}
