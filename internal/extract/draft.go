package extract

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mascotacare/vetcli/internal/model"
	apperr "github.com/mascotacare/vetcli/pkg/errors"
)

var validate = validator.New()

// MedicationDraft is an editable, not-yet-submitted medication course.
type MedicationDraft struct {
	Name         string `validate:"required"`
	Dosage       string `validate:"required"`
	Frequency    int    `validate:"min=1"`
	DurationDays int    `validate:"min=1"`
	StartTime    string `validate:"required"`
	Notes        string
}

// PatientDraft is the staging record between extraction and creation.
// The user reviews and edits it; nothing reaches the backend until
// Commit.
type PatientDraft struct {
	Name          string `validate:"required"`
	Species       string `validate:"required"`
	AssistantID   int
	AssistantName string
	Notes         []model.NoteContent
	Medications   []MedicationDraft `validate:"dive"`
}

// Commit validates the draft and produces the backend payloads. Blank
// notes are dropped; medication requests come back without a patient id
// since the patient does not exist yet.
func (d *PatientDraft) Commit() (*model.CreatePatientRequest, []model.CreateMedicationRequest, error) {
	if err := validate.Struct(d); err != nil {
		return nil, nil, apperr.Validation("el borrador está incompleto", err)
	}

	req := &model.CreatePatientRequest{
		Name:    d.Name,
		Species: d.Species,
	}
	if d.AssistantID != 0 {
		req.AssistantID = d.AssistantID
	}
	if d.AssistantName != "" {
		req.AssistantName = d.AssistantName
	}
	for _, n := range d.Notes {
		if strings.TrimSpace(n.Content) != "" {
			req.Notes = append(req.Notes, n)
		}
	}

	meds := make([]model.CreateMedicationRequest, 0, len(d.Medications))
	for _, m := range d.Medications {
		meds = append(meds, model.CreateMedicationRequest{
			Name:         m.Name,
			Dosage:       m.Dosage,
			Frequency:    m.Frequency,
			DurationDays: m.DurationDays,
			StartTime:    m.StartTime,
			Notes:        m.Notes,
		})
	}
	return req, meds, nil
}
