package model

// Note is a free-text observation attached to a patient. Notes are
// append-only; the backend orders them by creation time.
type Note struct {
	ID        int    `json:"id"`
	Content   string `json:"content"`
	PatientID int    `json:"patient_id"`
	CreatedBy string `json:"created_by"`
	CreatedAt Time   `json:"created_at"`
}

// Patient is a veterinary patient with its treatment history.
type Patient struct {
	ID            int          `json:"id"`
	Name          string       `json:"name"`
	Species       string       `json:"species"`
	AssistantID   int          `json:"assistant_id"`
	AssistantName string       `json:"assistant_name,omitempty"`
	CreatedBy     string       `json:"created_by"`
	CreatedAt     Time         `json:"created_at"`
	UpdatedAt     Time         `json:"updated_at"`
	Medications   []Medication `json:"medications"`
	Notes         []Note       `json:"notes"`
}

// NoteContent is the create-time shape of a note.
type NoteContent struct {
	Content string `json:"content"`
}

// CreatePatientRequest represents patient creation parameters
type CreatePatientRequest struct {
	Name          string        `json:"name" validate:"required"`
	Species       string        `json:"species" validate:"required"`
	AssistantID   int           `json:"assistant_id"`
	AssistantName string        `json:"assistant_name,omitempty"`
	Notes         []NoteContent `json:"notes,omitempty"`
}

// UpdatePatientAssistantRequest reassigns the patient's care assistant.
type UpdatePatientAssistantRequest struct {
	AssistantID int `json:"assistant_id"`
}
