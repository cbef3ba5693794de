package model

type MedicationStatus string

const (
	MedicationStatusActive    MedicationStatus = "active"
	MedicationStatusCompleted MedicationStatus = "completed"
	MedicationStatusCancelled MedicationStatus = "cancelled"
)

type DoseStatus string

const (
	DoseStatusPending      DoseStatus = "pending"
	DoseStatusAdministered DoseStatus = "administered"
	DoseStatusMissed       DoseStatus = "missed"
)

// Dose is one scheduled administration event of a medication. Status
// transitions are one-way: pending doses become administered (user
// action) or missed (server side); both are terminal.
type Dose struct {
	ID                 int        `json:"id"`
	MedicationID       int        `json:"medication_id"`
	ScheduledTime      Time       `json:"scheduled_time"`
	Status             DoseStatus `json:"status"`
	AdministrationTime *Time      `json:"administration_time,omitempty"`
	AdministeredBy     *int       `json:"administered_by,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	NotificationSent   bool       `json:"notification_sent"`
}

// Medication is a prescribed treatment course for a patient.
type Medication struct {
	ID               int              `json:"id"`
	PatientID        int              `json:"patient_id"`
	Name             string           `json:"name"`
	Dosage           string           `json:"dosage"`
	Frequency        int              `json:"frequency"`
	StartTime        Time             `json:"start_time"`
	DurationDays     int              `json:"duration_days"`
	Status           MedicationStatus `json:"status"`
	NextDoseTime     Time             `json:"next_dose_time"`
	Completed        bool             `json:"completed"`
	CompletedAt      *Time            `json:"completed_at,omitempty"`
	CompletedBy      *int             `json:"completed_by,omitempty"`
	CreatedAt        Time             `json:"created_at"`
	NotificationSent bool             `json:"notification_sent"`
	Doses            []Dose           `json:"doses"`
}

// TotalDoses derives the full course length from duration and frequency.
func (m *Medication) TotalDoses() int {
	if m.Frequency <= 0 {
		return 0
	}
	return m.DurationDays * 24 / m.Frequency
}

// CreateMedicationRequest represents medication creation parameters.
// StartTime uses the canonical local format.
type CreateMedicationRequest struct {
	PatientID    int    `json:"patient_id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Dosage       string `json:"dosage" validate:"required"`
	Frequency    int    `json:"frequency" validate:"required,min=1"`
	DurationDays int    `json:"duration_days" validate:"required,min=1"`
	StartTime    string `json:"start_time" validate:"required"`
	Notes        string `json:"notes,omitempty"`
}

// AdministerDoseRequest carries optional administration notes.
type AdministerDoseRequest struct {
	Notes string `json:"notes,omitempty"`
}
