package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mascotacare/vetcli/internal/model"
)

// ListPatients returns all patients visible to the current user. The
// result is cached briefly; any write through this client invalidates
// it.
func (c *Client) ListPatients(ctx context.Context) ([]model.Patient, error) {
	if cached, ok := c.cache.Get(cacheKeyPatients); ok {
		return cached.([]model.Patient), nil
	}
	var out []model.Patient
	if err := c.doJSON(ctx, http.MethodGet, "/patients/", nil, &out); err != nil {
		return nil, err
	}
	c.cache.SetDefault(cacheKeyPatients, out)
	return out, nil
}

// GetPatient fetches one patient with medications, doses and notes.
func (c *Client) GetPatient(ctx context.Context, patientID int) (*model.Patient, error) {
	var out model.Patient
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/patients/%d", patientID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	var out model.Patient
	if err := c.doJSON(ctx, http.MethodPost, "/patients/", req, &out); err != nil {
		return nil, err
	}
	c.invalidateLists()
	return &out, nil
}

func (c *Client) DeletePatient(ctx context.Context, patientID int) error {
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/patients/%d", patientID), nil, nil); err != nil {
		return err
	}
	c.invalidateLists()
	return nil
}

// AssignAssistant reassigns the patient's care assistant.
func (c *Client) AssignAssistant(ctx context.Context, patientID, assistantID int) (*model.Patient, error) {
	req := model.UpdatePatientAssistantRequest{AssistantID: assistantID}
	var out model.Patient
	if err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/patients/%d", patientID), req, &out); err != nil {
		return nil, err
	}
	c.invalidateLists()
	return &out, nil
}

// AddMedication prescribes a new course for req.PatientID.
func (c *Client) AddMedication(ctx context.Context, req *model.CreateMedicationRequest) (*model.Medication, error) {
	var out model.Medication
	path := fmt.Sprintf("/patients/%d/medications", req.PatientID)
	if err := c.doJSON(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}
	c.invalidateLists()
	return &out, nil
}

func (c *Client) CancelMedication(ctx context.Context, medicationID int) (*model.Medication, error) {
	var out model.Medication
	path := fmt.Sprintf("/patients/medications/%d/cancel", medicationID)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	c.invalidateLists()
	return &out, nil
}

func (c *Client) CompleteMedication(ctx context.Context, medicationID int) (*model.Medication, error) {
	var out model.Medication
	path := fmt.Sprintf("/patients/medications/%d/complete", medicationID)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	c.invalidateLists()
	return &out, nil
}

// AdministerDose marks a pending dose as administered, with optional
// notes. Eligibility (pending status, grace window) is checked by the
// caller via the treatment package; the backend revalidates.
func (c *Client) AdministerDose(ctx context.Context, doseID int, notes string) (*model.Dose, error) {
	req := model.AdministerDoseRequest{Notes: notes}
	var out model.Dose
	path := fmt.Sprintf("/patients/doses/%d/administer", doseID)
	if err := c.doJSON(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}
	c.invalidateLists()
	return &out, nil
}

// PendingDoses lists the not-yet-administered doses of one patient.
func (c *Client) PendingDoses(ctx context.Context, patientID int) ([]model.Dose, error) {
	var out []model.Dose
	path := fmt.Sprintf("/patients/%d/pending-doses/", patientID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
