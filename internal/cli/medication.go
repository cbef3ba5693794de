package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mascotacare/vetcli/internal/model"
	"github.com/mascotacare/vetcli/internal/treatment"
)

func newMedicationCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "med",
		Short: "Gestión de medicamentos",
	}
	cmd.AddCommand(
		newMedAddCmd(app),
		newMedCancelCmd(app),
		newMedCompleteCmd(app),
		newMedShowCmd(app),
	)
	return cmd
}

func newMedShowCmd(app *App) *cobra.Command {
	var patientID int

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Muestra un tratamiento con todas sus dosis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id de medicamento inválido: %q", args[0])
			}
			p, err := app.API.GetPatient(cmd.Context(), patientID)
			if err != nil {
				return err
			}
			now := time.Now()
			for i := range p.Medications {
				m := &p.Medications[i]
				if m.ID != id {
					continue
				}
				printMedication(cmd.OutOrStdout(), m)
				for _, d := range m.Doses {
					fmt.Fprintf(cmd.OutOrStdout(), "      [%d] %s — %s\n", d.ID, d.ScheduledTime.String(), treatment.StatusLabel(d, now))
				}
				return nil
			}
			return fmt.Errorf("el medicamento %d no pertenece al paciente %d", id, patientID)
		},
	}

	cmd.Flags().IntVar(&patientID, "patient", 0, "id del paciente")
	cmd.MarkFlagRequired("patient")
	return cmd
}

func newMedAddCmd(app *App) *cobra.Command {
	var req model.CreateMedicationRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Prescribe un medicamento a un paciente",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			if req.StartTime == "" {
				req.StartTime = time.Now().Format(model.TimeLayout)
			}
			m, err := app.API.AddMedication(cmd.Context(), &req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Medicamento creado: [%d] %s, %s durante %s (%d dosis)\n",
				m.ID, m.Name, treatment.FrequencyString(m.Frequency),
				treatment.DurationString(m.DurationDays), m.TotalDoses())
			return nil
		},
	}

	cmd.Flags().IntVar(&req.PatientID, "patient", 0, "id del paciente")
	cmd.Flags().StringVar(&req.Name, "name", "", "nombre del medicamento")
	cmd.Flags().StringVar(&req.Dosage, "dosage", "", "dosis (ej: 250mg)")
	cmd.Flags().IntVar(&req.Frequency, "frequency", 24, "horas entre dosis")
	cmd.Flags().IntVar(&req.DurationDays, "days", 7, "duración en días")
	cmd.Flags().StringVar(&req.StartTime, "start", "", "inicio (YYYY-MM-DD HH:MM:SS, por defecto ahora)")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "notas del tratamiento")
	cmd.MarkFlagRequired("patient")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("dosage")
	return cmd
}

func newMedCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancela un tratamiento activo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id de medicamento inválido: %q", args[0])
			}
			m, err := app.API.CancelMedication(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", m.Name, treatment.MedicationStatusLabel(m.Status))
			return nil
		},
	}
}

func newMedCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Marca un tratamiento como completado",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id de medicamento inválido: %q", args[0])
			}
			m, err := app.API.CompleteMedication(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", m.Name, treatment.MedicationStatusLabel(m.Status))
			return nil
		},
	}
}

func newDoseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dose",
		Short: "Consulta y administración de dosis",
	}
	cmd.AddCommand(newDoseListCmd(app), newDoseAdministerCmd(app))
	return cmd
}

func newDoseListCmd(app *App) *cobra.Command {
	var patientID int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista las dosis pendientes de un paciente",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			doses, err := app.API.PendingDoses(cmd.Context(), patientID)
			if err != nil {
				return err
			}
			if len(doses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No hay dosis pendientes")
				return nil
			}
			now := time.Now()
			for _, d := range doses {
				fmt.Fprintf(cmd.OutOrStdout(), "[%d] %s — %s\n", d.ID, d.ScheduledTime.String(), treatment.StatusLabel(d, now))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&patientID, "patient", 0, "id del paciente")
	cmd.MarkFlagRequired("patient")
	return cmd
}

func newDoseAdministerCmd(app *App) *cobra.Command {
	var notes string
	var patientID int

	cmd := &cobra.Command{
		Use:   "administer <id>",
		Short: "Registra la administración de una dosis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id de dosis inválido: %q", args[0])
			}

			// When the patient is known we check eligibility locally so
			// the user gets the same early countdown the backend would
			// enforce.
			if patientID != 0 {
				if err := app.checkDoseEligibility(cmd, patientID, id); err != nil {
					return err
				}
			}

			d, err := app.API.AdministerDose(cmd.Context(), id, notes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dosis %d: %s\n", d.ID, treatment.StatusLabel(*d, time.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "notas de la administración")
	cmd.Flags().IntVar(&patientID, "patient", 0, "id del paciente (activa la comprobación local)")
	return cmd
}

func (a *App) checkDoseEligibility(cmd *cobra.Command, patientID, doseID int) error {
	p, err := a.API.GetPatient(cmd.Context(), patientID)
	if err != nil {
		return err
	}
	now := time.Now()
	for _, m := range p.Medications {
		for _, d := range m.Doses {
			if d.ID != doseID {
				continue
			}
			if !treatment.CanAdministerFor(m, d, now) {
				return fmt.Errorf("la dosis no se puede administrar: %s", treatment.StatusLabel(d, now))
			}
			return nil
		}
	}
	return fmt.Errorf("la dosis %d no pertenece al paciente %d", doseID, patientID)
}
