package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mascotacare/vetcli/internal/model"
)

func newPatientCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patient",
		Short: "Consulta y gestión de pacientes",
	}
	cmd.AddCommand(
		newPatientListCmd(app),
		newPatientShowCmd(app),
		newPatientCreateCmd(app),
		newPatientDeleteCmd(app),
		newPatientAssignCmd(app),
	)
	return cmd
}

func newPatientListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lista los pacientes agrupados por especie",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			patients, err := app.API.ListPatients(cmd.Context())
			if err != nil {
				return err
			}
			printPatientList(cmd.OutOrStdout(), patients)
			return nil
		},
	}
}

func newPatientShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Muestra un paciente con sus tratamientos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id de paciente inválido: %q", args[0])
			}
			p, err := app.API.GetPatient(cmd.Context(), id)
			if err != nil {
				return err
			}
			printPatient(cmd.OutOrStdout(), p)
			return nil
		},
	}
}

func newPatientCreateCmd(app *App) *cobra.Command {
	var req model.CreatePatientRequest
	var notes []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Registra un paciente nuevo",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			for _, n := range notes {
				req.Notes = append(req.Notes, model.NoteContent{Content: n})
			}
			p, err := app.API.CreatePatient(cmd.Context(), &req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Paciente creado: [%d] %s\n", p.ID, p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "nombre del paciente")
	cmd.Flags().StringVar(&req.Species, "species", "", "especie")
	cmd.Flags().IntVar(&req.AssistantID, "assistant-id", 0, "id del asistente asignado")
	cmd.Flags().StringArrayVar(&notes, "note", nil, "nota inicial (repetible)")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("species")
	return cmd
}

func newPatientDeleteCmd(app *App) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Elimina un paciente",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			if !confirmed {
				return fmt.Errorf("la eliminación es definitiva; repite con --yes para confirmar")
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id de paciente inválido: %q", args[0])
			}
			if err := app.API.DeletePatient(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Paciente %d eliminado\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirma la eliminación")
	return cmd
}

func newPatientAssignCmd(app *App) *cobra.Command {
	var assistantID int

	cmd := &cobra.Command{
		Use:   "assign <id>",
		Short: "Reasigna el asistente de un paciente",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id de paciente inválido: %q", args[0])
			}
			p, err := app.API.AssignAssistant(cmd.Context(), id, assistantID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Asistente de %s actualizado\n", p.Name)
			return nil
		},
	}

	cmd.Flags().IntVar(&assistantID, "assistant-id", 0, "id del nuevo asistente")
	cmd.MarkFlagRequired("assistant-id")
	return cmd
}
