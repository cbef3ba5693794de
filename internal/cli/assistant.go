package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mascotacare/vetcli/internal/extract"
	"github.com/mascotacare/vetcli/internal/model"
)

// chatMessage is one transcript entry of the assistant session.
type chatMessage struct {
	ID   string
	Role string // "user" or "assistant"
	Text string
	At   time.Time
}

func newAssistantCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "asistente",
		Short: "Registro conversacional de pacientes con ayuda de IA",
		Long: "Describe el paciente y sus medicamentos en lenguaje natural. " +
			"El asistente extrae un borrador que puedes revisar antes de guardar; " +
			"nada se envía al servidor sin confirmación.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireLogin(); err != nil {
				return err
			}
			return runAssistant(cmd, app)
		},
	}
}

func runAssistant(cmd *cobra.Command, app *App) error {
	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())
	var transcript []chatMessage
	var draft *extract.PatientDraft

	say := func(text string) {
		transcript = append(transcript, chatMessage{
			ID:   uuid.NewString(),
			Role: "assistant",
			Text: text,
			At:   time.Now(),
		})
		fmt.Fprintln(out, text)
	}

	say("Hola, describe el paciente y sus medicamentos. Comandos: ver, editar, med, nota, guardar, descartar, salir.")

	for {
		fmt.Fprint(out, "> ")
		if !in.Scan() {
			if err := in.Err(); err != nil && err != io.EOF {
				return err
			}
			return nil
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		transcript = append(transcript, chatMessage{
			ID:   uuid.NewString(),
			Role: "user",
			Text: line,
			At:   time.Now(),
		})

		switch strings.ToLower(line) {
		case "salir", "exit":
			return nil

		case "ver":
			if draft == nil {
				say("No hay ningún borrador todavía.")
				continue
			}
			printDraft(out, draft)

		case "descartar":
			if draft == nil {
				say("No hay ningún borrador que descartar.")
				continue
			}
			draft = nil
			say("Borrador descartado.")

		case "guardar":
			if draft == nil {
				say("No hay ningún borrador; describe primero el paciente.")
				continue
			}
			if err := app.commitDraft(cmd.Context(), draft); err != nil {
				say("No se pudo guardar: " + err.Error())
				continue
			}
			say(fmt.Sprintf("Paciente %s guardado.", draft.Name))
			draft = nil

		default:
			if isEditCommand(line) {
				if draft == nil {
					say("No hay ningún borrador que editar; describe primero el paciente.")
					continue
				}
				say(applyEdit(draft, line))
				continue
			}

			d, err := app.Extract.Extract(cmd.Context(), line)
			if err != nil {
				say("No pude procesar el mensaje: " + err.Error())
				continue
			}
			draft = d
			printDraft(out, draft)
			say("Revisa el borrador: 'editar', 'med' y 'nota' lo modifican, 'guardar' lo confirma, 'descartar' lo elimina.")
		}
	}
}

func printDraft(w io.Writer, d *extract.PatientDraft) {
	fmt.Fprintf(w, "Borrador:\n  Paciente: %s (%s)\n  Asistente: %s\n", d.Name, d.Species, d.AssistantName)
	for _, n := range d.Notes {
		if strings.TrimSpace(n.Content) != "" {
			fmt.Fprintf(w, "  Nota: %s\n", n.Content)
		}
	}
	if len(d.Medications) == 0 {
		fmt.Fprintln(w, "  Sin medicamentos")
		return
	}
	fmt.Fprintln(w, "  Medicamentos:")
	for _, m := range d.Medications {
		printMedicationSummary(w, m.Name, m.Dosage, m.Frequency, m.DurationDays, m.StartTime, m.Notes)
	}
}

// commitDraft creates the patient, then each medication course against
// the new patient id. Medication failures do not roll the patient back;
// the user is told what was saved.
func (a *App) commitDraft(ctx context.Context, draft *extract.PatientDraft) error {
	req, meds, err := draft.Commit()
	if err != nil {
		return err
	}
	a.resolveAssistant(ctx, req)

	patient, err := a.API.CreatePatient(ctx, req)
	if err != nil {
		return err
	}

	for i := range meds {
		meds[i].PatientID = patient.ID
		if _, err := a.API.AddMedication(ctx, &meds[i]); err != nil {
			return fmt.Errorf("paciente %d creado, pero falló el medicamento %q: %w", patient.ID, meds[i].Name, err)
		}
	}
	return nil
}

// resolveAssistant matches the drafted assistant name against the real
// assistant list: exact name/username match first, then partial. No
// match, or no name at all, assigns the current user.
func (a *App) resolveAssistant(ctx context.Context, req *model.CreatePatientRequest) {
	wanted := strings.ToLower(strings.TrimSpace(req.AssistantName))

	if current := a.Session.User(); current != nil {
		req.AssistantID = current.ID
		req.AssistantName = current.DisplayName()
	}
	if wanted == "" {
		return
	}

	assistants, err := a.API.ListAssistants(ctx)
	if err != nil {
		a.Log.Warn().Err(err).Msg("could not load assistants; keeping current user")
		return
	}

	var partial *model.User
	for i := range assistants {
		u := &assistants[i]
		full := strings.ToLower(u.FullName)
		login := strings.ToLower(u.Username)
		if full == wanted || login == wanted {
			req.AssistantID = u.ID
			req.AssistantName = u.DisplayName()
			return
		}
		if partial == nil && (strings.Contains(full, wanted) || strings.Contains(login, wanted)) {
			partial = u
		}
	}
	if partial != nil {
		req.AssistantID = partial.ID
		req.AssistantName = partial.DisplayName()
		return
	}
	a.Log.Warn().Str("assistant", wanted).Msg("assistant not found; keeping current user")
}
