package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mascotacare/vetcli/internal/api"
	"github.com/mascotacare/vetcli/internal/config"
	"github.com/mascotacare/vetcli/internal/extract"
	"github.com/mascotacare/vetcli/internal/genai"
	"github.com/mascotacare/vetcli/internal/session"
	"github.com/mascotacare/vetcli/pkg/logger"
)

// App holds the wired dependencies shared by every command. It is
// populated once in the root command's PersistentPreRunE.
type App struct {
	Config  *config.Config
	Log     zerolog.Logger
	Session *session.Session
	Store   *session.Store
	API     *api.Client
	Extract *extract.Extractor
}

// NewRootCmd builds the vetcli command tree.
func NewRootCmd() *cobra.Command {
	app := &App{}

	root := &cobra.Command{
		Use:           "vetcli",
		Short:         "Gestión de pacientes veterinarios y sus tratamientos",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init()
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newPatientCmd(app),
		newMedicationCmd(app),
		newDoseCmd(app),
		newUserCmd(app),
		newAssistantCmd(app),
	)
	return root
}

func (a *App) init() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	secrets, err := config.LoadSecrets()
	if err != nil {
		return err
	}

	a.Config = cfg
	a.Log = logger.Setup(&logger.Config{Level: cfg.Log.Level})
	a.Session = session.New()

	// Without a session key the CLI still works, it just forgets the
	// login when the process exits.
	if secrets.SessionKey != "" {
		store, err := session.NewStore(cfg.Session.File, secrets.SessionKey)
		if err != nil {
			return err
		}
		a.Store = store
		if err := store.Load(a.Session); err != nil {
			a.Log.Warn().Err(err).Msg("could not load saved session")
		}
	} else {
		a.Log.Debug().Msg("VETCLI_SESSION_KEY not set; session will not persist")
	}

	a.API, err = api.New(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
	}, a.Session, a.Log)
	if err != nil {
		return err
	}

	ai := genai.NewClient(genai.Config{
		BaseURL:           cfg.AI.BaseURL,
		APIKey:            secrets.GoogleAPIKey,
		Model:             cfg.AI.Model,
		Temperature:       cfg.AI.Temperature,
		TopP:              cfg.AI.TopP,
		TopK:              cfg.AI.TopK,
		MaxOutputTokens:   cfg.AI.MaxOutputTokens,
		RequestsPerMinute: cfg.AI.RequestsPerMinute,
		Timeout:           time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
	}, a.Log)
	a.Extract = extract.NewExtractor(ai, a.Log)

	return nil
}

// requireLogin guards commands that talk to the backend.
func (a *App) requireLogin() error {
	if !a.Session.LoggedIn() {
		return fmt.Errorf("no hay sesión activa; ejecuta 'vetcli login'")
	}
	if a.Session.Expired(nil) {
		return fmt.Errorf("la sesión expiró; ejecuta 'vetcli login' de nuevo")
	}
	return nil
}

// requireAdmin guards the user-administration commands.
func (a *App) requireAdmin() error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if u := a.Session.User(); u == nil || !u.IsAdmin() {
		return fmt.Errorf("se requiere rol de administrador")
	}
	return nil
}

func (a *App) saveSession() {
	if a.Store == nil {
		return
	}
	if err := a.Store.Save(a.Session); err != nil {
		a.Log.Warn().Err(err).Msg("could not persist session")
	}
}

func (a *App) dropSession() {
	if a.Store == nil {
		return
	}
	if err := a.Store.Delete(); err != nil {
		a.Log.Warn().Err(err).Msg("could not remove session file")
	}
}
