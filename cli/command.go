// Package cli provides shared scaffolding for vizinhanca commands.
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/klausmullerDev/vizinhanca-cli/config"
	"github.com/klausmullerDev/vizinhanca-cli/internal/notify"
	"github.com/klausmullerDev/vizinhanca-cli/internal/store"
	"github.com/klausmullerDev/vizinhanca-cli/logging"
	"github.com/klausmullerDev/vizinhanca-cli/pkg/api"
	"github.com/klausmullerDev/vizinhanca-cli/pkg/session"
	"github.com/klausmullerDev/vizinhanca-cli/state"
)

// NewStandardCommand creates a new command with the standard flags.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to config.yml")

	return cmd
}

// GetLogger creates a logger based on command flags.
func GetLogger(cmd *cobra.Command) *logrus.Entry {
	entry := logging.NewLogger("cli")

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		entry.Logger.SetLevel(logrus.DebugLevel)
	}

	return entry
}

// App bundles the wired client components for one command invocation.
type App struct {
	Config  *config.Config
	Client  *api.Client
	Session *session.Store
	Pedidos *store.Store
	Notifs  *notify.Store
	Logger  *logrus.Entry
	JSON    bool
}

// NewApp loads configuration and wires gateway, session, and stores.
func NewApp(cmd *cobra.Command) (*App, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	file, err := state.DefaultFile()
	if err != nil {
		return nil, err
	}

	client := api.New(cfg.APIURL)
	sess := session.NewStore(client, file)
	jsonOut, _ := cmd.Flags().GetBool("json")

	return &App{
		Config:  cfg,
		Client:  client,
		Session: sess,
		Pedidos: store.New(client, sess),
		Notifs:  notify.New(client, cfg.PollInterval()),
		Logger:  GetLogger(cmd),
		JSON:    jsonOut,
	}, nil
}

// RequireSession restores the persisted session and fails when none exists.
// Incomplete profiles get a reminder; the commands themselves still run, the
// server is the authority on what an incomplete profile may do.
func (a *App) RequireSession(cmd *cobra.Command) error {
	if err := a.Session.Restore(cmd.Context()); err != nil {
		return err
	}
	if a.Session.ProfileIncomplete() {
		cmd.PrintErrln("⚠ Seu perfil está incompleto. Rode 'vizinhanca perfil completar' para preenchê-lo.")
	}
	return nil
}
