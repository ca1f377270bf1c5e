package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/api"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/authz"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/client"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/session"
)

var (
	cfg        *Config
	httpClient *client.Client
	store      *session.Store
	characters *api.Characters
	gameAPI    *api.Sessions
	dmChars    *api.DM
	dmSessions *api.DMSessions
	admin      *api.Admin
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "torchctl",
		Short: "CLI for the Torch Bearers campaign server",
		Long: `torchctl manages a Torch Bearers tabletop campaign from the terminal.

Players track their characters and sign up for game sessions, DMs approve
characters and run sessions, and admins manage accounts and roles. Log in
once and your session is cached until it expires.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			if cfg.Verbose {
				logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
			}

			httpClient = client.New(cfg.ServerURL)
			creds := session.NewFileStore(cfg.CredentialsFile)
			store = session.New(api.NewAuth(httpClient), httpClient, creds, logger)

			// Any unauthorized response from here on tears the session down.
			httpClient.OnAuthFailure(func() {
				store.Logout()
				fmt.Fprintln(os.Stderr, "Session expired. Please log in again.")
			})

			characters = api.NewCharacters(httpClient)
			gameAPI = api.NewSessions(httpClient)
			dmChars = api.NewDM(httpClient)
			dmSessions = api.NewDMSessions(httpClient)
			admin = api.NewAdmin(httpClient)

			store.Hydrate(cmd.Context())
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: TORCH_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.CredentialsFile, "credentials", cfg.CredentialsFile, "Credentials file path (env: TORCH_CREDENTIALS)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newCharacterCmd())
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newDMCmd())
	rootCmd.AddCommand(newAdminCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// requireAccess gates a command on the current session the way the
// pages gate themselves: unauthenticated users are sent to log in,
// authenticated users without the role are refused outright.
func requireAccess(req authz.Requirement) error {
	switch authz.Decide(store.Snapshot(), req) {
	case authz.Allow:
		return nil
	case authz.Redirect:
		return fmt.Errorf("not logged in. Run 'torchctl login' first")
	default:
		return fmt.Errorf("access denied")
	}
}
