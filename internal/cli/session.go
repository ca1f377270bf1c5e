package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/action"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/authz"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Browse and join game sessions",
	}

	cmd.AddCommand(newSessionListCmd())
	cmd.AddCommand(newSessionShowCmd())
	cmd.AddCommand(newSessionMineCmd())
	cmd.AddCommand(newSessionSignupCmd())
	cmd.AddCommand(newSessionWithdrawCmd())

	return cmd
}

func newSessionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List upcoming sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAccess(authz.Authenticated()); err != nil {
				return err
			}

			sessions, err := gameAPI.List(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(sessions)
			return nil
		},
	}
}

func newSessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a session and its roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAccess(authz.Authenticated()); err != nil {
				return err
			}

			id, err := parseSessionID(args[0])
			if err != nil {
				return err
			}

			s, err := gameAPI.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(s)
			return nil
		},
	}
}

func newSessionMineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "List sessions you are signed up for",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAccess(authz.Authenticated()); err != nil {
				return err
			}

			sessions, err := gameAPI.Mine(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(sessions)
			return nil
		},
	}
}

func newSessionSignupCmd() *cobra.Command {
	var characterID int64

	cmd := &cobra.Command{
		Use:   "signup <id>",
		Short: "Sign a character up for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAccess(authz.Authenticated()); err != nil {
				return err
			}

			id, err := parseSessionID(args[0])
			if err != nil {
				return err
			}

			act := action.New[*model.GameSession](
				action.WithFallback[*model.GameSession]("Failed to sign up"),
			)
			s, err := act.Run(cmd.Context(), func(ctx context.Context) (*model.GameSession, error) {
				return gameAPI.SignUp(ctx, id, model.CharacterID(characterID))
			})
			if err != nil {
				return actionError(act, err)
			}

			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("Signed up for %s", s.Title))
			return nil
		},
	}

	cmd.Flags().Int64Var(&characterID, "character", 0, "Character ID to sign up (required)")
	_ = cmd.MarkFlagRequired("character")

	return cmd
}

func newSessionWithdrawCmd() *cobra.Command {
	var characterID int64

	cmd := &cobra.Command{
		Use:   "withdraw <id>",
		Short: "Withdraw a character from a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAccess(authz.Authenticated()); err != nil {
				return err
			}

			id, err := parseSessionID(args[0])
			if err != nil {
				return err
			}

			act := action.New[struct{}](
				action.WithFallback[struct{}]("Failed to withdraw"),
			)
			_, err = act.Run(cmd.Context(), func(ctx context.Context) (struct{}, error) {
				return struct{}{}, gameAPI.Withdraw(ctx, id, model.CharacterID(characterID))
			})
			if err != nil {
				return actionError(act, err)
			}

			NewOutput(cfg.Output).PrintMessage("Withdrawn from session")
			return nil
		},
	}

	cmd.Flags().Int64Var(&characterID, "character", 0, "Character ID to withdraw (required)")
	_ = cmd.MarkFlagRequired("character")

	return cmd
}

func parseSessionID(arg string) (model.SessionID, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid session id %q", arg)
	}
	return model.SessionID(id), nil
}
