package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/action"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/api"
)

func newLoginCmd() *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and cache the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			act := action.New[*api.AuthResponse](
				action.WithValidate[*api.AuthResponse](func() action.Fields {
					return fieldErrors(action.Fields{
						"username": action.Required("Username", user),
						"password": action.Required("Password", pass),
					})
				}),
				action.WithFallback[*api.AuthResponse]("Login failed. Please try again."),
			)

			resp, err := act.Run(cmd.Context(), func(ctx context.Context) (*api.AuthResponse, error) {
				return store.Login(ctx, user, pass)
			})
			if err != nil {
				return actionError(act, err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Logged in as %s", resp.Username))
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newRegisterCmd() *cobra.Command {
	var user, pass, confirm string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			act := action.New[*api.AuthResponse](
				action.WithValidate[*api.AuthResponse](func() action.Fields {
					return fieldErrors(action.Fields{
						"username": action.Required("Username", user),
						"password": action.Required("Password", pass),
						"confirm":  action.PasswordConfirmation(pass, confirm),
					})
				}),
				action.WithFallback[*api.AuthResponse]("Registration failed. Please try again."),
			)

			resp, err := act.Run(cmd.Context(), func(ctx context.Context) (*api.AuthResponse, error) {
				return store.Register(ctx, user, pass)
			})
			if err != nil {
				return actionError(act, err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Registered and logged in as %s", resp.Username))
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	cmd.Flags().StringVar(&confirm, "confirm", "", "Password confirmation (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")
	_ = cmd.MarkFlagRequired("confirm")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the cached session",
		RunE: func(cmd *cobra.Command, args []string) error {
			store.Logout()
			NewOutput(cfg.Output).PrintMessage("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			NewOutput(cfg.Output).Print(store.Snapshot())
			return nil
		},
	}
}

// fieldErrors drops the fields that passed so a clean form validates
// to an empty set.
func fieldErrors(fields action.Fields) action.Fields {
	for k, v := range fields {
		if v == "" {
			delete(fields, k)
		}
	}
	return fields
}

// actionError converts an action failure into the message the user
// should see: field messages for validation, the normalized backend
// message otherwise.
func actionError[T any](act *action.Action[T], err error) error {
	var verr *action.ValidationError
	if errors.As(err, &verr) {
		return errors.New(verr.Error())
	}
	if msg := act.Message(); msg != "" {
		return errors.New(msg)
	}
	return err
}
