package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/action"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/api"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/authz"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
)

func newCharacterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "character",
		Short: "Manage your characters",
	}

	cmd.AddCommand(newCharacterListCmd())
	cmd.AddCommand(newCharacterShowCmd())
	cmd.AddCommand(newCharacterCreateCmd())
	cmd.AddCommand(newCharacterRetireCmd())
	cmd.AddCommand(newCharacterUploadImageCmd())

	return cmd
}

func newCharacterListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your characters",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAccess(authz.Authenticated()); err != nil {
				return err
			}

			chars, err := characters.Mine(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(chars)
			return nil
		},
	}
}

func newCharacterShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAccess(authz.Authenticated()); err != nil {
				return err
			}

			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}

			ch, err := characters.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(ch)
			return nil
		},
	}
}

func newCharacterCreateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a character (pending DM approval)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAccess(authz.Authenticated()); err != nil {
				return err
			}

			act := action.New[*model.Character](
				action.WithValidate[*model.Character](func() action.Fields {
					return fieldErrors(action.Fields{
						"name": action.CharacterName(name),
					})
				}),
				action.WithFallback[*model.Character]("Failed to create character"),
			)

			ch, err := act.Run(cmd.Context(), func(ctx context.Context) (*model.Character, error) {
				return characters.Create(ctx, api.CreateCharacterRequest{Name: name})
			})
			if err != nil {
				return actionError(act, err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Created %s, awaiting DM approval", ch.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Character name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCharacterRetireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retire <id>",
		Short: "Retire a character permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAccess(authz.Authenticated()); err != nil {
				return err
			}

			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}

			act := action.New[*model.Character](
				action.WithFallback[*model.Character]("Failed to retire character"),
			)
			ch, err := act.Run(cmd.Context(), func(ctx context.Context) (*model.Character, error) {
				return characters.Retire(ctx, id)
			})
			if err != nil {
				return actionError(act, err)
			}

			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("%s has retired", ch.Name))
			return nil
		},
	}
}

func newCharacterUploadImageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload-image <id> <file>",
		Short: "Upload a character portrait",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAccess(authz.Authenticated()); err != nil {
				return err
			}

			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}

			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			act := action.New[*model.Character](
				action.WithFallback[*model.Character]("Failed to upload image"),
			)
			ch, err := act.Run(cmd.Context(), func(ctx context.Context) (*model.Character, error) {
				return characters.UploadImage(ctx, id, filepath.Base(args[1]), f)
			})
			if err != nil {
				return actionError(act, err)
			}

			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("Portrait updated for %s", ch.Name))
			return nil
		},
	}
}

func parseCharacterID(arg string) (model.CharacterID, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid character id %q", arg)
	}
	return model.CharacterID(id), nil
}
