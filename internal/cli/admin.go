package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/action"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/authz"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
)

func adminAccess() error {
	return requireAccess(authz.Role(model.RoleAdmin))
}

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator commands",
	}

	cmd.AddCommand(newAdminPlayersCmd())
	cmd.AddCommand(newAdminRolesCmd())
	cmd.AddCommand(newAdminGrantCmd())
	cmd.AddCommand(newAdminRevokeCmd())
	cmd.AddCommand(newAdminGoldCmd())
	cmd.AddCommand(newAdminXPCmd())
	cmd.AddCommand(newAdminDeleteCharacterCmd())
	cmd.AddCommand(newAdminSlotsCmd())

	return cmd
}

func newAdminPlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players",
		Short: "List every player account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := adminAccess(); err != nil {
				return err
			}

			players, err := admin.Players(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(players)
			return nil
		},
	}
}

func newAdminRolesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List assignable roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := adminAccess(); err != nil {
				return err
			}

			roles, err := admin.Roles(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(roles)
			return nil
		},
	}
}

// resolveRoleID maps a role name to the server's role id.
func resolveRoleID(ctx context.Context, name string) (string, error) {
	roles, err := admin.Roles(ctx)
	if err != nil {
		return "", err
	}
	for _, r := range roles {
		if r.Name == name {
			return r.ID, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", name)
}

func newAdminGrantCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grant <player-id> <role>",
		Short: "Grant a role to a player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := adminAccess(); err != nil {
				return err
			}

			roleID, err := resolveRoleID(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			act := action.New[struct{}](
				action.WithFallback[struct{}]("Failed to update roles"),
			)
			_, err = act.Run(cmd.Context(), func(ctx context.Context) (struct{}, error) {
				return struct{}{}, admin.AssignRole(ctx, model.PlayerID(args[0]), roleID)
			})
			if err != nil {
				return actionError(act, err)
			}

			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("Granted %s", args[1]))
			return nil
		},
	}
}

func newAdminRevokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <player-id> <role>",
		Short: "Revoke a role from a player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := adminAccess(); err != nil {
				return err
			}

			roleID, err := resolveRoleID(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			act := action.New[struct{}](
				action.WithFallback[struct{}]("Failed to update roles"),
			)
			_, err = act.Run(cmd.Context(), func(ctx context.Context) (struct{}, error) {
				return struct{}{}, admin.RemoveRole(ctx, model.PlayerID(args[0]), roleID)
			})
			if err != nil {
				return actionError(act, err)
			}

			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("Revoked %s", args[1]))
			return nil
		},
	}
}

func newAdminGoldCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gold <character-id> <amount>",
		Short: "Set a character's gold",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := adminAccess(); err != nil {
				return err
			}

			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}

			var amount int
			act := action.New[struct{}](
				action.WithValidate[struct{}](func() action.Fields {
					var msg string
					amount, msg = action.Reward(args[1])
					return fieldErrors(action.Fields{"gold": msg})
				}),
				action.WithFallback[struct{}]("Failed to update gold"),
			)
			_, err = act.Run(cmd.Context(), func(ctx context.Context) (struct{}, error) {
				return struct{}{}, admin.UpdateGold(ctx, id, amount)
			})
			if err != nil {
				return actionError(act, err)
			}

			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("Gold set to %d", amount))
			return nil
		},
	}
}

func newAdminXPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "xp <character-id> <amount>",
		Short: "Set a character's experience",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := adminAccess(); err != nil {
				return err
			}

			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}

			var amount int
			act := action.New[struct{}](
				action.WithValidate[struct{}](func() action.Fields {
					var msg string
					amount, msg = action.Reward(args[1])
					return fieldErrors(action.Fields{"xp": msg})
				}),
				action.WithFallback[struct{}]("Failed to update experience"),
			)
			_, err = act.Run(cmd.Context(), func(ctx context.Context) (struct{}, error) {
				return struct{}{}, admin.UpdateExperience(ctx, id, amount)
			})
			if err != nil {
				return actionError(act, err)
			}

			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("Experience set to %d", amount))
			return nil
		},
	}
}

func newAdminDeleteCharacterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-character <id>",
		Short: "Permanently delete a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := adminAccess(); err != nil {
				return err
			}

			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}

			act := action.New[struct{}](
				action.WithFallback[struct{}]("Failed to delete character"),
			)
			_, err = act.Run(cmd.Context(), func(ctx context.Context) (struct{}, error) {
				return struct{}{}, admin.DeleteCharacter(ctx, id)
			})
			if err != nil {
				return actionError(act, err)
			}

			NewOutput(cfg.Output).PrintMessage("Character deleted")
			return nil
		},
	}
}

func newAdminSlotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slots <player-id> <count>",
		Short: "Set a player's active character slots",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := adminAccess(); err != nil {
				return err
			}

			var count int
			act := action.New[struct{}](
				action.WithValidate[struct{}](func() action.Fields {
					var msg string
					count, msg = action.SlotCount(args[1])
					return fieldErrors(action.Fields{"maxSlots": msg})
				}),
				action.WithFallback[struct{}]("Failed to update slots"),
			)
			_, err := act.Run(cmd.Context(), func(ctx context.Context) (struct{}, error) {
				return struct{}{}, admin.UpdateSlots(ctx, model.PlayerID(args[0]), count)
			})
			if err != nil {
				return actionError(act, err)
			}

			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("Slots set to %d", count))
			return nil
		},
	}
}
