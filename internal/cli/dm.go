package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/action"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/api"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/authz"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
)

const scheduleLayout = "2006-01-02 15:04"

func dmAccess() error {
	return requireAccess(authz.AnyOf(model.RoleDM, model.RoleAdmin))
}

func newDMCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dm",
		Short: "Game-master commands",
	}

	cmd.AddCommand(newDMPendingCmd())
	cmd.AddCommand(newDMCharactersCmd())
	cmd.AddCommand(newDMApproveCmd())
	cmd.AddCommand(newDMKillCmd())
	cmd.AddCommand(newDMActivateCmd())
	cmd.AddCommand(newDMSessionCmd())

	return cmd
}

func newDMPendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List characters awaiting approval",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := dmAccess(); err != nil {
				return err
			}

			chars, err := dmChars.Pending(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(chars)
			return nil
		},
	}
}

func newDMCharactersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "characters",
		Short: "List every character in the campaign",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := dmAccess(); err != nil {
				return err
			}

			chars, err := dmChars.All(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(chars)
			return nil
		},
	}
}

func newDMApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a pending character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := dmAccess(); err != nil {
				return err
			}

			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			act := action.New[*model.Character](
				action.WithFallback[*model.Character]("Failed to approve character"),
				// The approval queue re-fetches so the DM sees what is left.
				action.WithOnSuccess[*model.Character](func(ch *model.Character) {
					out.PrintMessage(fmt.Sprintf("Approved %s", ch.Name))
					if left, err := dmChars.Pending(cmd.Context()); err == nil {
						out.PrintMessage(fmt.Sprintf("%d still pending", len(left)))
					}
				}),
			)
			_, err = act.Run(cmd.Context(), func(ctx context.Context) (*model.Character, error) {
				return dmChars.Approve(ctx, id)
			})
			if err != nil {
				return actionError(act, err)
			}
			return nil
		},
	}
}

func newDMKillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kill <id>",
		Short: "Mark a character as dead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := dmAccess(); err != nil {
				return err
			}

			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}

			act := action.New[*model.Character](
				action.WithFallback[*model.Character]("Failed to update character"),
			)
			ch, err := act.Run(cmd.Context(), func(ctx context.Context) (*model.Character, error) {
				return dmChars.Kill(ctx, id)
			})
			if err != nil {
				return actionError(act, err)
			}

			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("%s has fallen", ch.Name))
			return nil
		},
	}
}

func newDMActivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activate <id>",
		Short: "Return a dead character to play",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := dmAccess(); err != nil {
				return err
			}

			id, err := parseCharacterID(args[0])
			if err != nil {
				return err
			}

			act := action.New[*model.Character](
				action.WithFallback[*model.Character]("Failed to update character"),
			)
			ch, err := act.Run(cmd.Context(), func(ctx context.Context) (*model.Character, error) {
				return dmChars.Activate(ctx, id)
			})
			if err != nil {
				return actionError(act, err)
			}

			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("%s is back in play", ch.Name))
			return nil
		},
	}
}

func newDMSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Run your game sessions",
	}

	cmd.AddCommand(newDMSessionListCmd())
	cmd.AddCommand(newDMSessionCreateCmd())
	cmd.AddCommand(newDMSessionUpdateCmd())
	cmd.AddCommand(newDMSessionStartCmd())
	cmd.AddCommand(newDMSessionCancelCmd())
	cmd.AddCommand(newDMSessionCompleteCmd())

	return cmd
}

func newDMSessionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sessions you are running",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := dmAccess(); err != nil {
				return err
			}

			sessions, err := dmSessions.Mine(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(sessions)
			return nil
		},
	}
}

// sessionForm collects and validates the shared create/update inputs
type sessionForm struct {
	title       string
	description string
	at          string
	maxPlayers  string

	scheduledAt time.Time
	partySize   int
}

func (f *sessionForm) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Session title (required)")
	cmd.Flags().StringVar(&f.description, "description", "", "Session description")
	cmd.Flags().StringVar(&f.at, "at", "", `Scheduled time, e.g. "2026-04-01 19:00" (required)`)
	cmd.Flags().StringVar(&f.maxPlayers, "max-players", "", "Party size limit, 1-10 (blank for no limit)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("at")
}

func (f *sessionForm) validate(editing bool) action.Fields {
	fields := action.Fields{
		"title": action.SessionTitle(f.title),
	}

	f.scheduledAt = time.Time{}
	if f.at != "" {
		t, err := time.ParseInLocation(scheduleLayout, f.at, time.Local)
		if err != nil {
			fields["scheduledAt"] = fmt.Sprintf("Time must look like %q", scheduleLayout)
			return fieldErrors(fields)
		}
		f.scheduledAt = t
	}
	fields["scheduledAt"] = action.ScheduledDate(f.scheduledAt, time.Now(), editing)

	var msg string
	f.partySize, msg = action.PartySize(f.maxPlayers)
	fields["maxPlayers"] = msg

	return fieldErrors(fields)
}

func (f *sessionForm) request() api.SessionRequest {
	return api.SessionRequest{
		Title:       f.title,
		Description: f.description,
		ScheduledAt: f.scheduledAt,
		MaxPlayers:  f.partySize,
	}
}

func newDMSessionCreateCmd() *cobra.Command {
	form := &sessionForm{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Schedule a new session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := dmAccess(); err != nil {
				return err
			}

			act := action.New[*model.GameSession](
				action.WithValidate[*model.GameSession](func() action.Fields {
					return form.validate(false)
				}),
				action.WithFallback[*model.GameSession]("Failed to create session"),
			)
			s, err := act.Run(cmd.Context(), func(ctx context.Context) (*model.GameSession, error) {
				return dmSessions.Create(ctx, form.request())
			})
			if err != nil {
				return actionError(act, err)
			}

			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("Scheduled %s (#%d)", s.Title, s.ID))
			return nil
		},
	}

	form.bind(cmd)
	return cmd
}

func newDMSessionUpdateCmd() *cobra.Command {
	form := &sessionForm{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a scheduled session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := dmAccess(); err != nil {
				return err
			}

			id, err := parseSessionID(args[0])
			if err != nil {
				return err
			}

			act := action.New[*model.GameSession](
				action.WithValidate[*model.GameSession](func() action.Fields {
					return form.validate(true)
				}),
				action.WithFallback[*model.GameSession]("Failed to update session"),
			)
			s, err := act.Run(cmd.Context(), func(ctx context.Context) (*model.GameSession, error) {
				return dmSessions.Update(ctx, id, form.request())
			})
			if err != nil {
				return actionError(act, err)
			}

			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("Updated %s", s.Title))
			return nil
		},
	}

	form.bind(cmd)
	return cmd
}

func newDMSessionStartCmd() *cobra.Command {
	return newDMSessionVerbCmd("start", "Start a scheduled session", func(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
		return dmSessions.Start(ctx, id)
	})
}

func newDMSessionCancelCmd() *cobra.Command {
	return newDMSessionVerbCmd("cancel", "Cancel a scheduled session", func(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
		return dmSessions.Cancel(ctx, id)
	})
}

func newDMSessionVerbCmd(verb, short string, call func(context.Context, model.SessionID) (*model.GameSession, error)) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := dmAccess(); err != nil {
				return err
			}

			id, err := parseSessionID(args[0])
			if err != nil {
				return err
			}

			act := action.New[*model.GameSession](
				action.WithFallback[*model.GameSession]("Failed to update session"),
			)
			s, err := act.Run(cmd.Context(), func(ctx context.Context) (*model.GameSession, error) {
				return call(ctx, id)
			})
			if err != nil {
				return actionError(act, err)
			}

			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("%s is now %s", s.Title, s.Status))
			return nil
		},
	}
}

func newDMSessionCompleteCmd() *cobra.Command {
	var gold, xp string

	cmd := &cobra.Command{
		Use:   "complete <id>",
		Short: "Complete a session and award rewards to the party",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := dmAccess(); err != nil {
				return err
			}

			id, err := parseSessionID(args[0])
			if err != nil {
				return err
			}

			var goldReward, xpReward int
			act := action.New[*model.GameSession](
				action.WithValidate[*model.GameSession](func() action.Fields {
					var goldMsg, xpMsg string
					goldReward, goldMsg = action.Reward(gold)
					xpReward, xpMsg = action.Reward(xp)
					return fieldErrors(action.Fields{
						"gold": goldMsg,
						"xp":   xpMsg,
					})
				}),
				action.WithFallback[*model.GameSession]("Failed to complete session"),
			)
			s, err := act.Run(cmd.Context(), func(ctx context.Context) (*model.GameSession, error) {
				return dmSessions.Complete(ctx, id, api.CompleteSessionRequest{
					GoldReward:       goldReward,
					ExperienceReward: xpReward,
				})
			})
			if err != nil {
				return actionError(act, err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("%s complete: %d gold and %d xp awarded to %d characters",
				s.Title, s.GoldReward, s.ExperienceReward, len(s.Signups)))
			return nil
		},
	}

	cmd.Flags().StringVar(&gold, "gold", "", "Gold awarded to each character (blank for none)")
	cmd.Flags().StringVar(&xp, "xp", "", "Experience awarded to each character (blank for none)")

	return cmd
}
