package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/api"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/model"
	"github.com/SageMyrloc/Torchbearers-Frontend/internal/session"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case session.State:
		o.printIdentity(v)
	case model.Character:
		o.printCharacter(v)
	case *model.Character:
		o.printCharacter(*v)
	case []model.Character:
		o.printCharacterList(v)
	case model.GameSession:
		o.printSession(v)
	case *model.GameSession:
		o.printSession(*v)
	case []model.GameSession:
		o.printSessionList(v)
	case model.Player:
		o.printPlayer(v)
	case []model.Player:
		o.printPlayerList(v)
	case []api.RoleInfo:
		o.printRoleList(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printIdentity(s session.State) {
	if !s.Authenticated() {
		fmt.Println("Not logged in")
		return
	}
	fmt.Printf("Player: %s (%s)\n", s.Username, s.PlayerID)
	fmt.Printf("Roles: %s\n", strings.Join(model.RoleNames(s.Roles), ", "))
	if s.DiscordID != "" {
		fmt.Printf("Discord: %s\n", s.DiscordID)
	}
}

func (o *Output) printCharacter(c model.Character) {
	fmt.Printf("Character: %s (#%d)\n", c.Name, c.ID)
	fmt.Printf("Player: %s\n", c.PlayerName)
	fmt.Printf("Status: %s\n", c.Status)
	fmt.Printf("Gold: %d\n", c.Gold)
	fmt.Printf("XP: %d\n", c.Experience)
	if c.ImageURL != "" {
		fmt.Printf("Portrait: %s\n", c.ImageURL)
	}
}

func (o *Output) printCharacterList(chars []model.Character) {
	if len(chars) == 0 {
		fmt.Println("No characters")
		return
	}
	fmt.Printf("Characters (%d):\n", len(chars))
	for _, c := range chars {
		fmt.Printf("  #%-4d %-20s %-10s gold=%d xp=%d  (%s)\n",
			c.ID, c.Name, c.Status, c.Gold, c.Experience, c.PlayerName)
	}
}

func (o *Output) printSession(s model.GameSession) {
	fmt.Printf("Session: %s (#%d)\n", s.Title, s.ID)
	fmt.Printf("DM: %s\n", s.DMName)
	fmt.Printf("Status: %s\n", s.Status)
	fmt.Printf("Scheduled: %s\n", s.ScheduledAt.Format("2006-01-02 15:04"))
	if s.Description != "" {
		fmt.Printf("Description: %s\n", s.Description)
	}
	if s.MaxPlayers > 0 {
		fmt.Printf("Party: %d/%d\n", len(s.Signups), s.MaxPlayers)
	} else {
		fmt.Printf("Party: %d (no limit)\n", len(s.Signups))
	}
	if s.GoldReward > 0 || s.ExperienceReward > 0 {
		fmt.Printf("Rewards: %d gold, %d xp\n", s.GoldReward, s.ExperienceReward)
	}
	if len(s.Signups) > 0 {
		fmt.Println("Roster:")
		for _, su := range s.Signups {
			fmt.Printf("  - %s (%s)\n", su.CharacterName, su.PlayerName)
		}
	}
}

func (o *Output) printSessionList(sessions []model.GameSession) {
	if len(sessions) == 0 {
		fmt.Println("No sessions")
		return
	}
	fmt.Printf("Sessions (%d):\n", len(sessions))
	for _, s := range sessions {
		slots := "no limit"
		if s.MaxPlayers > 0 {
			slots = fmt.Sprintf("%d/%d", len(s.Signups), s.MaxPlayers)
		}
		fmt.Printf("  #%-4d %-30s %-10s %s  [%s]  DM: %s\n",
			s.ID, s.Title, s.Status, s.ScheduledAt.Format("2006-01-02 15:04"), slots, s.DMName)
	}
}

func (o *Output) printPlayer(p model.Player) {
	fmt.Printf("Player: %s (%s)\n", p.Username, p.ID)
	fmt.Printf("Roles: %s\n", strings.Join(model.RoleNames(p.Roles), ", "))
	fmt.Printf("Slots: %d\n", p.MaxSlots)
	if p.DiscordID != "" {
		fmt.Printf("Discord: %s\n", p.DiscordID)
	}
}

func (o *Output) printPlayerList(players []model.Player) {
	if len(players) == 0 {
		fmt.Println("No players")
		return
	}
	fmt.Printf("Players (%d):\n", len(players))
	for _, p := range players {
		fmt.Printf("  %-20s slots=%d  roles=%s  (%s)\n",
			p.Username, p.MaxSlots, strings.Join(model.RoleNames(p.Roles), ","), p.ID)
	}
}

func (o *Output) printRoleList(roles []api.RoleInfo) {
	fmt.Printf("Roles (%d):\n", len(roles))
	for _, r := range roles {
		fmt.Printf("  %-10s (%s)\n", r.Name, r.ID)
	}
}
