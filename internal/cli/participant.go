package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join [name]",
		Short: "Join the room under a display name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := cfg.User
			if len(args) > 0 {
				name = args[0]
			}
			if name == "" {
				return errors.New("a name is required (argument or --user)")
			}

			var result Participant
			if err := client.Post("/participants", map[string]string{"name": name}, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Joined as " + result.Name)
			return nil
		},
	}
}

func newParticipantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "participants",
		Short: "List active participants",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Participant
			if err := client.Get("/participants", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newHeartbeatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "heartbeat",
		Short: "Refresh your presence so the sweeper keeps you in the room",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.User == "" {
				return errors.New("--user is required")
			}

			if err := client.Post("/status", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Heartbeat sent")
			return nil
		},
	}
}
