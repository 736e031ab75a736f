package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "batepapo",
		Short: "CLI tool for the chat-room API",
		Long: `batepapo is a CLI tool for interacting with the chat-room JSON API.

It supports joining the room, sending public and private messages, editing
and deleting your own messages, and keeping your session alive with
heartbeats.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL, cfg.User)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: BATEPAPO_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.User, "user", "u", cfg.User, "Display name sent as identity (env: BATEPAPO_USER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newJoinCmd())
	rootCmd.AddCommand(newParticipantsCmd())
	rootCmd.AddCommand(newHeartbeatCmd())
	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newMessagesCmd())
	rootCmd.AddCommand(newEditCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
