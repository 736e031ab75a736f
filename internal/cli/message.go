package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newSendCmd() *cobra.Command {
	var to string
	var private bool

	cmd := &cobra.Command{
		Use:   "send [text]",
		Short: "Send a message to the room or a participant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.User == "" {
				return errors.New("--user is required")
			}

			msgType := "message"
			if private {
				msgType = "private_message"
			}

			body := map[string]string{
				"to":   to,
				"text": args[0],
				"type": msgType,
			}

			var result Message
			if err := client.Post("/messages", body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "todos", "Recipient (todos for everyone)")
	cmd.Flags().BoolVar(&private, "private", false, "Send as a private message")

	return cmd
}

func newMessagesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "messages",
		Short: "List the messages you can read",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/messages"
			if limit > 0 {
				path = fmt.Sprintf("/messages?limit=%d", limit)
			}

			var result []Message
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Only the most recent N visible messages")

	return cmd
}

func newEditCmd() *cobra.Command {
	var to string
	var private bool

	cmd := &cobra.Command{
		Use:   "edit [id] [text]",
		Short: "Edit one of your messages",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.User == "" {
				return errors.New("--user is required")
			}

			msgType := "message"
			if private {
				msgType = "private_message"
			}

			body := map[string]string{
				"to":   to,
				"text": args[1],
				"type": msgType,
			}

			if err := client.Put("/messages/"+args[0], body, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Message updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "todos", "Recipient (todos for everyone)")
	cmd.Flags().BoolVar(&private, "private", false, "Make it a private message")

	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete one of your messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.User == "" {
				return errors.New("--user is required")
			}

			if err := client.Delete("/messages/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Message deleted")
			return nil
		},
	}
}
