package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newChatCmd(opts *cliOptions) *cobra.Command {
	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk with the CalmZone assistant",
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show the conversation so far",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			msgs, err := c.ChatHistory(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load history: %w", err)
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), msgs)
			}
			out := cmd.OutOrStdout()
			if len(msgs) == 0 {
				fmt.Fprintln(out, "No messages yet.")
				return nil
			}
			for _, m := range msgs {
				fmt.Fprintf(out, "%s: %s\n", m.Role, m.Content)
			}
			return nil
		},
	}

	sendCmd := &cobra.Command{
		Use:   "send <message>",
		Short: "Send a message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := joinArgs(args)
			if text == "" {
				return errors.New("message cannot be empty")
			}
			c, err := opts.client()
			if err != nil {
				return err
			}
			reply, err := c.SendMessage(cmd.Context(), text)
			if err != nil {
				return fmt.Errorf("failed to send message: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}

	chatCmd.AddCommand(historyCmd, sendCmd)
	return chatCmd
}
