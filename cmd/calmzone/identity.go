package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newIdentityCmd(opts *cliOptions) *cobra.Command {
	identityCmd := &cobra.Command{
		Use:   "identity",
		Short: "Manage the anonymous identity",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the identity token, creating one if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := opts.provider()
			if err != nil {
				return err
			}
			h := ids.GetOrCreate()
			if h == "" {
				return errors.New("could not read or create an identity")
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget the identity; the next command starts a new one",
		Long:  `Deletes the locally stored identity. Moods, posts and chat history tied to the old identity stay on the server but can no longer be reached from this machine.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := opts.provider()
			if err != nil {
				return err
			}
			if err := ids.Clear(); err != nil {
				return fmt.Errorf("failed to reset identity: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Identity cleared.")
			return nil
		},
	}

	identityCmd.AddCommand(showCmd, resetCmd)
	return identityCmd
}
