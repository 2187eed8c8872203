package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMoodCmd(opts *cliOptions) *cobra.Command {
	moodCmd := &cobra.Command{
		Use:   "mood",
		Short: "Daily mood journal",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Show your last 30 mood entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			moods, err := c.ListMoods(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list moods: %w", err)
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), moods)
			}
			out := cmd.OutOrStdout()
			if len(moods) == 0 {
				fmt.Fprintln(out, "No moods recorded yet.")
				return nil
			}
			for _, m := range moods {
				note := ""
				if m.Note != nil {
					note = " | " + *m.Note
				}
				fmt.Fprintf(out, "%s | %s%s\n", m.Day, m.Mood, note)
			}
			return nil
		},
	}

	var note string
	recordCmd := &cobra.Command{
		Use:   "record <mood>",
		Short: "Record today's mood (happy, calm, neutral, sad, anxious)",
		Long:  `Records the mood for today. Running it again on the same day replaces the earlier entry.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			entry, updated, err := c.RecordMood(cmd.Context(), args[0], note)
			if err != nil {
				return fmt.Errorf("failed to record mood: %w", err)
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), entry)
			}
			verb := "Recorded"
			if updated {
				verb = "Updated"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s for %s\n", verb, entry.Mood, entry.Day)
			return nil
		},
	}
	recordCmd.Flags().StringVar(&note, "note", "", "Optional note for the entry")

	moodCmd.AddCommand(listCmd, recordCmd)
	return moodCmd
}
