package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newPostCmd(opts *cliOptions) *cobra.Command {
	postCmd := &cobra.Command{
		Use:   "post",
		Short: "Anonymous support board",
	}

	var listCategory string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List board posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			posts, err := c.ListPosts(cmd.Context(), listCategory)
			if err != nil {
				return fmt.Errorf("failed to list posts: %w", err)
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), posts)
			}
			out := cmd.OutOrStdout()
			if len(posts) == 0 {
				fmt.Fprintln(out, "No posts found.")
				return nil
			}
			for _, p := range posts {
				mark := ""
				if p.Liked {
					mark = ", liked by you"
				}
				fmt.Fprintf(out, "%s [%s] (%d likes%s)\n  %s\n", p.ID, p.Category, p.LikesCount, mark, p.Content)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&listCategory, "category", "", "Only show posts in this category")

	var createCategory string
	createCmd := &cobra.Command{
		Use:   "create <content>",
		Short: "Publish an anonymous post",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if createCategory == "" {
				return errors.New("--category is required")
			}
			c, err := opts.client()
			if err != nil {
				return err
			}
			post, err := c.CreatePost(cmd.Context(), joinArgs(args), createCategory)
			if err != nil {
				return fmt.Errorf("failed to create post: %w", err)
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), post)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Posted %s\n", post.ID)
			return nil
		},
	}
	createCmd.Flags().StringVar(&createCategory, "category", "", "Post category")

	likeCmd := &cobra.Command{
		Use:   "like <post-id>",
		Short: "Like a post, or remove your like",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			liked, count, err := c.ToggleLike(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to toggle like: %w", err)
			}
			state := "Unliked"
			if liked {
				state = "Liked"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d likes)\n", state, count)
			return nil
		},
	}

	postCmd.AddCommand(listCmd, createCmd, likeCmd)
	return postCmd
}
