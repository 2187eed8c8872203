package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yungbote/calmzone-backend/internal/client"
	"github.com/yungbote/calmzone-backend/internal/identity"
)

type cliOptions struct {
	server       string
	identityFile string
	jsonOutput   bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "calmzone",
		Short:         "Talk to a CalmZone server from the terminal",
		Long:          `Record moods, read and write on the support board, and chat with the CalmZone assistant using an anonymous identity stored on this machine.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	serverDefault := os.Getenv("CALMZONE_SERVER")
	if serverDefault == "" {
		serverDefault = client.DefaultBaseURL
	}
	root.PersistentFlags().StringVar(&opts.server, "server", serverDefault, "CalmZone server URL (env CALMZONE_SERVER)")
	root.PersistentFlags().StringVar(&opts.identityFile, "identity-file", identity.DefaultPath(), "Where the anonymous identity is kept")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Print raw JSON instead of text")

	root.AddCommand(
		newMoodCmd(opts),
		newPostCmd(opts),
		newChatCmd(opts),
		newIdentityCmd(opts),
	)
	return root
}

func (o *cliOptions) provider() (*identity.Provider, error) {
	store, err := identity.NewFileStore(o.identityFile)
	if err != nil {
		return nil, fmt.Errorf("open identity file: %w", err)
	}
	return identity.NewProvider(store), nil
}

func (o *cliOptions) client() (*client.Client, error) {
	ids, err := o.provider()
	if err != nil {
		return nil, err
	}
	return client.New(o.server, ids), nil
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
