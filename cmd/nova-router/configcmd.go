// ABOUTME: "config" subcommands: explain the merged settings, store an API key
// ABOUTME: Keys go to ~/.nova-router/auth.json with 0600 permissions

package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mauromedda/nova-router/internal/config"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration and credentials",
	}
	cmd.AddCommand(newConfigExplainCmd(root), newConfigSetKeyCmd())
	return cmd
}

func newConfigExplainCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "explain",
		Short: "Print the effective settings after merging all config files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := root.loadSettings()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "=== Files ===")
			for _, p := range root.configPaths() {
				state := "missing"
				if _, err := os.Stat(p); err == nil {
					state = "loaded"
				}
				fmt.Fprintf(w, "  %s (%s)\n", p, state)
			}
			fmt.Fprintln(w)
			_, err = fmt.Fprint(w, config.Explain(s))
			return err
		},
	}
}

func newConfigSetKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-key <provider> <api-key>",
		Short: "Store an API key for a provider",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := strings.ToLower(args[0])
			if !slices.Contains(config.KnownProviders(), provider) {
				msg := fmt.Sprintf("unknown provider %q", args[0])
				if s := config.Suggest(provider, config.KnownProviders()); s != "" {
					msg += fmt.Sprintf(" (did you mean %q?)", s)
				}
				return errors.New(msg)
			}

			auth, err := config.LoadAuth()
			if err != nil {
				return err
			}
			auth.SetKey(provider, args[1])
			if err := auth.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %s key in %s\n", provider, config.AuthFile())
			return nil
		},
	}
}
