// ABOUTME: "rules" subcommand: prints the heuristic cascade order and pattern families
// ABOUTME: Useful when reading --explain traces

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mauromedda/nova-router/internal/intent"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the heuristic cascade and pattern families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeRules(cmd.OutOrStdout())
		},
	}
}

func writeRules(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Cascade (first match wins):"); err != nil {
		return err
	}
	for i, name := range intent.Rules() {
		fmt.Fprintf(w, "  %d. %s\n", i+1, name)
	}

	families := intent.Families()
	for _, family := range []string{intent.FamilyConsultation, intent.FamilyEditing} {
		fmt.Fprintf(w, "\nPattern family %q:\n", family)
		for _, p := range families[family] {
			fmt.Fprintf(w, "  - %s\n", p.Name)
		}
	}
	return nil
}
