// Package cmd wires the command-line interface: the interactive tutoring
// chat, plus version and configuration inspection.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "polyglot",
	Short: "Polyglot - your adaptive language tutor",
	Long: `Polyglot is an AI language tutor for the terminal.
It adapts every reply, translation, and exercise to your chosen target
language and CEFR proficiency level (A1 through C1).

Running polyglot without arguments starts an interactive tutoring session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
