package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage flextime configuration file values.",
	Long: `Create, edit, display, and delete the flextime configuration file.

The configuration stores the pipeline defaults:
- api_token / workspace for the Toggl API
- description filter, figures directory, workday hours
- source (report or entries)

Flags and environment variables always take precedence over file values.`,
	Example: `
  # Create default config in $HOME/.flextime.yaml
  flextime config create

  # Show active config and source file
  flextime config show

  # Open active config in editor (creates example if missing)
  flextime config edit

  # Delete active config file
  flextime config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
