package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"flextime/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently resolved configuration and the config file path.

This command validates the configuration before printing values. The API
token is masked down to its last four characters.`,
	Example: `
  # Show active configuration
  flextime config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := config.Load()
		if err != nil {
			fmt.Println("Invalid config:", err)
			return
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		}
		fmt.Println("Configuration:")
		fmt.Printf("csv: %s\n", displayValue(opts.CSV))
		fmt.Printf("start_date: %s\n", opts.StartDate.Format("2006-01-02 15:04"))
		fmt.Printf("end_date: %s\n", opts.EndDate.Format("2006-01-02 15:04"))
		fmt.Printf("api_token: %s\n", maskToken(opts.APIToken))
		fmt.Printf("description: %s\n", opts.Description)
		fmt.Printf("fig_dir: %s\n", opts.FigDir)
		fmt.Printf("workday_hours: %d\n", opts.WorkdayHours)
		fmt.Printf("workspace: %s\n", displayValue(opts.Workspace))
		fmt.Printf("source: %s\n", opts.Source)
	},
}

// maskToken keeps the last four characters so users can tell tokens apart
// without the full credential landing in terminal history.
func maskToken(token string) string {
	if token == "" {
		return "<unset>"
	}
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return strings.Repeat("*", len(token)-4) + token[len(token)-4:]
}

func displayValue(value string) string {
	if value == "" {
		return "<unset>"
	}
	return value
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
