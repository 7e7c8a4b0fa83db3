/*
Copyright © 2026 flextime authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"flextime/config"
	"flextime/toggl"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "flextime",
	Short: "Calculate daily overtime from Toggl time entries or exported spreadsheets.",
	Long: `
**********************************************
*               FLEX TIME                    *
**********************************************

This CLI fetches time entries from the Toggl API (detailed report search or
flat time entry listing) or reads a previously exported spreadsheet, buckets
the entries per day, and reports the deviation from a configured workday as a
console table, a PNG chart, and CSV/Excel exports.

Supported spreadsheet inputs:
- Excel: .xlsx, .xlsm, .xls
- CSV: .csv
`,
	Example: `
  # Create configuration file
  flextime config create

  # Overtime of the last 30 days from the Toggl report API
  flextime report --workspace 1234567

  # Same window against the flat time entry listing
  flextime report --workspace 1234567 --source entries

  # Read an exported CSV instead of calling the API
  flextime report --csv ./toggl-export.csv

  # Fixed window with a different contract day
  flextime report --start_date 2026-01-01 --end_date 2026-01-31 --workday_hours 6

  # Export daily buckets to Excel
  flextime export --output ./overtime.xlsx
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes configuration mistakes from remote failures so
// wrapper scripts can react without parsing messages.
func exitCode(err error) int {
	var configErr *config.ValidationError
	if errors.As(err, &configErr) {
		return 2
	}
	var requestErr *toggl.RequestError
	if errors.As(err, &requestErr) {
		return 3
	}
	return 1
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.flextime.yaml, then ./.flextime.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// bindFlags connects one command's flags to their configuration keys. Binding
// happens per command run because several commands register flags under the
// same name and a global bind would keep only the last one.
func bindFlags(cmd *cobra.Command, keys ...string) error {
	for _, key := range keys {
		flag := cmd.Flags().Lookup(key)
		if flag == nil {
			return fmt.Errorf("flag %q is not registered on %q", key, cmd.Name())
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %q: %w", key, err)
		}
	}
	return nil
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".flextime" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".flextime")
	}

	config.BindEnv()
	viper.AutomaticEnv() // read in environment variables that match

	// The config file is optional; everything can come from flags and the
	// environment. Only complain when a file exists but cannot be read.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: config file not usable: %v\n", err)
		}
	}

	configureLogging()
}

func configureLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
