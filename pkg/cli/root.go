// Package cli implements the homeboard command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		host    string
		token   string
		output  string
		profile string
	)

	rootCmd := &cobra.Command{
		Use:           "homeboard",
		Short:         "Homeboard listing service CLI",
		Long:          "Command-line interface for the homeboard property listing API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				// Config file is optional.
				cfg = &UserConfig{CurrentProfile: "default", Profiles: map[string]Profile{}}
			}
			p := cfg.ActiveProfile(profile)

			// Precedence: flag > env > profile > default.
			resolve(cmd.Flags(), "host", &host, "HOMEBOARD_HOST", p.Host)
			resolve(cmd.Flags(), "token", &token, "HOMEBOARD_TOKEN", p.Token)
			resolve(cmd.Flags(), "output", &output, "HOMEBOARD_OUTPUT", p.Output)

			if output != "" && output != "table" && output != "json" {
				return fmt.Errorf("unsupported output format %q: use 'table' or 'json'", output)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "API host URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authentication")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "Config profile to use")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newAuthCmd())

	return rootCmd
}

// resolve applies the flag > env > profile precedence chain to a string flag.
func resolve(fs *pflag.FlagSet, name string, dst *string, envKey, profileValue string) {
	if fs.Changed(name) {
		return
	}
	if v := os.Getenv(envKey); v != "" {
		*dst = v
		return
	}
	if profileValue != "" {
		*dst = profileValue
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "homeboard %s (%s)\n", version, commit)
		},
	}
}
