package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration profiles",
	}

	cmd.AddCommand(newConfigViewCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigUseProfileCmd())
	return cmd
}

func newConfigViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Print the current configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No configuration file found.")
				return nil
			}
			// Tokens are secrets; show presence only.
			for name, p := range cfg.Profiles {
				if p.Token != "" {
					p.Token = "<set>"
					cfg.Profiles[name] = p
				}
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	var profileName string

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a profile value (host, token, output)",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			cfg, err := LoadUserConfig()
			if err != nil {
				cfg = &UserConfig{CurrentProfile: "default", Profiles: map[string]Profile{}}
			}
			name := profileName
			if name == "" {
				name = cfg.CurrentProfile
			}
			if name == "" {
				name = "default"
				cfg.CurrentProfile = name
			}

			p := cfg.Profiles[name]
			switch key {
			case "host":
				p.Host = value
			case "token":
				p.Token = value
			case "output":
				p.Output = value
			default:
				return fmt.Errorf("unknown config key %q: use host, token, or output", key)
			}
			cfg.Profiles[name] = p
			return SaveUserConfig(cfg)
		},
	}

	cmd.Flags().StringVar(&profileName, "profile", "", "Profile to modify (default: current profile)")
	return cmd
}

func newConfigUseProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use-profile <name>",
		Short: "Switch the current profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				cfg = &UserConfig{Profiles: map[string]Profile{}}
			}
			cfg.CurrentProfile = args[0]
			if err := SaveUserConfig(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Switched to profile %q\n", args[0])
			return nil
		},
	}
}
