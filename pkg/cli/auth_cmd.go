package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"homeboard/internal/authz"
	"homeboard/internal/domain"
	"homeboard/internal/service"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication helpers",
	}

	cmd.AddCommand(newAuthTokenCmd())
	cmd.AddCommand(newAuthProductKeyCmd())
	return cmd
}

func newAuthTokenCmd() *cobra.Command {
	var (
		id      int64
		email   string
		name    string
		role    string
		secret  string
		expires time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Generate a dev-mode bearer token and save it to the active profile",
		Long:  "Generate an HS256 bearer token for development and testing. The token is saved to the active profile automatically.",
		Example: `  # Generate a buyer token with the default dev secret
  homeboard auth token --id 1 --email buyer@example.com --secret dev-secret-change-in-production

  # Generate a realtor token with custom expiry
  homeboard auth token --id 2 --email realtor@example.com --role REALTOR --secret mysecret --expires 48h`,
		RunE: func(_ *cobra.Command, _ []string) error {
			parsedRole, err := domain.ParseUserRole(role)
			if err != nil {
				return err
			}

			issuer, err := authz.NewIssuer(secret, expires)
			if err != nil {
				return fmt.Errorf("create issuer: %w", err)
			}
			signed, err := issuer.Issue(&domain.User{
				ID:    id,
				Name:  name,
				Email: email,
				Role:  parsedRole,
			})
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}

			cfg, err := LoadUserConfig()
			if err != nil {
				cfg = &UserConfig{Profiles: make(map[string]Profile)}
			}
			profileName := cfg.CurrentProfile
			if profileName == "" {
				profileName = "default"
				cfg.CurrentProfile = profileName
			}
			p := cfg.Profiles[profileName]
			p.Token = signed
			cfg.Profiles[profileName] = p
			if err := SaveUserConfig(cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			_, _ = fmt.Fprintln(os.Stdout, signed)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Account id (token subject)")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&name, "name", "", "Account display name")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleBuyer), "Account role (BUYER or REALTOR)")
	cmd.Flags().StringVar(&secret, "secret", "", "Token signing secret (HS256)")
	cmd.Flags().DurationVar(&expires, "expires", 24*time.Hour, "Token expiry duration")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("secret")

	return cmd
}

func newAuthProductKeyCmd() *cobra.Command {
	var (
		email  string
		role   string
		secret string
	)

	cmd := &cobra.Command{
		Use:   "product-key",
		Short: "Generate a signup product key for a realtor account",
		Example: `  homeboard auth product-key --email realtor@example.com --secret $PRODUCT_KEY_SECRET`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsedRole, err := domain.ParseUserRole(role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), service.GenerateProductKey(secret, email, parsedRole))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address the key is issued for")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleRealtor), "Role the key grants (BUYER or REALTOR)")
	cmd.Flags().StringVar(&secret, "secret", "", "Product key signing secret")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("secret")

	return cmd
}
