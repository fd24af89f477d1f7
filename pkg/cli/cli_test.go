package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeboard/internal/authz"
	"homeboard/internal/domain"
	"homeboard/internal/service"
)

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func TestVersionCmd(t *testing.T) {
	isolateHome(t)
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "homeboard")
}

func TestConfigSetAndView(t *testing.T) {
	isolateHome(t)

	_, err := runCLI(t, "config", "set", "host", "https://api.example.com")
	require.NoError(t, err)
	_, err = runCLI(t, "config", "set", "token", "secret-token")
	require.NoError(t, err)

	cfg, err := LoadUserConfig()
	require.NoError(t, err)
	p := cfg.ActiveProfile("")
	assert.Equal(t, "https://api.example.com", p.Host)
	assert.Equal(t, "secret-token", p.Token)

	// view must not print the raw token.
	out, err := runCLI(t, "config", "view")
	require.NoError(t, err)
	assert.Contains(t, out, "https://api.example.com")
	assert.NotContains(t, out, "secret-token")
}

func TestConfigSetUnknownKey(t *testing.T) {
	isolateHome(t)
	_, err := runCLI(t, "config", "set", "colour", "blue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")
}

func TestConfigUseProfile(t *testing.T) {
	isolateHome(t)

	_, err := runCLI(t, "config", "set", "host", "https://a.example.com", "--profile", "staging")
	require.NoError(t, err)
	_, err = runCLI(t, "config", "use-profile", "staging")
	require.NoError(t, err)

	cfg, err := LoadUserConfig()
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.CurrentProfile)
	assert.Equal(t, "https://a.example.com", cfg.ActiveProfile("").Host)
}

func TestAuthTokenCmd(t *testing.T) {
	isolateHome(t)

	_, err := runCLI(t, "auth", "token",
		"--id", "7",
		"--email", "dev@example.com",
		"--role", "REALTOR",
		"--secret", "cli-test-secret",
	)
	require.NoError(t, err)

	// The token is saved to the active profile.
	cfg, err := LoadUserConfig()
	require.NoError(t, err)
	token := cfg.ActiveProfile("").Token
	require.NotEmpty(t, token)

	// And it decodes back to the requested identity.
	validator, err := authz.NewHS256Validator("cli-test-secret")
	require.NoError(t, err)
	claims, err := validator.Validate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, "REALTOR", claims.Role)
	assert.Equal(t, "dev@example.com", claims.Email)
}

func TestAuthTokenRejectsUnknownRole(t *testing.T) {
	isolateHome(t)
	_, err := runCLI(t, "auth", "token",
		"--id", "1", "--email", "x@example.com", "--role", "ADMIN", "--secret", "s",
	)
	require.Error(t, err)
}

func TestAuthProductKeyCmd(t *testing.T) {
	isolateHome(t)

	out, err := runCLI(t, "auth", "product-key",
		"--email", "realtor@example.com",
		"--secret", "pk-secret",
	)
	require.NoError(t, err)

	want := service.GenerateProductKey("pk-secret", "realtor@example.com", domain.RoleRealtor)
	assert.Equal(t, want, strings.TrimSpace(out))
}
