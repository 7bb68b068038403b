package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/skoll/pkg/cli/config"
	"github.com/secmon-lab/skoll/pkg/domain/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadPolicyFromFile(t *testing.T) {
	t.Run("valid policy", func(t *testing.T) {
		path := writeFile(t, "policy.yml", `
protected:
  - breakglass@example.com
  - ops-admin@example.com
`)
		policy, err := config.LoadPolicyFromFile(path)
		gt.NoError(t, err)
		gt.Equal(t, len(policy.Protected), 2)
		gt.True(t, policy.IsProtected(types.Email("breakglass@example.com")))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadPolicyFromFile(filepath.Join(t.TempDir(), "nope.yml"))
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("not found")
	})

	t.Run("broken yaml", func(t *testing.T) {
		path := writeFile(t, "broken.yml", "protected: [unterminated")
		_, err := config.LoadPolicyFromFile(path)
		gt.Error(t, err)
	})

	t.Run("invalid policy", func(t *testing.T) {
		path := writeFile(t, "dup.yml", `
protected:
  - a@example.com
  - a@example.com
`)
		_, err := config.LoadPolicyFromFile(path)
		gt.Error(t, err)
	})
}

func TestPolicy_Configure(t *testing.T) {
	t.Run("no path means no policy", func(t *testing.T) {
		var cfg config.Policy
		policy, err := cfg.Configure()
		gt.NoError(t, err)
		gt.Nil(t, policy)
	})
}
