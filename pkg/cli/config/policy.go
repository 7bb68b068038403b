package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/skoll/pkg/domain/model"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Policy holds the sweep policy configuration
type Policy struct {
	Path string
}

// Flags returns CLI flags for Policy configuration
func (p *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "policy",
			Usage:       "Path to a YAML sweep policy (protected accounts)",
			Category:    "Policy",
			Sources:     cli.EnvVars("SKOLL_POLICY"),
			Destination: &p.Path,
		},
	}
}

// Configure loads the sweep policy, or returns nil when none is configured
func (p *Policy) Configure() (*model.SweepPolicy, error) {
	if p.Path == "" {
		return nil, nil
	}
	return LoadPolicyFromFile(p.Path)
}

// LogValue returns structured log value
func (p Policy) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", p.Path),
	)
}

// LoadPolicyFromFile loads a sweep policy from a YAML file
func LoadPolicyFromFile(path string) (*model.SweepPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "policy file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read policy file",
			goerr.V("path", path))
	}

	var policy model.SweepPolicy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, goerr.Wrap(err, "failed to parse policy YAML",
			goerr.V("path", path))
	}

	if err := policy.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid sweep policy",
			goerr.V("path", path))
	}

	return &policy, nil
}
