package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/skoll/pkg/domain/interfaces"
	"github.com/secmon-lab/skoll/pkg/domain/types"
	"github.com/secmon-lab/skoll/pkg/service/directory"
	"github.com/urfave/cli/v3"
)

// Directory holds the Google Workspace directory configuration
type Directory struct {
	Customer        string
	CredentialsFile string
	Impersonate     string
	Timeout         time.Duration
}

// Flags returns CLI flags for Directory configuration
func (d *Directory) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "customer",
			Usage:       "Workspace customer alias",
			Category:    "Directory",
			Value:       "my_customer",
			Sources:     cli.EnvVars("SKOLL_CUSTOMER"),
			Destination: &d.Customer,
		},
		&cli.StringFlag{
			Name:        "google-credentials",
			Usage:       "Path to a service account credentials JSON file",
			Category:    "Directory",
			Sources:     cli.EnvVars("SKOLL_GOOGLE_CREDENTIALS"),
			Destination: &d.CredentialsFile,
		},
		&cli.StringFlag{
			Name:        "impersonate",
			Usage:       "Admin user to impersonate via domain-wide delegation",
			Category:    "Directory",
			Sources:     cli.EnvVars("SKOLL_IMPERSONATE"),
			Destination: &d.Impersonate,
		},
		&cli.DurationFlag{
			Name:        "directory-timeout",
			Usage:       "Deadline applied to each directory API call",
			Category:    "Directory",
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("SKOLL_DIRECTORY_TIMEOUT"),
			Destination: &d.Timeout,
		},
	}
}

// CustomerID returns the configured customer alias
func (d *Directory) CustomerID() types.CustomerID {
	return types.CustomerID(d.Customer)
}

// Configure creates the directory client. Without credentials it falls
// back to an empty in-memory directory so dry runs stay executable in
// development.
func (d *Directory) Configure(ctx context.Context) (interfaces.Directory, error) {
	logger := ctxlog.From(ctx)

	if !d.IsConfigured() {
		logger.Warn("No Google credentials configured, using empty in-memory directory")
		return directory.NewMemory(), nil
	}

	dir, err := directory.NewGoogle(ctx, d.CredentialsFile, d.Impersonate, d.Timeout)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to init Google directory client",
			goerr.V("credentialsFile", d.CredentialsFile),
			goerr.V("impersonate", d.Impersonate),
		)
	}

	return dir, nil
}

// IsConfigured checks if the Google directory is properly configured
func (d *Directory) IsConfigured() bool {
	return d.CredentialsFile != ""
}

// LogValue returns structured log value
func (d Directory) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("customer", d.Customer),
		slog.Bool("has_credentials", d.CredentialsFile != ""),
		slog.String("impersonate", d.Impersonate),
		slog.Duration("timeout", d.Timeout),
	)
}
