package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/skoll/pkg/cli/config"
	"github.com/secmon-lab/skoll/pkg/domain/model"
	"github.com/secmon-lab/skoll/pkg/domain/types"
	"github.com/secmon-lab/skoll/pkg/usecase"
	"github.com/secmon-lab/skoll/pkg/utils/apperr"
	"github.com/urfave/cli/v3"
)

func cmdRun() *cli.Command {
	var (
		dryRun    bool
		maxUsers  int
		clientID  string
		dirCfg    config.Directory
		policyCfg config.Policy
		notifyCfg config.Notify
		outputCfg config.Output
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Log intended revocations without performing them",
				Sources:     cli.EnvVars("SKOLL_DRY_RUN"),
				Destination: &dryRun,
			},
			&cli.IntFlag{
				Name:        "max-users",
				Usage:       "Maximum number of users fetched from the directory",
				Value:       100,
				Sources:     cli.EnvVars("SKOLL_MAX_USERS"),
				Destination: &maxUsers,
			},
			&cli.StringFlag{
				Name:        "client-id",
				Usage:       "OAuth client ID whose grants are revoked",
				Required:    true,
				Sources:     cli.EnvVars("SKOLL_CLIENT_ID"),
				Destination: &clientID,
			},
		},
		dirCfg.Flags(),
		policyCfg.Flags(),
		notifyCfg.Flags(),
		outputCfg.Flags(),
	)

	return &cli.Command{
		Name:  "run",
		Usage: "Sweep the directory and revoke matching OAuth grants",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := model.RunConfig{
				DryRun:         dryRun,
				MaxUsers:       maxUsers,
				TargetClientID: types.ClientID(clientID),
				Customer:       dirCfg.CustomerID(),
			}
			return executeRun(ctx, cfg, &dirCfg, &policyCfg, &notifyCfg, &outputCfg)
		},
	}
}

// cmdPlan is the dry-run preset: a small bounded page, no writes
func cmdPlan() *cli.Command {
	var (
		maxUsers  int
		clientID  string
		dirCfg    config.Directory
		policyCfg config.Policy
		notifyCfg config.Notify
		outputCfg config.Output
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.IntFlag{
				Name:        "max-users",
				Usage:       "Maximum number of users fetched from the directory",
				Value:       model.DefaultPlanMaxUsers,
				Sources:     cli.EnvVars("SKOLL_MAX_USERS"),
				Destination: &maxUsers,
			},
			&cli.StringFlag{
				Name:        "client-id",
				Usage:       "OAuth client ID whose grants would be revoked",
				Required:    true,
				Sources:     cli.EnvVars("SKOLL_CLIENT_ID"),
				Destination: &clientID,
			},
		},
		dirCfg.Flags(),
		policyCfg.Flags(),
		notifyCfg.Flags(),
		outputCfg.Flags(),
	)

	return &cli.Command{
		Name:  "plan",
		Usage: "Preview the sweep without revoking anything",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := model.NewPlanConfig(types.ClientID(clientID), dirCfg.CustomerID())
			cfg.MaxUsers = maxUsers
			return executeRun(ctx, cfg, &dirCfg, &policyCfg, &notifyCfg, &outputCfg)
		},
	}
}

// executeRun wires the configured collaborators into the runner, executes
// one pass and emits the report. Per-user errors are reported, not
// returned; only config and fatal directory errors make the command fail.
func executeRun(ctx context.Context, cfg model.RunConfig, dirCfg *config.Directory, policyCfg *config.Policy, notifyCfg *config.Notify, outputCfg *config.Output) error {
	logger := ctxlog.From(ctx)

	logger.Info("Starting revocation run",
		slog.Any("run", cfg),
		slog.Any("directory", *dirCfg),
		slog.Any("policy", *policyCfg),
		slog.Any("notify", *notifyCfg),
		slog.Any("output", *outputCfg),
	)

	if err := outputCfg.Validate(); err != nil {
		return err
	}

	policy, err := policyCfg.Configure()
	if err != nil {
		return err
	}

	dir, err := dirCfg.Configure(ctx)
	if err != nil {
		return err
	}

	var opts []usecase.Option
	if policy != nil {
		opts = append(opts, usecase.WithPolicy(policy))
	}
	uc := usecase.NewRevoke(dir, opts...)

	// Interrupt finalizes the partial report instead of killing the pass
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, runErr := uc.Run(ctx, cfg)

	if report != nil {
		if err := outputCfg.Write(report); err != nil {
			apperr.Handle(ctx, err)
		}
		if notifier := notifyCfg.ConfigureOptional(logger); notifier != nil {
			if err := notifier.PostRunReport(ctx, report); err != nil {
				apperr.Handle(ctx, err)
			}
		}
	}

	if runErr != nil {
		return goerr.Wrap(runErr, "revocation run failed")
	}

	logger.Info("Revocation run complete",
		slog.String("run_id", report.RunID.String()),
		slog.Int("users_processed", report.UsersProcessed),
		slog.Int("grants_revoked", report.GrantsRevoked),
		slog.Int("errors", report.Errors),
	)

	return nil
}
