package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/skoll/pkg/domain/interfaces"
	"github.com/secmon-lab/skoll/pkg/domain/model"
)

// Revoke is the revocation runner: it sweeps one page of directory users
// and revokes grants matching the target client identifier.
type Revoke struct {
	directory interfaces.Directory
	policy    *model.SweepPolicy
	sink      EventSink
}

// Option configures a Revoke use case
type Option func(*Revoke)

// WithPolicy applies a sweep policy to the runner
func WithPolicy(policy *model.SweepPolicy) Option {
	return func(uc *Revoke) {
		uc.policy = policy
	}
}

// WithEventSink replaces the default log-based event sink
func WithEventSink(sink EventSink) Option {
	return func(uc *Revoke) {
		uc.sink = sink
	}
}

// NewRevoke creates a new Revoke use case
func NewRevoke(directory interfaces.Directory, opts ...Option) *Revoke {
	uc := &Revoke{
		directory: directory,
		sink:      logEventSink,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Run executes one revocation pass. The returned report is always usable;
// the error is non-nil only for configuration errors and fatal directory
// errors (user enumeration failed or the run was cancelled). Per-user
// failures are recorded in the report and never returned as errors.
func (uc *Revoke) Run(ctx context.Context, cfg model.RunConfig) (*model.RunReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	report := model.NewRunReport(cfg)
	defer report.Finalize()

	users, err := uc.directory.ListUsers(ctx, cfg.Customer, cfg.MaxUsers)
	if err != nil {
		report.Errors++
		return report, goerr.Wrap(err, "failed to enumerate directory users",
			goerr.V("customer", cfg.Customer))
	}

	// Hard ceiling even if the directory over-returns
	if len(users) > cfg.MaxUsers {
		users = users[:cfg.MaxUsers]
	}
	report.TotalUsers = len(users)

	for _, user := range users {
		// Cooperative cancellation between users
		if err := ctx.Err(); err != nil {
			return report, goerr.Wrap(err, "run cancelled",
				goerr.V("usersProcessed", report.UsersProcessed))
		}

		report.Append(uc.processUser(ctx, cfg, report, user))
	}

	return report, nil
}

// processUser handles one user. Failures are reflected in the outcome and
// the report's error counter, never returned.
func (uc *Revoke) processUser(ctx context.Context, cfg model.RunConfig, report *model.RunReport, user *model.DirectoryUser) model.UserOutcome {
	outcome := model.UserOutcome{Email: user.PrimaryEmail}

	if uc.policy.IsProtected(user.PrimaryEmail) {
		outcome.Skipped = true
		uc.emit(ctx, Event{
			Type:  EventUserSkipped,
			RunID: report.RunID,
			Email: user.PrimaryEmail,
		})
		return outcome
	}

	grants, err := uc.directory.ListGrants(ctx, user.PrimaryEmail)
	if err != nil {
		outcome.Errored = true
		report.Errors++
		uc.emit(ctx, Event{
			Type:  EventUserErrored,
			RunID: report.RunID,
			Email: user.PrimaryEmail,
			Err:   err,
		})
		return outcome
	}

	outcome.GrantsFound = len(grants)

	for _, grant := range grants {
		if !grant.Matches(cfg.TargetClientID) {
			continue
		}
		outcome.MatchingGrantsFound++

		if cfg.DryRun {
			uc.emit(ctx, Event{
				Type:     EventRevokePlanned,
				RunID:    report.RunID,
				Email:    user.PrimaryEmail,
				ClientID: grant.ClientID,
			})
			continue
		}

		if err := uc.directory.RevokeGrant(ctx, user.PrimaryEmail, grant.ClientID); err != nil {
			if errors.Is(err, model.ErrGrantNotFound) {
				// Already revoked: the sweep converged, not an error
				uc.emit(ctx, Event{
					Type:     EventAlreadyRevoked,
					RunID:    report.RunID,
					Email:    user.PrimaryEmail,
					ClientID: grant.ClientID,
				})
				continue
			}

			outcome.Errored = true
			report.Errors++
			uc.emit(ctx, Event{
				Type:     EventUserErrored,
				RunID:    report.RunID,
				Email:    user.PrimaryEmail,
				ClientID: grant.ClientID,
				Err:      err,
			})
			continue
		}

		outcome.Revoked++
		uc.emit(ctx, Event{
			Type:     EventRevoked,
			RunID:    report.RunID,
			Email:    user.PrimaryEmail,
			ClientID: grant.ClientID,
		})
	}

	return outcome
}

func (uc *Revoke) emit(ctx context.Context, ev Event) {
	if uc.sink != nil {
		uc.sink(ctx, ev)
	}
}
