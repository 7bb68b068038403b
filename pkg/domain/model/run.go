package model

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/skoll/pkg/domain/types"
)

// DefaultPlanMaxUsers is the page size of the dry-run preset
const DefaultPlanMaxUsers = 5

// RunConfig is the immutable configuration of one revocation run
type RunConfig struct {
	DryRun         bool
	MaxUsers       int
	TargetClientID types.ClientID
	Customer       types.CustomerID
}

// NewPlanConfig returns the dry-run preset: a small bounded page with no writes
func NewPlanConfig(target types.ClientID, customer types.CustomerID) RunConfig {
	return RunConfig{
		DryRun:         true,
		MaxUsers:       DefaultPlanMaxUsers,
		TargetClientID: target,
		Customer:       customer,
	}
}

// Mode returns the run mode implied by the dry-run flag
func (c RunConfig) Mode() types.RunMode {
	if c.DryRun {
		return types.RunModeDryRun
	}
	return types.RunModeLive
}

// Validate rejects configurations before any directory call is made
func (c RunConfig) Validate() error {
	if c.MaxUsers <= 0 {
		return goerr.Wrap(ErrInvalidConfig, "max users must be positive",
			goerr.V("maxUsers", c.MaxUsers))
	}
	if c.TargetClientID == "" {
		return goerr.Wrap(ErrInvalidConfig, "target client ID is required")
	}
	return nil
}

// LogValue returns structured log value
func (c RunConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("mode", c.Mode().String()),
		slog.Int("maxUsers", c.MaxUsers),
		slog.String("targetClientID", c.TargetClientID.String()),
		slog.String("customer", c.Customer.String()),
	)
}
