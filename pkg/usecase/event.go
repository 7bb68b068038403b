package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/secmon-lab/skoll/pkg/domain/types"
)

// EventType classifies the structured events emitted during a run
type EventType string

const (
	// EventRevokePlanned is emitted in dry-run mode instead of revoking
	EventRevokePlanned EventType = "revoke_planned"
	// EventRevoked is emitted after a successful revocation
	EventRevoked EventType = "revoked"
	// EventAlreadyRevoked is emitted when the grant was gone before we acted
	EventAlreadyRevoked EventType = "already_revoked"
	// EventUserErrored is emitted when listing or revoking failed for a user
	EventUserErrored EventType = "user_errored"
	// EventUserSkipped is emitted for policy-protected accounts
	EventUserSkipped EventType = "user_skipped"
)

// Event is one structured audit event of a revocation run
type Event struct {
	Type     EventType
	RunID    types.RunID
	Email    types.Email
	ClientID types.ClientID
	Err      error
}

// EventSink receives run events. The runner calls it synchronously, so
// implementations must not block on slow sinks.
type EventSink func(ctx context.Context, ev Event)

// logEventSink is the default sink: structured log lines via ctxlog
func logEventSink(ctx context.Context, ev Event) {
	logger := ctxlog.From(ctx)

	attrs := []any{
		slog.String("run_id", ev.RunID.String()),
		slog.String("email", ev.Email.String()),
		slog.String("client_id", ev.ClientID.String()),
	}

	switch ev.Type {
	case EventUserErrored:
		logger.Warn(string(ev.Type), append(attrs, slog.Any("error", ev.Err))...)
	default:
		logger.Info(string(ev.Type), attrs...)
	}
}
