package interfaces

import (
	"context"

	"github.com/secmon-lab/skoll/pkg/domain/model"
	"github.com/secmon-lab/skoll/pkg/domain/types"
)

// Directory defines the interface to the organization's identity directory.
// Implementations live in pkg/service/directory.
type Directory interface {
	// ListUsers returns up to maxResults users of the customer.
	// Fails with model.ErrPermissionDenied or model.ErrDirectoryUnavailable.
	ListUsers(ctx context.Context, customer types.CustomerID, maxResults int) ([]*model.DirectoryUser, error)

	// ListGrants returns the OAuth grants of one user.
	// Fails with model.ErrUserNotFound or model.ErrDirectoryUnavailable.
	ListGrants(ctx context.Context, email types.Email) ([]*model.OAuthGrant, error)

	// RevokeGrant revokes the grant of clientID for the user.
	// Fails with model.ErrGrantNotFound (already revoked) or
	// model.ErrDirectoryUnavailable.
	RevokeGrant(ctx context.Context, email types.Email, clientID types.ClientID) error
}

// ReportNotifier delivers a finished run report to an external sink
type ReportNotifier interface {
	PostRunReport(ctx context.Context, report *model.RunReport) error
}
