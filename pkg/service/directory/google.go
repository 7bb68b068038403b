package directory

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/skoll/pkg/domain/interfaces"
	"github.com/secmon-lab/skoll/pkg/domain/model"
	"github.com/secmon-lab/skoll/pkg/domain/types"
	"golang.org/x/oauth2/google"
	admin "google.golang.org/api/admin/directory/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// maxDirectoryPage is the Admin SDK's hard limit for users.list pages
const maxDirectoryPage = 500

var directoryScopes = []string{
	admin.AdminDirectoryUserReadonlyScope,
	admin.AdminDirectoryUserSecurityScope,
}

// Google implements the Directory interface with the Google Workspace
// Admin SDK Directory API (users.list, tokens.list, tokens.delete)
type Google struct {
	svc     *admin.Service
	timeout time.Duration
}

var _ interfaces.Directory = (*Google)(nil)

// NewGoogle creates a Directory backed by the Admin SDK.
// When subject is set, the service account in credentialsFile impersonates
// that admin user via domain-wide delegation. With an empty credentialsFile
// the client falls back to application default credentials.
func NewGoogle(ctx context.Context, credentialsFile, subject string, timeout time.Duration) (*Google, error) {
	opts, err := clientOptions(ctx, credentialsFile, subject)
	if err != nil {
		return nil, err
	}

	svc, err := admin.NewService(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to init admin directory service",
			goerr.V("credentialsFile", credentialsFile),
			goerr.V("subject", subject),
		)
	}

	return &Google{
		svc:     svc,
		timeout: timeout,
	}, nil
}

func clientOptions(ctx context.Context, credentialsFile, subject string) ([]option.ClientOption, error) {
	if subject != "" {
		if credentialsFile == "" {
			return nil, goerr.New("credentials file is required for impersonation",
				goerr.V("subject", subject))
		}

		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read credentials file",
				goerr.V("path", credentialsFile))
		}

		jwtCfg, err := google.JWTConfigFromJSON(data, directoryScopes...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse service account credentials",
				goerr.V("path", credentialsFile))
		}
		jwtCfg.Subject = subject

		return []option.ClientOption{
			option.WithTokenSource(jwtCfg.TokenSource(ctx)),
		}, nil
	}

	opts := []option.ClientOption{
		option.WithScopes(directoryScopes...),
	}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	return opts, nil
}

// ListUsers fetches one page of directory users
func (g *Google) ListUsers(ctx context.Context, customer types.CustomerID, maxResults int) ([]*model.DirectoryUser, error) {
	if customer == "" {
		return nil, goerr.New("customer is required")
	}
	if maxResults > maxDirectoryPage {
		maxResults = maxDirectoryPage
	}

	ctx, cancel := g.callContext(ctx)
	defer cancel()

	resp, err := g.svc.Users.List().
		Customer(customer.String()).
		MaxResults(int64(maxResults)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, mapGoogleError(err, model.ErrPermissionDenied)
	}

	users := make([]*model.DirectoryUser, 0, len(resp.Users))
	for _, u := range resp.Users {
		displayName := ""
		if u.Name != nil {
			displayName = u.Name.FullName
		}
		user, err := model.NewDirectoryUser(types.Email(u.PrimaryEmail), displayName)
		if err != nil {
			return nil, goerr.Wrap(err, "directory returned invalid user")
		}
		users = append(users, user)
	}

	return users, nil
}

// ListGrants fetches the OAuth tokens issued by one user
func (g *Google) ListGrants(ctx context.Context, email types.Email) ([]*model.OAuthGrant, error) {
	if email == "" {
		return nil, goerr.New("email is required")
	}

	ctx, cancel := g.callContext(ctx)
	defer cancel()

	resp, err := g.svc.Tokens.List(email.String()).Context(ctx).Do()
	if err != nil {
		return nil, mapGoogleError(err, model.ErrUserNotFound)
	}

	grants := make([]*model.OAuthGrant, 0, len(resp.Items))
	for _, token := range resp.Items {
		grants = append(grants, &model.OAuthGrant{
			ClientID:    types.ClientID(token.ClientId),
			OwnerEmail:  email,
			DisplayText: token.DisplayText,
			Scopes:      token.Scopes,
		})
	}

	return grants, nil
}

// RevokeGrant deletes the OAuth token of (email, clientID)
func (g *Google) RevokeGrant(ctx context.Context, email types.Email, clientID types.ClientID) error {
	if email == "" {
		return goerr.New("email is required")
	}
	if clientID == "" {
		return goerr.New("client ID is required")
	}

	ctx, cancel := g.callContext(ctx)
	defer cancel()

	if err := g.svc.Tokens.Delete(email.String(), clientID.String()).Context(ctx).Do(); err != nil {
		return mapGoogleError(err, model.ErrGrantNotFound)
	}

	return nil
}

// callContext applies the explicit per-call deadline
func (g *Google) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.timeout)
}

// mapGoogleError translates Admin SDK failures into domain sentinels.
// notFound is the sentinel used for 404 responses; it differs per call
// (missing user vs already-revoked grant).
func mapGoogleError(err error, notFound error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		// Transport-level failure, no HTTP response
		return goerr.Wrap(model.ErrDirectoryUnavailable, "directory call failed",
			goerr.V("cause", err.Error()))
	}

	switch {
	case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
		return goerr.Wrap(model.ErrPermissionDenied, "directory rejected the call",
			goerr.V("status", apiErr.Code))
	case apiErr.Code == http.StatusNotFound:
		return goerr.Wrap(notFound, "directory returned 404")
	case apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500:
		return goerr.Wrap(model.ErrDirectoryUnavailable, "directory unavailable",
			goerr.V("status", apiErr.Code))
	default:
		return goerr.Wrap(err, "unexpected directory error",
			goerr.V("status", apiErr.Code))
	}
}
