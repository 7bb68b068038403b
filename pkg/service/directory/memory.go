package directory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/skoll/pkg/domain/interfaces"
	"github.com/secmon-lab/skoll/pkg/domain/model"
	"github.com/secmon-lab/skoll/pkg/domain/types"
)

type grantKey struct {
	email    types.Email
	clientID types.ClientID
}

// Memory implements the Directory interface with in-memory fixtures.
// It backs tests and serves as the fallback when no Google credentials are
// configured.
type Memory struct {
	mu        sync.RWMutex
	users     []*model.DirectoryUser
	grants    map[types.Email][]*model.OAuthGrant
	usersErr  error
	grantsErr map[types.Email]error
	revokeErr map[grantKey]error
}

// NewMemory creates a new in-memory directory
func NewMemory() *Memory {
	return &Memory{
		grants:    make(map[types.Email][]*model.OAuthGrant),
		grantsErr: make(map[types.Email]error),
		revokeErr: make(map[grantKey]error),
	}
}

var _ interfaces.Directory = (*Memory)(nil)

// AddUser registers a user and its grants
func (m *Memory) AddUser(user *model.DirectoryUser, grants ...*model.OAuthGrant) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users = append(m.users, user)
	for _, grant := range grants {
		grant.OwnerEmail = user.PrimaryEmail
		m.grants[user.PrimaryEmail] = append(m.grants[user.PrimaryEmail], grant)
	}
}

// SetUsersError makes ListUsers fail with the given error
func (m *Memory) SetUsersError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.usersErr = err
}

// SetGrantsError makes ListGrants fail for one user
func (m *Memory) SetGrantsError(email types.Email, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.grantsErr[email] = err
}

// SetRevokeError makes RevokeGrant fail for one (user, client) pair
func (m *Memory) SetRevokeError(email types.Email, clientID types.ClientID, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revokeErr[grantKey{email: email, clientID: clientID}] = err
}

// ListUsers returns up to maxResults registered users in insertion order
func (m *Memory) ListUsers(ctx context.Context, customer types.CustomerID, maxResults int) ([]*model.DirectoryUser, error) {
	if maxResults <= 0 {
		return nil, goerr.New("max results must be positive",
			goerr.V("maxResults", maxResults))
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.usersErr != nil {
		return nil, m.usersErr
	}

	n := len(m.users)
	if n > maxResults {
		n = maxResults
	}

	users := make([]*model.DirectoryUser, n)
	copy(users, m.users[:n])
	return users, nil
}

// ListGrants returns the grants of one user
func (m *Memory) ListGrants(ctx context.Context, email types.Email) ([]*model.OAuthGrant, error) {
	if email == "" {
		return nil, goerr.New("email is required")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.grantsErr[email]; err != nil {
		return nil, err
	}

	if !m.hasUser(email) {
		return nil, goerr.Wrap(model.ErrUserNotFound, "no such user",
			goerr.V("email", email))
	}

	grants := make([]*model.OAuthGrant, len(m.grants[email]))
	copy(grants, m.grants[email])
	return grants, nil
}

// RevokeGrant removes the grant for (email, clientID)
func (m *Memory) RevokeGrant(ctx context.Context, email types.Email, clientID types.ClientID) error {
	if email == "" {
		return goerr.New("email is required")
	}
	if clientID == "" {
		return goerr.New("client ID is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.revokeErr[grantKey{email: email, clientID: clientID}]; err != nil {
		return err
	}

	grants := m.grants[email]
	for i, grant := range grants {
		if grant.ClientID == clientID {
			m.grants[email] = append(grants[:i], grants[i+1:]...)
			return nil
		}
	}

	return goerr.Wrap(model.ErrGrantNotFound, "grant already revoked or never existed",
		goerr.V("email", email),
		goerr.V("clientID", clientID))
}

func (m *Memory) hasUser(email types.Email) bool {
	for _, user := range m.users {
		if user.PrimaryEmail == email {
			return true
		}
	}
	return false
}
