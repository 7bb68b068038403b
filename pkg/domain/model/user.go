package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/skoll/pkg/domain/types"
)

// DirectoryUser is one entry of the organization's user directory.
// The runner only reads it; the directory owns the record.
type DirectoryUser struct {
	PrimaryEmail types.Email
	DisplayName  string
}

// NewDirectoryUser creates a new DirectoryUser instance
func NewDirectoryUser(email types.Email, displayName string) (*DirectoryUser, error) {
	if email == "" {
		return nil, goerr.New("primary email is required")
	}

	return &DirectoryUser{
		PrimaryEmail: email,
		DisplayName:  displayName,
	}, nil
}

// OAuthGrant is an OAuth authorization record linking a user to a client
// application. Revocation is keyed by (OwnerEmail, ClientID).
type OAuthGrant struct {
	ClientID    types.ClientID
	OwnerEmail  types.Email
	DisplayText string
	Scopes      []string
}

// Matches reports whether the grant belongs to the given client identifier
func (g *OAuthGrant) Matches(target types.ClientID) bool {
	return g.ClientID == target
}
