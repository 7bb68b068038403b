package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/skoll/pkg/domain/types"
)

// SweepPolicy restricts which accounts a revocation run may touch.
// Protected accounts (break-glass admins, service owners) are visited but
// never have their grants listed or revoked.
type SweepPolicy struct {
	Protected []types.Email `yaml:"protected"`
}

// Validate validates the sweep policy
func (p *SweepPolicy) Validate() error {
	seen := make(map[types.Email]bool)
	for _, email := range p.Protected {
		if email == "" {
			return goerr.New("protected entry must not be empty")
		}
		if seen[email] {
			return goerr.New("duplicate protected entry",
				goerr.V("email", email))
		}
		seen[email] = true
	}
	return nil
}

// IsProtected reports whether the given account must not be swept
func (p *SweepPolicy) IsProtected(email types.Email) bool {
	if p == nil {
		return false
	}
	for _, protected := range p.Protected {
		if protected == email {
			return true
		}
	}
	return false
}
