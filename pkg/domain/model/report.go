package model

import (
	"fmt"
	"io"
	"time"

	"github.com/secmon-lab/skoll/pkg/domain/types"
)

// UserOutcome records what happened to one processed user. It is appended
// to the report once and never mutated afterwards.
type UserOutcome struct {
	Email               types.Email `json:"email"`
	GrantsFound         int         `json:"grantsFound"`
	MatchingGrantsFound int         `json:"matchingGrantsFound"`
	Revoked             int         `json:"revoked"`
	Errored             bool        `json:"errored"`
	Skipped             bool        `json:"skipped,omitempty"`
}

// RunReport is the auditable result of one revocation run. It lives only
// for the duration of the invocation; there is no persistence.
type RunReport struct {
	RunID          types.RunID    `json:"runId"`
	Mode           types.RunMode  `json:"mode"`
	TargetClientID types.ClientID `json:"targetClientId"`
	TotalUsers     int            `json:"totalUsers"`
	UsersProcessed int            `json:"usersProcessed"`
	UsersWithMatch int            `json:"usersWithMatch"`
	GrantsRevoked  int            `json:"grantsRevoked"`
	Errors         int            `json:"errors"`
	UsersSkipped   int            `json:"usersSkipped,omitempty"`
	PerUser        []UserOutcome  `json:"perUserDetails"`
	StartedAt      time.Time      `json:"startedAt"`
	EndedAt        time.Time      `json:"endedAt"`
}

// NewRunReport creates a report for the given configuration with the start
// timestamp stamped
func NewRunReport(cfg RunConfig) *RunReport {
	return &RunReport{
		RunID:          types.NewRunID(),
		Mode:           cfg.Mode(),
		TargetClientID: cfg.TargetClientID,
		PerUser:        []UserOutcome{},
		StartedAt:      time.Now(),
	}
}

// Append records one user's outcome and updates the aggregate counters
func (r *RunReport) Append(outcome UserOutcome) {
	r.PerUser = append(r.PerUser, outcome)
	r.UsersProcessed++
	if outcome.Skipped {
		r.UsersSkipped++
	}
	if outcome.MatchingGrantsFound > 0 {
		r.UsersWithMatch++
	}
	r.GrantsRevoked += outcome.Revoked
}

// Finalize stamps the end timestamp. Safe to call once at run end.
func (r *RunReport) Finalize() {
	r.EndedAt = time.Now()
}

// Duration returns the wall-clock duration of the run
func (r *RunReport) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// MatchedUsers returns the outcomes of users that had at least one grant
// for the target client, in processing order
func (r *RunReport) MatchedUsers() []UserOutcome {
	var matched []UserOutcome
	for _, outcome := range r.PerUser {
		if outcome.MatchingGrantsFound > 0 {
			matched = append(matched, outcome)
		}
	}
	return matched
}

// WriteText renders the report as a human-readable audit log
func (r *RunReport) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Revocation run %s (%s)\n", r.RunID, r.Mode); err != nil {
		return err
	}
	fmt.Fprintf(w, "  target client: %s\n", r.TargetClientID)
	fmt.Fprintf(w, "  started: %s  ended: %s  (%s)\n",
		r.StartedAt.Format(time.RFC3339),
		r.EndedAt.Format(time.RFC3339),
		r.Duration().Round(time.Millisecond),
	)
	fmt.Fprintf(w, "  users: total=%d processed=%d matched=%d skipped=%d\n",
		r.TotalUsers, r.UsersProcessed, r.UsersWithMatch, r.UsersSkipped)
	fmt.Fprintf(w, "  grants revoked: %d  errors: %d\n", r.GrantsRevoked, r.Errors)

	for _, outcome := range r.PerUser {
		if outcome.Skipped {
			fmt.Fprintf(w, "  - %s: skipped (protected)\n", outcome.Email)
			continue
		}
		if outcome.Errored {
			fmt.Fprintf(w, "  - %s: grants=%d matched=%d revoked=%d ERRORED\n",
				outcome.Email, outcome.GrantsFound, outcome.MatchingGrantsFound, outcome.Revoked)
			continue
		}
		if outcome.MatchingGrantsFound > 0 {
			fmt.Fprintf(w, "  - %s: grants=%d matched=%d revoked=%d\n",
				outcome.Email, outcome.GrantsFound, outcome.MatchingGrantsFound, outcome.Revoked)
		}
	}

	return nil
}
