package types

import (
	"github.com/google/uuid"
)

// Email represents a directory user's primary email address
type Email string

// String returns the string representation
func (e Email) String() string {
	return string(e)
}

// ClientID represents an OAuth client identifier
type ClientID string

// String returns the string representation
func (id ClientID) String() string {
	return string(id)
}

// CustomerID represents a directory customer alias (e.g. "my_customer")
type CustomerID string

// String returns the string representation
func (id CustomerID) String() string {
	return string(id)
}

// RunID identifies one revocation run for audit correlation
type RunID string

// String returns the string representation
func (id RunID) String() string {
	return string(id)
}

// NewRunID creates a new RunID
func NewRunID() RunID {
	return RunID(uuid.New().String())
}

// RunMode represents the execution mode of a run
type RunMode string

const (
	// RunModeLive performs revocations
	RunModeLive RunMode = "live"
	// RunModeDryRun logs intended revocations without performing them
	RunModeDryRun RunMode = "dry-run"
)

// String returns the string representation
func (m RunMode) String() string {
	return string(m)
}
