// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"slices"
	"time"
)

// Schema identifies which keying scheme a stored credential record follows.
type Schema string

const (
	// SchemaCurrent records are keyed by the provider account id and carry a
	// set-valued owners field.
	SchemaCurrent Schema = "current"
	// SchemaLegacy records are keyed by the owner id and carry a single
	// scalar owner field alongside the provider account id.
	SchemaLegacy Schema = "legacy"
	// SchemaIncomplete records are partially written or corrupt and must not
	// be migrated.
	SchemaIncomplete Schema = "incomplete"
)

// Credential represents one user's stored OAuth tokens for the fitness
// provider. A single provider account may be claimed by multiple owner ids
// (e.g. the same person signed in through different identity accounts).
type Credential struct {
	Key          string   // The store document key: owner id (legacy) or provider account id (current).
	ExternalID   string   // The fitness provider's own account id for this user.
	Owner        string   // Legacy scalar owner field; empty on current-schema records.
	Owners       []string // Set of owner ids claiming this credential; nil on legacy records.
	AccessToken  string   // Short-lived token used for provider API calls.
	RefreshToken string   // Long-lived token used to mint new access tokens.
	ExpiresAt    int64    // Epoch milliseconds after which AccessToken must not be used.
}

// Classify reports which schema the record follows. Every record falls into
// exactly one class: a present owners set marks the record current regardless
// of leftover scalar fields; otherwise a record needs both the scalar owner
// and the provider account id to be migratable.
func (c *Credential) Classify() Schema {
	if c.Owners != nil {
		return SchemaCurrent
	}
	if c.Owner == "" || c.ExternalID == "" {
		return SchemaIncomplete
	}

	return SchemaLegacy
}

// Usable reports whether the stored access token may still be presented to
// the provider at the given instant.
func (c *Credential) Usable(now time.Time) bool {
	return now.UnixMilli() < c.ExpiresAt
}

// HasOwner reports whether the given owner id already claims this credential.
func (c *Credential) HasOwner(ownerID string) bool {
	if c.Owners == nil {
		return c.Owner == ownerID
	}

	return slices.Contains(c.Owners, ownerID)
}
