// Package model contains the store-specific structs for Firestore documents.
package model

import (
	"bitelog/internal/domain/entity"
)

// CredentialModel is the Firestore-specific struct for credential documents.
// It decodes both keying schemes: legacy documents carry the scalar Owner
// field, current documents carry the Owners array.
type CredentialModel struct {
	ExternalID   string   `firestore:"externalId"`
	Owner        string   `firestore:"owner"`
	Owners       []string `firestore:"owners"`
	AccessToken  string   `firestore:"accessToken"`
	RefreshToken string   `firestore:"refreshToken"`
	ExpiresAt    int64    `firestore:"expiresAt"`
}

// ToCredentialDomain converts a decoded document into the domain entity.
// The document id is the store key.
func ToCredentialDomain(key string, m *CredentialModel) *entity.Credential {
	return &entity.Credential{
		Key:          key,
		ExternalID:   m.ExternalID,
		Owner:        m.Owner,
		Owners:       m.Owners,
		AccessToken:  m.AccessToken,
		RefreshToken: m.RefreshToken,
		ExpiresAt:    m.ExpiresAt,
	}
}
