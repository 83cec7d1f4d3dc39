package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCredential_Classify(t *testing.T) {
	tests := []struct {
		name string
		cred Credential
		want Schema
	}{
		{
			name: "current record",
			cred: Credential{Key: "f1", ExternalID: "f1", Owners: []string{"u1"}},
			want: SchemaCurrent,
		},
		{
			name: "current with empty owners set",
			cred: Credential{Key: "f1", ExternalID: "f1", Owners: []string{}},
			want: SchemaCurrent,
		},
		{
			name: "current with leftover scalar owner",
			cred: Credential{Key: "f1", ExternalID: "f1", Owner: "u1", Owners: []string{"u1"}},
			want: SchemaCurrent,
		},
		{
			name: "legacy record",
			cred: Credential{Key: "u1", ExternalID: "f1", Owner: "u1"},
			want: SchemaLegacy,
		},
		{
			name: "missing external id",
			cred: Credential{Key: "u1", Owner: "u1"},
			want: SchemaIncomplete,
		},
		{
			name: "missing owner",
			cred: Credential{Key: "f1", ExternalID: "f1"},
			want: SchemaIncomplete,
		},
		{
			name: "empty record",
			cred: Credential{Key: "x"},
			want: SchemaIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cred.Classify())
		})
	}
}

func TestCredential_Usable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cred := Credential{ExpiresAt: now.Add(time.Minute).UnixMilli()}

	assert.True(t, cred.Usable(now))
	assert.False(t, cred.Usable(now.Add(time.Minute)))
	assert.False(t, cred.Usable(now.Add(2*time.Minute)))

	zero := Credential{}
	assert.False(t, zero.Usable(now))
}

func TestCredential_HasOwner(t *testing.T) {
	legacy := Credential{Key: "u1", ExternalID: "f1", Owner: "u1"}
	assert.True(t, legacy.HasOwner("u1"))
	assert.False(t, legacy.HasOwner("u2"))

	current := Credential{Key: "f1", ExternalID: "f1", Owners: []string{"u1", "u2"}}
	assert.True(t, current.HasOwner("u2"))
	assert.False(t, current.HasOwner("u3"))
}
