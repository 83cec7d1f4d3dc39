package impl

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"testing"

	"bitelog/internal/domain/entity"
	"bitelog/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCredentialRepo is an in-memory CredentialRepository with the same
// merge-upsert contract as the Firestore implementation: scalar fields are
// overwritten, owners are unioned. failKeys simulates per-record write
// failures.
type memCredentialRepo struct {
	records  map[string]*entity.Credential
	failKeys map[string]bool
	upserts  int
}

func newMemCredentialRepo(creds ...*entity.Credential) *memCredentialRepo {
	repo := &memCredentialRepo{
		records:  make(map[string]*entity.Credential),
		failKeys: make(map[string]bool),
	}
	for _, cred := range creds {
		clone := *cred
		repo.records[cred.Key] = &clone
	}

	return repo
}

func (r *memCredentialRepo) FindByOwner(ctx context.Context, ownerID string) (*entity.Credential, error) {
	for _, cred := range r.records {
		if slices.Contains(cred.Owners, ownerID) {
			clone := *cred

			return &clone, nil
		}
	}

	return nil, repository.ErrCredentialNotFound
}

func (r *memCredentialRepo) FindByExternalID(ctx context.Context, externalID string) (*entity.Credential, error) {
	cred, ok := r.records[externalID]
	if !ok {
		return nil, repository.ErrCredentialNotFound
	}
	clone := *cred

	return &clone, nil
}

func (r *memCredentialRepo) Upsert(ctx context.Context, cred *entity.Credential) error {
	r.upserts++
	if r.failKeys[cred.Key] {
		return errors.New("simulated write failure")
	}

	existing, ok := r.records[cred.Key]
	if !ok {
		clone := *cred
		r.records[cred.Key] = &clone

		return nil
	}

	existing.ExternalID = cred.ExternalID
	existing.AccessToken = cred.AccessToken
	existing.RefreshToken = cred.RefreshToken
	existing.ExpiresAt = cred.ExpiresAt
	for _, owner := range cred.Owners {
		if !slices.Contains(existing.Owners, owner) {
			existing.Owners = append(existing.Owners, owner)
		}
	}

	return nil
}

func (r *memCredentialRepo) ListAll(ctx context.Context) ([]*entity.Credential, error) {
	creds := make([]*entity.Credential, 0, len(r.records))
	for _, cred := range r.records {
		clone := *cred
		creds = append(creds, &clone)
	}

	return creds, nil
}

func createTestMigrationService(repo repository.CredentialRepository) *migrationService {
	return &migrationService{
		credRepo: repo,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func legacyCred(ownerID, externalID string) *entity.Credential {
	return &entity.Credential{
		Key:          ownerID,
		ExternalID:   externalID,
		Owner:        ownerID,
		AccessToken:  "access-" + ownerID,
		RefreshToken: "refresh-" + ownerID,
		ExpiresAt:    1700000000000,
	}
}

func TestMigrationService_Run_MigratesLegacyRecord(t *testing.T) {
	repo := newMemCredentialRepo(legacyCred("u1", "f1"))
	srv := createTestMigrationService(repo)

	summary, err := srv.Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.Migrated)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.Errored)

	migrated, err := repo.FindByExternalID(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, "f1", migrated.ExternalID)
	assert.Equal(t, []string{"u1"}, migrated.Owners)
	assert.Equal(t, "access-u1", migrated.AccessToken)
	assert.Equal(t, "refresh-u1", migrated.RefreshToken)
	assert.Equal(t, entity.SchemaCurrent, migrated.Classify())

	// The legacy source record is never deleted.
	source, err := repo.FindByExternalID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.SchemaLegacy, source.Classify())
}

func TestMigrationService_Run_Idempotent(t *testing.T) {
	repo := newMemCredentialRepo(legacyCred("u1", "f1"))
	srv := createTestMigrationService(repo)

	first, err := srv.Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Migrated)

	// Second run sees the legacy source again plus the migrated record; the
	// re-migration converges on the same state.
	second, err := srv.Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Total)
	assert.Equal(t, 1, second.Migrated)
	assert.Equal(t, 1, second.Skipped)

	migrated, err := repo.FindByExternalID(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, migrated.Owners)
}

func TestMigrationService_Run_UnionPreservesLiveRefreshOwners(t *testing.T) {
	// A current-schema record at the target key already claims another owner
	// (e.g. written by a concurrent refresh). Migration must union, not
	// replace, the owners set.
	current := &entity.Credential{
		Key:          "f1",
		ExternalID:   "f1",
		Owners:       []string{"owner-live"},
		AccessToken:  "access-live",
		RefreshToken: "refresh-live",
		ExpiresAt:    1800000000000,
	}
	repo := newMemCredentialRepo(current, legacyCred("u1", "f1"))
	srv := createTestMigrationService(repo)

	summary, err := srv.Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Migrated)
	assert.Equal(t, 1, summary.Skipped)

	merged, err := repo.FindByExternalID(context.Background(), "f1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"owner-live", "u1"}, merged.Owners)
}

func TestMigrationService_Run_SkipsIncompleteRecords(t *testing.T) {
	noExternal := &entity.Credential{Key: "u2", Owner: "u2", RefreshToken: "refresh"}
	noOwner := &entity.Credential{Key: "x9", ExternalID: "x9", RefreshToken: "refresh"}
	repo := newMemCredentialRepo(noExternal, noOwner)
	srv := createTestMigrationService(repo)

	summary, err := srv.Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 0, summary.Migrated)
	assert.Equal(t, 2, summary.Skipped)
	assert.Equal(t, 0, summary.Errored)
	assert.Equal(t, 0, repo.upserts)
}

func TestMigrationService_Run_DryRunWritesNothing(t *testing.T) {
	repo := newMemCredentialRepo(legacyCred("u1", "f1"), legacyCred("u2", "f2"))
	srv := createTestMigrationService(repo)

	summary, err := srv.Run(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Migrated)
	assert.Equal(t, 0, repo.upserts)

	_, err = repo.FindByExternalID(context.Background(), "f1")
	assert.ErrorIs(t, err, repository.ErrCredentialNotFound)
}

func TestMigrationService_Run_PerRecordFailureDoesNotAbort(t *testing.T) {
	repo := newMemCredentialRepo(legacyCred("u1", "f1"), legacyCred("u2", "f2"))
	repo.failKeys["f1"] = true
	srv := createTestMigrationService(repo)

	summary, err := srv.Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Migrated)
	assert.Equal(t, 1, summary.Errored)

	migrated, err := repo.FindByExternalID(context.Background(), "f2")
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, migrated.Owners)
}

func TestMigrationService_Run_ListFailureIsFatal(t *testing.T) {
	srv := createTestMigrationService(failingListRepo{})

	summary, err := srv.Run(context.Background(), false)
	require.Error(t, err)
	assert.Nil(t, summary)
}

type failingListRepo struct{}

func (failingListRepo) FindByOwner(ctx context.Context, ownerID string) (*entity.Credential, error) {
	return nil, repository.ErrCredentialNotFound
}

func (failingListRepo) FindByExternalID(ctx context.Context, externalID string) (*entity.Credential, error) {
	return nil, repository.ErrCredentialNotFound
}

func (failingListRepo) Upsert(ctx context.Context, cred *entity.Credential) error {
	return nil
}

func (failingListRepo) ListAll(ctx context.Context) ([]*entity.Credential, error) {
	return nil, errors.New("snapshot read failed")
}
