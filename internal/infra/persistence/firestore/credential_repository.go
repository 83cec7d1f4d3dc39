package firestore

import (
	"context"
	"log/slog"

	"bitelog/config"
	"bitelog/internal/domain/entity"
	"bitelog/internal/domain/repository"
	"bitelog/internal/infra/persistence/model"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// credentialRepository implements the domain.CredentialRepository interface.
type credentialRepository struct {
	client     *firestore.Client
	collection string
	logger     *slog.Logger
}

// NewCredentialRepository is the constructor for credentialRepository.
func NewCredentialRepository(client *firestore.Client, cfg *config.Config, logger *slog.Logger) repository.CredentialRepository {
	return &credentialRepository{
		client:     client,
		collection: cfg.Firestore.Collection,
		logger:     logger,
	}
}

func (repo *credentialRepository) records() *firestore.CollectionRef {
	return repo.client.Collection(repo.collection)
}

// FindByOwner retrieves the credential claimed by the given owner id via the
// owners membership index. More than one match is a data-integrity condition:
// it is logged with the competing document ids and the first match returned.
func (repo *credentialRepository) FindByOwner(ctx context.Context, ownerID string) (*entity.Credential, error) {
	docs, err := repo.records().
		Where("owners", "array-contains", ownerID).
		Limit(2).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to query credentials by owner")
	}

	if len(docs) == 0 {
		return nil, repository.ErrCredentialNotFound
	}

	if len(docs) > 1 {
		repo.logger.Warn("Multiple credential records claim the same owner",
			slog.String("ownerID", ownerID),
			slog.String("used", docs[0].Ref.ID),
			slog.String("ignored", docs[1].Ref.ID),
		)
	}

	return decodeCredential(docs[0])
}

// FindByExternalID retrieves a credential by its store key.
func (repo *credentialRepository) FindByExternalID(ctx context.Context, externalID string) (*entity.Credential, error) {
	doc, err := repo.records().Doc(externalID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrCredentialNotFound
		}

		return nil, errors.Wrap(err, "failed to get credential")
	}

	return decodeCredential(doc)
}

// Upsert atomically creates or merges the record at cred.Key. Scalar token
// fields are overwritten; owners is unioned with the existing set via the
// store's arrayUnion transform, never replaced wholesale.
func (repo *credentialRepository) Upsert(ctx context.Context, cred *entity.Credential) error {
	owners := make([]any, 0, len(cred.Owners))
	for _, owner := range cred.Owners {
		owners = append(owners, owner)
	}

	data := map[string]any{
		"externalId":   cred.ExternalID,
		"accessToken":  cred.AccessToken,
		"refreshToken": cred.RefreshToken,
		"expiresAt":    cred.ExpiresAt,
		"owners":       firestore.ArrayUnion(owners...),
	}

	if _, err := repo.records().Doc(cred.Key).Set(ctx, data, firestore.MergeAll); err != nil {
		return errors.Wrapf(err, "failed to upsert credential %s", cred.Key)
	}

	return nil
}

// ListAll reads a full snapshot of the collection. A document that fails to
// decode is returned with only its key so the caller classifies it as
// incomplete instead of aborting the batch.
func (repo *credentialRepository) ListAll(ctx context.Context) ([]*entity.Credential, error) {
	var creds []*entity.Credential

	iter := repo.records().Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to enumerate credentials")
		}

		cred, err := decodeCredential(doc)
		if err != nil {
			repo.logger.Warn("Skipping undecodable credential document",
				slog.String("key", doc.Ref.ID),
				slog.Any("error", err),
			)
			creds = append(creds, &entity.Credential{Key: doc.Ref.ID})

			continue
		}

		creds = append(creds, cred)
	}

	return creds, nil
}

func decodeCredential(doc *firestore.DocumentSnapshot) (*entity.Credential, error) {
	var credM model.CredentialModel
	if err := doc.DataTo(&credM); err != nil {
		return nil, errors.Wrapf(err, "failed to decode credential %s", doc.Ref.ID)
	}

	return model.ToCredentialDomain(doc.Ref.ID, &credM), nil
}
