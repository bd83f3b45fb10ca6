package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	tracker "github.com/BHUPESH003/research-paper-tracker"
	"github.com/BHUPESH003/research-paper-tracker/errors"
)

// CredentialService issues and resolves the opaque access keys. A key is
// "<id>.<secret>": the id locates the credential, the secret is checked
// against its bcrypt hash. The plain secret exists only in the issuance
// response.
type CredentialService struct {
	repository tracker.CredentialRepository
}

func NewCredentialService(repo tracker.CredentialRepository) *CredentialService {
	return &CredentialService{
		repository: repo,
	}
}

// Issue creates a credential and returns the full key. There is no way to
// recover it later.
func (s *CredentialService) Issue() (string, error) {
	secret, err := randToken(32)
	if err != nil {
		return "", errors.New("could not generate secret", errors.WithCause(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.New("could not hash secret", errors.WithCause(err))
	}

	credential := tracker.AccessCredential{
		ID:         uuid.NewString(),
		SecretHash: string(hash),
		CreatedAt:  time.Now(),
	}

	if err := s.repository.Insert(&credential); err != nil {
		return "", errors.New("could not save credential", errors.WithCause(err))
	}

	return credential.ID + "." + secret, nil
}

// Resolve maps a key to the owner id it stands for. Every failure mode
// collapses to the same unauthorized error.
func (s *CredentialService) Resolve(key string) (string, error) {
	errInvalid := errors.New("invalid credential", errors.Unauthorized())

	id, secret, found := strings.Cut(key, ".")
	if !found || id == "" || secret == "" {
		return "", errInvalid
	}

	credential, err := s.repository.Get(id)
	if err != nil {
		return "", errors.New("could not get credential", errors.WithCause(err))
	}
	if credential == nil {
		return "", errInvalid
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.SecretHash), []byte(secret)); err != nil {
		return "", errInvalid
	}

	return credential.ID, nil
}
