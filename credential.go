package tracker

import (
	"time"
)

// AccessCredential is the opaque key that scopes every paper. There is no
// user account behind it: possession of the secret is the identity, and
// the credential id doubles as the owner id on papers.
type AccessCredential struct {
	ID         string    `json:"id"`
	SecretHash string    `json:"secretHash"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CredentialRepository interface {
	Get(id string) (*AccessCredential, error)
	Insert(*AccessCredential) error
}
