package mock

import (
	"fmt"

	tracker "github.com/BHUPESH003/research-paper-tracker"
)

// CredentialRepository is an in-memory tracker.CredentialRepository for
// tests.
type CredentialRepository struct {
	db map[string]*tracker.AccessCredential
}

func (r *CredentialRepository) Get(id string) (*tracker.AccessCredential, error) {
	if r.db == nil {
		r.db = make(map[string]*tracker.AccessCredential)
	}

	c, ok := r.db[id]
	if !ok {
		return nil, nil
	}

	copied := *c
	return &copied, nil
}

func (r *CredentialRepository) Insert(credential *tracker.AccessCredential) error {
	if r.db == nil {
		r.db = make(map[string]*tracker.AccessCredential)
	}

	if _, ok := r.db[credential.ID]; ok {
		return fmt.Errorf("credential %s already exists", credential.ID)
	}

	copied := *credential
	r.db[credential.ID] = &copied
	return nil
}
