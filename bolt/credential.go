package bolt

import (
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"

	tracker "github.com/BHUPESH003/research-paper-tracker"
)

var credentialBucket = []byte("credentials")

// CredentialStore stores the access credentials, secrets as bcrypt hashes.
type CredentialStore struct {
	Driver *Driver
}

// Get retrieves the credential with the given id, nil when unknown.
func (s *CredentialStore) Get(id string) (*tracker.AccessCredential, error) {
	var credential *tracker.AccessCredential
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(credentialBucket)

		data := bucket.Get([]byte(id))
		if data == nil {
			return nil
		}

		var c tracker.AccessCredential
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		credential = &c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return credential, nil
}

// Insert saves a new credential. Credentials are never updated or deleted.
func (s *CredentialStore) Insert(credential *tracker.AccessCredential) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(credentialBucket)

		if bucket.Get([]byte(credential.ID)) != nil {
			return fmt.Errorf("credential %s already exists", credential.ID)
		}

		data, err := json.Marshal(credential)
		if err != nil {
			return err
		}

		return bucket.Put([]byte(credential.ID), data)
	})
}
