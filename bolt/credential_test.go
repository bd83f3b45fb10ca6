package bolt

import (
	"os"
	"testing"
	"time"

	tracker "github.com/BHUPESH003/research-paper-tracker"
)

func createCredentialStore(t *testing.T) (*CredentialStore, func()) {
	tmpFile, err := os.CreateTemp("", "")
	if err != nil {
		t.Fatal("could not create tmp file:", err)
	}

	filename := tmpFile.Name()
	driver := Driver{}
	err = driver.Open(filename)
	if err != nil {
		os.Remove(filename)
		t.Fatal("could not create bucket: ", err)
	}

	return &CredentialStore{Driver: &driver}, func() {
		driver.Close()
		os.Remove(filename)
	}
}

func TestCredentialStore(t *testing.T) {
	store, f := createCredentialStore(t)
	defer f()

	credential := tracker.AccessCredential{
		ID:         "cred-1",
		SecretHash: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:  time.Now(),
	}
	if err := store.Insert(&credential); err != nil {
		t.Fatal("error inserting:", err)
	}

	retrieved, err := store.Get(credential.ID)
	if err != nil {
		t.Fatal("error getting:", err)
	}
	if retrieved == nil {
		t.Fatal("expected a credential, got nil")
	}
	if retrieved.SecretHash != credential.SecretHash {
		t.Errorf("invalid hash: expected %s got %s", credential.SecretHash, retrieved.SecretHash)
	}

	// Ids are never reused.
	if err := store.Insert(&credential); err == nil {
		t.Error("inserting the same id twice should fail")
	}

	retrieved, err = store.Get("unknown")
	if err != nil {
		t.Fatal("error getting:", err)
	}
	if retrieved != nil {
		t.Fatalf("expected nil, got %+v", retrieved)
	}
}
