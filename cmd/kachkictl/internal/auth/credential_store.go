package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/guzzzlikz/web-kachki-client/pkg/sdk"
)

const credentialsFile = "credentials.json"

// FileStore implements sdk.CredentialStore using a JSON file under
// ~/.kachki. This is the CLI's durable token persistence, the equivalent of
// the web frontend's localStorage key.
type FileStore struct {
	path string
}

var _ sdk.CredentialStore = (*FileStore)(nil)

// NewFileStore creates a FileStore rooted in the user's home directory.
func NewFileStore() (*FileStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	kachkiDir := filepath.Join(home, ".kachki")
	if err := os.MkdirAll(kachkiDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create .kachki directory: %w", err)
	}
	return &FileStore{
		path: filepath.Join(kachkiDir, credentialsFile),
	}, nil
}

// NewFileStoreAt creates a FileStore at an explicit path, mainly for tests.
func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

// Save writes the credentials to the file with owner-only permissions.
func (s *FileStore) Save(creds *sdk.Credentials) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	return os.WriteFile(s.path, data, 0600)
}

// Load reads the credentials from the file.
func (s *FileStore) Load() (*sdk.Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, sdk.ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	var creds sdk.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credentials: %w", err)
	}
	return &creds, nil
}

// Delete removes the credentials file. A missing file is not an error.
func (s *FileStore) Delete() error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(s.path)
}
