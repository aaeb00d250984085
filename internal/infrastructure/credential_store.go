package infrastructure

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"release-notes-plugin/internal/domain"
)

// credentialsFile is the on-disk layout of a credentials file.
type credentialsFile struct {
	Credentials []domain.Credential `yaml:"credentials"`
}

// FileCredentialStore is a credential store backed by a YAML file.
// It implements domain.CredentialStore.
type FileCredentialStore struct {
	path string

	mu          sync.RWMutex
	credentials []domain.Credential
}

// OpenFileCredentialStore loads the credentials file at path.
// A missing file yields an empty store that is created on the first Add.
func OpenFileCredentialStore(path string) (*FileCredentialStore, error) {
	store := &FileCredentialStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var file credentialsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid YAML syntax in credentials file: %w", err)
	}

	if err := validateCredentials(file.Credentials); err != nil {
		return nil, fmt.Errorf("credentials file validation failed: %w", err)
	}

	store.credentials = file.Credentials
	return store, nil
}

// validateCredentials checks every entry and collects all problems.
func validateCredentials(credentials []domain.Credential) error {
	var errors []string
	seen := make(map[string]bool, len(credentials))

	for i, c := range credentials {
		if c.ID == "" {
			errors = append(errors, fmt.Sprintf("credential %d: id is required", i))
		} else if seen[c.ID] {
			errors = append(errors, fmt.Sprintf("credential %d: duplicate id %q", i, c.ID))
		}
		seen[c.ID] = true

		if !c.Kind.Valid() {
			errors = append(errors, fmt.Sprintf("credential %d: invalid kind '%s'", i, c.Kind))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}
	return nil
}

// Credentials returns the credentials visible to sc in file order.
func (s *FileCredentialStore) Credentials(ctx context.Context, sc domain.SecurityContext) ([]domain.Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var visible []domain.Credential
	for _, c := range s.credentials {
		if sc.CanSee(c.Scope) {
			visible = append(visible, c)
		}
	}
	return visible, nil
}

// Add stores c and writes the file. An empty id is replaced by a generated one.
// Returns the stored credential.
func (s *FileCredentialStore) Add(c domain.Credential) (domain.Credential, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if !c.Kind.Valid() {
		return domain.Credential{}, fmt.Errorf("invalid credential kind '%s'", c.Kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.credentials {
		if existing.ID == c.ID {
			return domain.Credential{}, fmt.Errorf("credential %q already exists", c.ID)
		}
	}

	updated := append(append([]domain.Credential(nil), s.credentials...), c)
	data, err := yaml.Marshal(credentialsFile{Credentials: updated})
	if err != nil {
		return domain.Credential{}, fmt.Errorf("failed to marshal credentials: %w", err)
	}
	if err := writeFileAtomic(s.path, data, 0600); err != nil {
		return domain.Credential{}, fmt.Errorf("failed to write credentials file: %w", err)
	}

	s.credentials = updated
	return c, nil
}

// writeFileAtomic writes data to a temporary file next to path and renames it into place.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
