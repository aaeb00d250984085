package infrastructure

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// toggleState is the on-disk layout of the toggle state file.
type toggleState struct {
	UseGit bool `yaml:"use_git"`
}

// FileToggleStore persists the source-control toggle in a YAML file.
// It implements domain.ToggleStore. Callers serialize saves.
type FileToggleStore struct {
	path string
}

// NewFileToggleStore creates a store that keeps its state at path.
func NewFileToggleStore(path string) *FileToggleStore {
	return &FileToggleStore{path: path}
}

// LoadToggle reads the saved toggle. A missing file reports found=false.
func (s *FileToggleStore) LoadToggle() (bool, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("failed to read toggle state file: %w", err)
	}

	var state toggleState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return false, false, fmt.Errorf("invalid YAML syntax in toggle state file: %w", err)
	}
	return state.UseGit, true, nil
}

// SaveToggle writes enabled to the state file.
func (s *FileToggleStore) SaveToggle(enabled bool) error {
	data, err := yaml.Marshal(toggleState{UseGit: enabled})
	if err != nil {
		return fmt.Errorf("failed to marshal toggle state: %w", err)
	}
	if err := writeFileAtomic(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write toggle state file: %w", err)
	}
	return nil
}
