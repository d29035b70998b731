package workflow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/vector233/AsgFlow/pkg/utils"
)

// Store persists workflows as JSON files in a presets directory.
// A workflow document is the bare ordered array of its steps.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir; an empty dir uses the per-OS
// presets directory.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = utils.GetPresetsDir()
	}
	return &Store{dir: dir}
}

// Dir returns the presets directory
func (s *Store) Dir() string {
	return s.dir
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// Save writes the workflow under the given name and returns the file path
func (s *Store) Save(name string, wf Workflow) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create presets directory: %w", err)
	}

	safeName := unsafeNameChars.ReplaceAllString(name, "_")
	if strings.Trim(safeName, "_") == "" {
		safeName = "wf_" + uuid.NewString()
	}

	data, err := json.MarshalIndent(wf, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal workflow: %w", err)
	}

	path := filepath.Join(s.dir, safeName+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write workflow file: %w", err)
	}
	return path, nil
}

// Load reads a workflow from the given file
func (s *Store) Load(path string) (Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workflow file: %w", err)
	}

	var wf Workflow
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("parse workflow file: %w", err)
	}
	return wf, nil
}

// List returns the paths of all saved workflows
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read presets directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, entry.Name()))
	}
	return paths, nil
}
