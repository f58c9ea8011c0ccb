package forecast

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

// ErrArtifactNotFound is returned when a named artifact does not exist
var ErrArtifactNotFound = errors.New("artifact not found")

// Artifact names expected in the models directory
const (
	ArtifactRegression     = "regression_model"
	ArtifactClassification = "classification_model"
	ArtifactScaler         = "scaler"
	ArtifactFeatureNames   = "feature_names"
)

// RequiredArtifacts lists every artifact the predictor needs
func RequiredArtifacts() []string {
	return []string{ArtifactRegression, ArtifactClassification, ArtifactScaler, ArtifactFeatureNames}
}

var artifactName = regexp.MustCompile(`^[a-z0-9_]+$`)

// Store reads JSON artifacts from a directory, keyed by name.
// Loaded artifacts are cached for the life of the store.
// ⭐ SSOT: 모델 아티팩트 로딩은 여기서만
type Store struct {
	dir string

	mu    sync.RWMutex
	cache map[string][]byte

	modelsMu sync.Mutex
	models   *Models
}

// NewStore creates a store rooted at dir
func NewStore(dir string) *Store {
	return &Store{
		dir:   dir,
		cache: make(map[string][]byte),
	}
}

// Dir returns the models directory
func (s *Store) Dir() string {
	return s.dir
}

// Load returns the raw artifact <dir>/<name>.json, or ErrArtifactNotFound
func (s *Store) Load(name string) ([]byte, error) {
	if !artifactName.MatchString(name) {
		return nil, fmt.Errorf("invalid artifact name %q", name)
	}

	s.mu.RLock()
	data, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return data, nil
	}

	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrArtifactNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", name, err)
	}

	s.mu.Lock()
	s.cache[name] = data
	s.mu.Unlock()

	return data, nil
}

// Exists reports whether the artifact file is present
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}

// Status reports presence of every required artifact
func (s *Store) Status() map[string]bool {
	out := make(map[string]bool, 4)
	for _, name := range RequiredArtifacts() {
		out[name] = s.Exists(name)
	}
	return out
}

// LoadModels loads and checks the four predictor artifacts.
// A successful load is cached; a failed one is retried on the next call.
func (s *Store) LoadModels() (*Models, error) {
	s.modelsMu.Lock()
	defer s.modelsMu.Unlock()

	if s.models != nil {
		return s.models, nil
	}

	var m Models
	targets := []struct {
		name string
		dst  interface{}
	}{
		{ArtifactRegression, &m.Regression},
		{ArtifactClassification, &m.Classification},
		{ArtifactScaler, &m.Scaler},
		{ArtifactFeatureNames, &m.FeatureNames},
	}

	for _, t := range targets {
		data, err := s.Load(t.name)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, t.dst); err != nil {
			return nil, fmt.Errorf("decode artifact %s: %w", t.name, err)
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	s.models = &m
	return s.models, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}
