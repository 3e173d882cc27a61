package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/pfrederiksen/careerdb/internal/career"
	"github.com/pfrederiksen/careerdb/internal/player"
)

// DefaultDataDir is used when no data directory is configured
const DefaultDataDir = "~/.local/share/careerdb"

const (
	batchPrefix   = "players"
	datasetPrefix = "dataset"
)

// ErrPlayerNotFound is returned when a player ID is in no stored batch
var ErrPlayerNotFound = eris.New("player not found")

// Storage handles persistence of player batches and datasets
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	dataDir, err := ExpandHome(dataDir)
	if err != nil {
		return nil, err
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, eris.Wrap(err, "creating data directory")
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// ExpandHome expands a leading ~/ to the user's home directory
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", eris.Wrap(err, "getting home directory")
	}
	return filepath.Join(home, path[2:]), nil
}

// Dir returns the storage directory
func (s *Storage) Dir() string {
	return s.dataDir
}

// path returns the file for a prefix and batch name
func (s *Storage) path(prefix, name string) string {
	name = normalizeName(name)
	if name == "" {
		return filepath.Join(s.dataDir, prefix+".json")
	}
	return filepath.Join(s.dataDir, prefix+"_"+name+".json")
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "default" {
		return ""
	}
	return strings.Join(strings.Fields(name), "_")
}

// LoadBatch loads a player batch from disk. A missing file yields an empty
// batch.
func (s *Storage) LoadBatch(name string) (*player.Batch, error) {
	var batch player.Batch
	found, err := s.readJSON(s.path(batchPrefix, name), &batch)
	if err != nil {
		return nil, eris.Wrapf(err, "loading batch %q", name)
	}
	if !found {
		// No previous batch, return empty one
		return player.NewBatch(name, nil), nil
	}

	if batch.Players == nil {
		batch.Players = make([]*player.Player, 0)
	}
	return &batch, nil
}

// SaveBatch saves a player batch to disk
func (s *Storage) SaveBatch(batch *player.Batch, name string) error {
	if batch.ScrapedAt.IsZero() {
		batch.ScrapedAt = time.Now().UTC()
	}
	if err := s.writeJSON(s.path(batchPrefix, name), batch); err != nil {
		return eris.Wrapf(err, "saving batch %q", name)
	}
	return nil
}

// ListBatches returns the names of stored batches, sorted, with the default
// batch as "default"
func (s *Storage) ListBatches() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dataDir, batchPrefix+"*.json"))
	if err != nil {
		return nil, eris.Wrap(err, "listing batches")
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		base := strings.TrimSuffix(filepath.Base(m), ".json")
		switch {
		case base == batchPrefix:
			names = append(names, "default")
		case strings.HasPrefix(base, batchPrefix+"_"):
			names = append(names, strings.TrimPrefix(base, batchPrefix+"_"))
		}
	}
	sort.Strings(names)
	return names, nil
}

// GetPlayerByID retrieves a player from the named batch ("" is the default)
func (s *Storage) GetPlayerByID(batchName, id string) (*player.Player, error) {
	batch, err := s.LoadBatch(batchName)
	if err != nil {
		return nil, err
	}

	for _, p := range batch.Players {
		if p != nil && p.ID == id {
			return p, nil
		}
	}

	return nil, eris.Wrapf(ErrPlayerNotFound, "player %s", id)
}

// LoadDataset loads a derived dataset. A missing file yields an empty dataset.
func (s *Storage) LoadDataset(name string) (career.Dataset, error) {
	var ds career.Dataset
	if _, err := s.readJSON(s.path(datasetPrefix, name), &ds); err != nil {
		return career.Dataset{}, eris.Wrapf(err, "loading dataset %q", name)
	}
	return ds, nil
}

// SaveDataset saves a derived dataset
func (s *Storage) SaveDataset(ds career.Dataset, name string) error {
	if err := s.writeJSON(s.path(datasetPrefix, name), ds); err != nil {
		return eris.Wrapf(err, "saving dataset %q", name)
	}
	return nil
}

// readJSON decodes path into v. found is false when the file does not exist.
func (s *Storage) readJSON(path string, v interface{}) (found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, eris.Wrap(err, "reading file")
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, eris.Wrap(err, "parsing file")
	}
	return true, nil
}

func (s *Storage) writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrap(err, "encoding file")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return eris.Wrap(err, "writing file")
	}
	return nil
}
