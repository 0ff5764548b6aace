package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// FileStore keeps the settings document in a single JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (fs *FileStore) Load() (Settings, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("FileStore.Load: cannot read %s, starting with defaults: %v", fs.path, err)
		}
		return Settings{}, nil
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		log.Printf("FileStore.Load: malformed document %s, starting with defaults: %v", fs.path, err)
		return Settings{}, nil
	}

	return s, nil
}

// Save writes the whole document to a temp file and renames it over the old
// one, so readers never observe a partial write.
func (fs *FileStore) Save(s Settings) error {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return fmt.Errorf("FileStore.Save: cannot encode settings: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fs.path), "settings-*.json")
	if err != nil {
		return fmt.Errorf("FileStore.Save: cannot create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("FileStore.Save: cannot write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("FileStore.Save: cannot close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), fs.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("FileStore.Save: cannot replace %s: %w", fs.path, err)
	}

	return nil
}
