package statestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SnapshotRecord is the storage representation of a confirmed snapshot.
//
// It is decoupled from the mcwatch.Snapshot type to allow the persistence
// format and the in-memory model to evolve independently.
type SnapshotRecord struct {
	Online      bool     `json:"online"`
	PlayerCount int      `json:"player_count"`
	PlayerMax   int      `json:"player_max"`
	Version     string   `json:"version,omitempty"`
	Mode        string   `json:"mode,omitempty"`
	Software    string   `json:"software,omitempty"`
	MOTD        string   `json:"motd,omitempty"`
	PluginCount int      `json:"plugin_count,omitempty"`
	ModCount    int      `json:"mod_count,omitempty"`
	PlayerNames []string `json:"player_names,omitempty"`
}

// Record is the persisted file layout: the last confirmed snapshot plus the
// offline streak counter. The zero value means "first run".
type Record struct {
	Known                      bool           `json:"known"`
	ServerType                 string         `json:"server_type,omitempty"`
	ConsecutiveOfflineFailures int            `json:"consecutive_offline_failures"`
	LastSnapshot               SnapshotRecord `json:"last_snapshot"`
}

// FileStore reads and writes a [Record] at a fixed path.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the given file path. The file and
// its parent directories need not exist yet; they are created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the persisted record.
//
// Load always returns a usable record. A missing file returns the zero
// record and a nil error; an unreadable or corrupt file returns the zero
// record along with the error so the caller can log it, but the process is
// expected to continue as if this were a first run.
func (s *FileStore) Load() (Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, nil
		}
		return Record{}, fmt.Errorf("failed to read state file: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("failed to decode state file: %w", err)
	}
	return rec, nil
}

// Save writes the record atomically.
//
// The record is written to a temporary file in the target directory, synced,
// and renamed over the destination. On any failure the temporary file is
// removed and the previous state file, if any, is left untouched.
func (s *FileStore) Save(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if err := writeAndClose(tmp, data); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// writeAndClose writes data to the open temp file and guarantees the handle
// is released on every path, syncing before close so the subsequent rename
// publishes fully durable contents.
func writeAndClose(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to sync state: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close state file: %w", err)
	}
	return nil
}
