package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// fileState is the on-disk layout: credential and profile live in one file
// so they are always invalidated together.
type fileState struct {
	Credential *Credential     `json:"credential,omitempty"`
	Profile    json.RawMessage `json:"profile,omitempty"`
}

// FileStore implements Store on a single JSON file, the Go analogue of the
// browser cookie plus local storage pair. The file is written with 0600
// permissions and replaced atomically via rename.
//
// A missing, unreadable or corrupt file degrades to "absent" on reads.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed store at the given path. The parent
// directory is created on first write, not here.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) SetCredential(ctx context.Context, cred Credential) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	state := f.read()
	state.Credential = &cred
	return f.write(state)
}

func (f *FileStore) Credential(ctx context.Context) (Credential, bool) {
	f.mu.Lock()
	state := f.read()
	f.mu.Unlock()

	if state.Credential == nil || state.Credential.IsZero() || state.Credential.IsExpired() {
		return Credential{}, false
	}
	return *state.Credential, true
}

func (f *FileStore) SetProfile(ctx context.Context, profile []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	state := f.read()
	state.Profile = append([]byte(nil), profile...)
	return f.write(state)
}

func (f *FileStore) Profile(ctx context.Context) ([]byte, bool) {
	f.mu.Lock()
	state := f.read()
	f.mu.Unlock()

	if len(state.Profile) == 0 {
		return nil, false
	}
	return append([]byte(nil), state.Profile...), true
}

func (f *FileStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Join(ErrClearFailed, err)
	}
	return nil
}

// read loads current state, degrading to empty on any failure.
func (f *FileStore) read() fileState {
	var state fileState
	data, err := os.ReadFile(f.path)
	if err != nil {
		return state
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return fileState{}
	}
	return state
}

// write persists state atomically: temp file in the same directory, fsync
// is skipped intentionally (a lost credential only costs a re-login).
func (f *FileStore) write(state fileState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return errors.Join(ErrPersistFailed, err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Join(ErrPersistFailed, err)
	}

	tmp, err := os.CreateTemp(dir, ".storefront-*")
	if err != nil {
		return errors.Join(ErrPersistFailed, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Join(ErrPersistFailed, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Join(ErrPersistFailed, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Join(ErrPersistFailed, err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Join(ErrPersistFailed, err)
	}
	return nil
}
