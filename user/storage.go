package user

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/capiwear/storefront/user/pkg/response"
)

// Storage persists the auth session between runs. Load returns nil with no
// error when nothing usable is persisted.
type Storage interface {
	Load() (*response.Auth, error)
	Save(auth response.Auth, persistent bool) error
	Clear() error
}

// FileStorage keeps the session blob in one of two files: the durable one for
// "remember me" logins, the session one otherwise. Load prefers durable.
type FileStorage struct {
	durablePath string
	sessionPath string
}

func NewFileStorage(durablePath, sessionPath string) FileStorage {
	return FileStorage{durablePath: durablePath, sessionPath: sessionPath}
}

func (f FileStorage) Load() (*response.Auth, error) {
	for _, path := range []string{f.durablePath, f.sessionPath} {
		raw, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed reading session file=%s with error=%w", path, err)
		}
		auth := response.Auth{}
		if err := json.Unmarshal(raw, &auth); err != nil {
			// Corrupted blob behaves like an absent one.
			continue
		}
		return &auth, nil
	}
	return nil, nil
}

func (f FileStorage) Save(auth response.Auth, persistent bool) error {
	path := f.sessionPath
	if persistent {
		path = f.durablePath
	}
	raw, err := json.Marshal(auth)
	if err != nil {
		return fmt.Errorf("failed marshaling session with error=%w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed creating session directory with error=%w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("failed writing session file=%s with error=%w", path, err)
	}
	return nil
}

// Clear removes both locations regardless of which one was written at login.
func (f FileStorage) Clear() error {
	var joined error
	for _, path := range []string{f.durablePath, f.sessionPath} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			joined = errors.Join(joined, err)
		}
	}
	return joined
}
