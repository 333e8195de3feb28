// Package filestore persists the session record as a JSON file.
package filestore

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/trezcool/studenthub/core/session"
)

type Store struct {
	path string
}

var _ session.Store = (*Store)(nil)

// New returns a Store writing to `<dir>/<key>.json`. dir is created on first save.
func New(dir, key string) *Store {
	return &Store{path: filepath.Join(dir, key+".json")}
}

func (s *Store) Path() string { return s.path }

func (s *Store) Load(context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, session.ErrNoSession
		}
		return nil, errors.Wrap(err, "reading session file")
	}
	return data, nil
}

// Save replaces the file atomically.
func (s *Store) Save(_ context.Context, data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, "creating session dir")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp session file")
	}
	defer os.Remove(tmp.Name()) // no-op after rename

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp session file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp session file")
	}
	return errors.Wrap(os.Rename(tmp.Name(), s.path), "renaming session file")
}

func (s *Store) Clear(context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing session file")
	}
	return nil
}
