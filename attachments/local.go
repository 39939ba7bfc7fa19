package attachments

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStorage keeps attachments in a directory on disk (the upload folder).
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload folder: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) Save(_ context.Context, name string, data []byte, _ string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, name), data, 0o644)
}

// ReadAttachment reads the whole file on every call.
func (s *LocalStorage) ReadAttachment(_ context.Context, name string) ([]byte, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return data, err
}

func (s *LocalStorage) Delete(_ context.Context, name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
