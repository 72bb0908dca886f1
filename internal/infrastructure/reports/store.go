package reports

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rafabene/carteira-backend/internal/domain/ports"
)

// DiskStore guarda arquivos num diretório único, sem subpastas
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}

func (s *DiskStore) Save(_ context.Context, name string, data []byte) error {
	if !validName(name) {
		return fmt.Errorf("invalid file name %q", name)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create public dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *DiskStore) Path(name string) (string, error) {
	if !validName(name) {
		return "", ports.ErrFileNotFound
	}

	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ports.ErrFileNotFound
		}
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", ports.ErrFileNotFound
	}
	return path, nil
}
