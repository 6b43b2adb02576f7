package quota

import (
	"os"
	"path/filepath"
)

// FileBackend persists the record as a small JSON file, the
// local-storage analog for CLI and desktop hosts. The file holds only
// quota state, keeping it apart from any preference files.
type FileBackend struct {
	path string
}

var _ Backend = (*FileBackend)(nil)

// NewFileBackend creates a backend that reads and writes path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Load() ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *FileBackend) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(b.path, data, 0o600)
}
