package backup

import (
	"os"
	"path/filepath"
)

// FileSyncer keeps backups in a local directory, the fallback when no
// remote destination is configured.
type FileSyncer struct {
	dir string
}

func NewFileSyncer(dir string) *FileSyncer {
	return &FileSyncer{dir: dir}
}

func (s *FileSyncer) Push(name string, content []byte) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(s.dir, name), content, 0600)
}

func (s *FileSyncer) Pull(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.dir, name))
}
