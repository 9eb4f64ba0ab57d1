package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileStorage is the contract for uploaded files (images, invoice and
// contract PDFs). Paths returned and accepted are relative to the store root.
type FileStorage interface {
	// Save writes the reader's content under folder/fileName and returns the
	// stored relative path.
	Save(r io.Reader, folder, fileName string) (string, error)
	// Rename moves a stored file to a new name inside the same folder and
	// returns the new relative path. Renaming a missing file is a no-op that
	// returns the old path; the move itself is best-effort.
	Rename(oldPath, newName string) (string, error)
	// Delete removes a stored file. Deleting a missing file is not an error.
	Delete(path string) error
	// Open reads back a stored file.
	Open(path string) (io.ReadCloser, error)
	// Stat returns the stored file size in bytes.
	Stat(path string) (int64, error)
	// AbsPath resolves a relative stored path to an absolute filesystem path.
	AbsPath(path string) string
}

type localStorage struct {
	root string
}

// NewLocalStorage creates a filesystem-backed FileStorage rooted at dir.
func NewLocalStorage(dir string) (FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &localStorage{root: dir}, nil
}

func (s *localStorage) Save(r io.Reader, folder, fileName string) (string, error) {
	rel := filepath.Join(folder, fileName)
	abs := filepath.Join(s.root, rel)

	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("failed to create folder %s: %w", folder, err)
	}

	f, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return rel, nil
}

func (s *localStorage) Rename(oldPath, newName string) (string, error) {
	oldAbs := filepath.Join(s.root, oldPath)
	if _, err := os.Stat(oldAbs); err != nil {
		// Best-effort: nothing to move.
		return oldPath, nil
	}

	rel := filepath.Join(filepath.Dir(oldPath), newName)
	if err := os.Rename(oldAbs, filepath.Join(s.root, rel)); err != nil {
		return "", fmt.Errorf("failed to rename file: %w", err)
	}

	return rel, nil
}

func (s *localStorage) Delete(path string) error {
	err := os.Remove(filepath.Join(s.root, path))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *localStorage) Open(path string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.root, path))
}

func (s *localStorage) Stat(path string) (int64, error) {
	info, err := os.Stat(filepath.Join(s.root, path))
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (s *localStorage) AbsPath(path string) string {
	return filepath.Join(s.root, path)
}
