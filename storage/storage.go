package storage

import (
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store persists uploaded files and hands back the stored reference. Delete
// is best-effort; callers log failures and move on.
type Store interface {
	Save(file *multipart.FileHeader) (string, error)
	Delete(name string) error
}

// LocalStore keeps uploads on the local filesystem under Dir.
type LocalStore struct {
	Dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{Dir: dir}
}

// Save copies the upload into Dir under a random unique name and returns
// that name.
func (s *LocalStore) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", err
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}

// Delete removes a stored file. A missing file is not an error.
func (s *LocalStore) Delete(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, name))
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Error deleting stored file %s: %v", name, err)
		return err
	}
	return nil
}
