package emit

import (
	"os"
)

//go:generate mockgen -destination=../../pkg/mock/mockfilemanager.go -package=mock imapmaildirgen/internal/emit FileManager

// FileManager abstracts the filesystem operations the emitter needs, so
// tests can run against mocks.
type FileManager interface {
	MkdirAll(path string, perm os.FileMode) error
	WriteFile(filename string, data []byte, perm os.FileMode) error
}

type OSFileManager struct{}

func (fm OSFileManager) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (fm OSFileManager) WriteFile(filename string, data []byte, perm os.FileMode) error {
	return os.WriteFile(filename, data, perm)
}
