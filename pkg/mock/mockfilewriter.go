package mock

import (
	"bytes"
	"os"
)

type MockWriter struct {
	Buffer *bytes.Buffer
	Err    error
}

func (m MockWriter) Write(p []byte) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	n, err := (*m.Buffer).Write(p[:])
	return n, err
}

func (m MockWriter) Flush() error {
	return m.Err
}

// MockFileWriter records writes in memory for assertions.
type MockFileWriter struct {
	Err     error
	Writers map[string]MockWriter
	Perms   map[string]os.FileMode
	Mkdirs  map[string]os.FileMode
}

func NewMockFileWriter() *MockFileWriter {
	return &MockFileWriter{
		Writers: make(map[string]MockWriter),
		Perms:   make(map[string]os.FileMode),
		Mkdirs:  make(map[string]os.FileMode),
	}
}

func (m *MockFileWriter) MkdirAll(path string, perm os.FileMode) error {
	if m.Mkdirs == nil {
		m.Mkdirs = make(map[string]os.FileMode)
	}
	m.Mkdirs[path] = perm
	return m.Err
}

func (m *MockFileWriter) WriteFile(filename string, data []byte, perm os.FileMode) error {
	if m.Writers == nil {
		m.Writers = make(map[string]MockWriter)
	}
	if m.Perms == nil {
		m.Perms = make(map[string]os.FileMode)
	}
	m.Writers[filename] = MockWriter{Buffer: bytes.NewBuffer(data)}
	m.Perms[filename] = perm
	return m.Err
}

// Written returns the bytes written to filename, or nil.
func (m *MockFileWriter) Written(filename string) []byte {
	writer, ok := m.Writers[filename]
	if !ok {
		return nil
	}
	return writer.Buffer.Bytes()
}
