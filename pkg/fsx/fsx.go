package fsx

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is returned by readers when the path has no file behind it
var ErrNotExist = errors.New("fsx: file does not exist")

// FileReader reads stored files
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// FileWriter stores and removes files
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	WriteFileStream(ctx context.Context, path string, r io.Reader) error
	DeleteFile(ctx context.Context, path string) error
}

// FileSystem is a storage backend addressed by slash separated paths
type FileSystem interface {
	FileReader
	FileWriter

	// Join builds a path inside the file system root
	Join(elem ...string) string
}
