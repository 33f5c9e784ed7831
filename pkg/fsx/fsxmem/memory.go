package fsxmem

import (
	"context"
	"fmt"
	"io"
	"path"
	"sync"

	"github.com/Abraxas-365/talentrelay/pkg/fsx"
)

// MemoryFileSystem keeps files in process memory
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{files: make(map[string][]byte)}
}

var _ fsx.FileSystem = (*MemoryFileSystem)(nil)

func (m *MemoryFileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[p]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", p, fsx.ErrNotExist)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemoryFileSystem) WriteFile(ctx context.Context, p string, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[p] = buf
	return nil
}

func (m *MemoryFileSystem) WriteFileStream(ctx context.Context, p string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read stream for %s: %w", p, err)
	}
	return m.WriteFile(ctx, p, data)
}

func (m *MemoryFileSystem) DeleteFile(ctx context.Context, p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, p)
	return nil
}

func (m *MemoryFileSystem) Join(elem ...string) string {
	return path.Join(elem...)
}
