package images

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Memory keeps images in process. It backs local development when no CDN is
// configured.
type Memory struct {
	mu      sync.Mutex
	baseURL string
	seq     int
	objects map[string][]byte
}

func NewMemory(baseURL string) *Memory {
	return &Memory{baseURL: baseURL, objects: make(map[string][]byte)}
}

func (m *Memory) Upload(ctx context.Context, file io.Reader) (Image, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return Image{}, fmt.Errorf("read upload: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	key := fmt.Sprintf("YelpCamp/local-%d", m.seq)
	m.objects[key] = data
	return Image{URL: fmt.Sprintf("%s/upload/%s", m.baseURL, key), StorageKey: key}, nil
}

func (m *Memory) Destroy(ctx context.Context, storageKeys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range storageKeys {
		delete(m.objects, key)
	}
	return nil
}

func (m *Memory) Has(storageKey string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.objects[storageKey]
	return ok
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.objects)
}
