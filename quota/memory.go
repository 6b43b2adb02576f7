package quota

import "sync"

// MemoryBackend is an in-process Backend for tests and ephemeral hosts.
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte
}

var _ Backend = (*MemoryBackend)(nil)

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) Load() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.data == nil {
		return nil, nil
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out, nil
}

func (b *MemoryBackend) Save(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = make([]byte, len(data))
	copy(b.data, data)
	return nil
}
