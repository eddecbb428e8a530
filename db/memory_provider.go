package db

import "sync"

// MemoryProvider implements Provider over an in-process map. Used by tests
// and by ephemeral sessions that do not want on-disk state.
type MemoryProvider struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryProvider creates an empty in-memory provider
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{data: make(map[string][]byte)}
}

// Get retrieves a value by key
func (p *MemoryProvider) Get(key []byte) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	v, ok := p.data[string(key)]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Put stores a key-value pair
func (p *MemoryProvider) Put(key, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	p.data[string(key)] = v
	return nil
}

// Delete removes a key-value pair
func (p *MemoryProvider) Delete(key []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.data, string(key))
	return nil
}

// Has checks if a key exists
func (p *MemoryProvider) Has(key []byte) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	_, ok := p.data[string(key)]
	return ok, nil
}

// Close is a no-op for the in-memory provider
func (p *MemoryProvider) Close() error {
	return nil
}

// Batch returns a new batch for atomic operations
func (p *MemoryProvider) Batch() Batch {
	return &memoryBatch{provider: p}
}

type memoryBatch struct {
	provider *MemoryProvider
	ops      []boltOp
}

func (b *memoryBatch) Put(key, value []byte) {
	v := make([]byte, len(value))
	copy(v, value)
	b.ops = append(b.ops, boltOp{key: key, value: v})
}

func (b *memoryBatch) Delete(key []byte) {
	b.ops = append(b.ops, boltOp{key: key, delete: true})
}

func (b *memoryBatch) Write() error {
	b.provider.mu.Lock()
	defer b.provider.mu.Unlock()

	for _, op := range b.ops {
		if op.delete {
			delete(b.provider.data, string(op.key))
			continue
		}
		b.provider.data[string(op.key)] = op.value
	}
	return nil
}

func (b *memoryBatch) Reset() {
	b.ops = b.ops[:0]
}

func (b *memoryBatch) Close() {
	b.ops = nil
}
