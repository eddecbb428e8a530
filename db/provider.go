package db

// Provider abstracts the low-level key/value operations backing the
// adapter's local state (projection cache, remembered wallet provider).
// It allows the same stores to run over different backends without knowing
// the implementation details.
type Provider interface {
	// Get retrieves a value by key, nil if the key is absent
	Get(key []byte) ([]byte, error)

	// Put stores a key-value pair
	Put(key, value []byte) error

	// Delete removes a key-value pair
	Delete(key []byte) error

	// Has checks if a key exists
	Has(key []byte) (bool, error)

	// Close closes the backing store
	Close() error

	// Batch returns a new batch for atomic operations
	Batch() Batch
}

// Batch provides atomic batch operations
type Batch interface {
	// Put adds a key-value pair to the batch
	Put(key, value []byte)

	// Delete adds a deletion to the batch
	Delete(key []byte)

	// Write commits all operations in the batch
	Write() error

	// Reset clears the batch
	Reset()

	// Close releases batch resources
	Close()
}
