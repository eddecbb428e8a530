package wallet

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"os"

	"github.com/mr-tron/base58"
)

// FileKeystore stores one hex-encoded ed25519 seed in a file
type FileKeystore struct {
	Path string
}

func NewFileKeystore(path string) *FileKeystore {
	return &FileKeystore{Path: path}
}

// Load reads and decodes the stored seed
func (ks *FileKeystore) Load() (string, []byte, error) {
	data, err := os.ReadFile(ks.Path)
	if os.IsNotExist(err) {
		return "", nil, ErrKeyNotFound
	}
	if err != nil {
		return "", nil, err
	}

	seed, err := hex.DecodeString(string(data))
	if err != nil {
		return "", nil, err
	}
	if len(seed) != ed25519.SeedSize {
		return "", nil, ErrKeyNotFound
	}

	priv := ed25519.NewKeyFromSeed(seed)
	addr := base58.Encode(priv.Public().(ed25519.PublicKey))
	return addr, seed, nil
}

// Create generates a fresh seed and writes it hex-encoded, owner-readable
// only
func (ks *FileKeystore) Create() (string, []byte, error) {
	seed := make([]byte, ed25519.SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return "", nil, err
	}

	priv := ed25519.NewKeyFromSeed(seed)
	addr := base58.Encode(priv.Public().(ed25519.PublicKey))

	if err := os.WriteFile(ks.Path, []byte(hex.EncodeToString(seed)), 0o600); err != nil {
		return "", nil, err
	}
	return addr, seed, nil
}
