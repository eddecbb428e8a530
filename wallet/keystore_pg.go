package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ed25519"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/mr-tron/base58"

	_ "github.com/lib/pq"
)

// PgKeystore keeps seeds AES-GCM-encrypted in Postgres, one row per wallet
// id. Suits server-side custodial deployments where many wallets share one
// database.
type PgKeystore struct {
	db       *sql.DB
	aead     cipher.AEAD
	walletID string
}

// NewPgKeystore builds a keystore for one wallet id. The master key is
// base64-encoded and must decode to 32 bytes.
func NewPgKeystore(db *sql.DB, base64MasterKey, walletID string) (*PgKeystore, error) {
	mk, err := base64.StdEncoding.DecodeString(base64MasterKey)
	if err != nil {
		return nil, fmt.Errorf("master-key decode: %w", err)
	}
	if len(mk) != 32 {
		return nil, stderrors.New("master-key must be 32 bytes")
	}

	block, _ := aes.NewCipher(mk)
	aead, _ := cipher.NewGCM(block)

	return &PgKeystore{db: db, aead: aead, walletID: walletID}, nil
}

func (ks *PgKeystore) encrypt(plain []byte) ([]byte, error) {
	nonce := make([]byte, ks.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return append(nonce, ks.aead.Seal(nil, nonce, plain, nil)...), nil
}

func (ks *PgKeystore) decrypt(ciphertext []byte) ([]byte, error) {
	ns := ks.aead.NonceSize()
	if len(ciphertext) < ns {
		return nil, stderrors.New("ciphertext too short")
	}
	return ks.aead.Open(nil, ciphertext[:ns], ciphertext[ns:], nil)
}

// Load returns the stored address and decrypted seed
func (ks *PgKeystore) Load() (string, []byte, error) {
	var addr string
	var enc []byte

	err := ks.db.QueryRow(`SELECT address, enc_seed FROM startex_wallet_keys WHERE wallet_id=$1`, ks.walletID).
		Scan(&addr, &enc)
	if stderrors.Is(err, sql.ErrNoRows) {
		return "", nil, ErrKeyNotFound
	}
	if err != nil {
		return "", nil, err
	}

	seed, err := ks.decrypt(enc)
	return addr, seed, err
}

// Create generates a keypair, encrypts the seed and inserts the row
func (ks *PgKeystore) Create() (string, []byte, error) {
	seed := make([]byte, ed25519.SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return "", nil, err
	}

	priv := ed25519.NewKeyFromSeed(seed)
	addr := base58.Encode(priv.Public().(ed25519.PublicKey))

	enc, err := ks.encrypt(seed)
	if err != nil {
		return "", nil, err
	}

	_, err = ks.db.Exec(
		`INSERT INTO startex_wallet_keys(wallet_id,address,enc_seed) VALUES($1,$2,$3)`,
		ks.walletID, addr, enc,
	)
	if err != nil {
		return "", nil, err
	}
	return addr, seed, nil
}
