package chain

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"

	"startex/jsonx"
)

// SignedTxn pairs a transaction with its ed25519 signature over the
// canonical unsigned bytes. The signature is base58-encoded to match the
// address format.
type SignedTxn struct {
	Txn Txn    `json:"txn"`
	Sig string `json:"sig"`
}

// Encode produces the broadcast form of the signed transaction
func (s *SignedTxn) Encode() ([]byte, error) {
	return jsonx.Marshal(s)
}

// DecodeSignedTxn parses a broadcast payload back into a SignedTxn
func DecodeSignedTxn(data []byte) (*SignedTxn, error) {
	var s SignedTxn
	if err := jsonx.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Verify checks the signature against the sender's address. The sender
// address is the base58-encoded public key, so no key registry is needed.
func (s *SignedTxn) Verify() bool {
	pub, err := base58.Decode(s.Txn.Sender)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return false
	}
	sig, err := base58.Decode(s.Sig)
	if err != nil {
		return false
	}
	payload, err := s.Txn.EncodeUnsigned()
	if err != nil {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), payload, sig)
}
