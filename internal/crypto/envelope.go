// Package crypto implements the field-level envelope encryption used for
// PII columns (NRIC/FIN, passport numbers). Each value is sealed with
// AES-GCM under a process-wide key and stored as three sibling columns:
// ciphertext, nonce and authentication tag.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// NonceSize is the GCM nonce length in bytes. A fresh random nonce is
// drawn per encryption; with 32 random bytes the collision probability is
// negligible for any realistic write volume, which is what keeps GCM's
// never-reuse-a-nonce requirement honest.
const NonceSize = 32

// ErrAuthentication is returned when a ciphertext/nonce/tag triple fails
// GCM verification. Callers must treat this as "decryption failed" and
// surface it; returning blank data instead would silently mask tampering
// or key mismatch.
var ErrAuthentication = errors.New("crypto: authentication failed")

// Codec seals and opens individual field values. The key is injected at
// construction so tests and tooling can supply deterministic keys; nothing
// in this package reads ambient configuration.
type Codec struct {
	key []byte
}

// NewCodec validates the key length (AES-128/192/256) and returns a codec.
func NewCodec(key []byte) (*Codec, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("encryption key must be 16, 24 or 32 bytes, got %d", len(key))
	}

	k := make([]byte, len(key))
	copy(k, key)

	return &Codec{key: k}, nil
}

// Encrypt seals plaintext with a fresh random nonce and returns the
// ciphertext, nonce and authentication tag separately, matching the
// three-column storage layout.
func (c *Codec) Encrypt(plaintext string) (ciphertext, nonce, tag []byte, err error) {
	gcm, err := c.aead()
	if err != nil {
		return nil, nil, nil, err
	}

	nonce = make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, nil, fmt.Errorf("generate nonce: %w", err)
	}

	// Seal appends the tag to the ciphertext; split it off so the columns
	// stay independent.
	sealed := gcm.Seal(nil, nonce, []byte(plaintext), nil)
	tagAt := len(sealed) - gcm.Overhead()

	return sealed[:tagAt], nonce, sealed[tagAt:], nil
}

// Decrypt reconstructs the AEAD with the stored nonce and verifies the
// tag. Any tamper or mismatch in ciphertext, nonce or tag yields
// ErrAuthentication.
func (c *Codec) Decrypt(ciphertext, nonce, tag []byte) (string, error) {
	gcm, err := c.aead()
	if err != nil {
		return "", err
	}

	if len(nonce) != NonceSize {
		return "", fmt.Errorf("%w: bad nonce length %d", ErrAuthentication, len(nonce))
	}
	if len(tag) != gcm.Overhead() {
		return "", fmt.Errorf("%w: bad tag length %d", ErrAuthentication, len(tag))
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	return string(plaintext), nil
}

func (c *Codec) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, NonceSize)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}
