package crypto

import (
	"strings"

	"maidlink/pkg/types"
)

// MaskRune pads the hidden portion of a partial value.
const MaskRune = '*'

// Seal encrypts a validated plaintext into the three-column triple. Format
// validation is the caller's job and must run before this point; only
// validated plaintext gets encrypted.
func (c *Codec) Seal(plaintext string) (types.EncryptedField, error) {
	ciphertext, nonce, tag, err := c.Encrypt(plaintext)
	if err != nil {
		return types.EncryptedField{}, err
	}

	return types.EncryptedField{Ciphertext: ciphertext, Nonce: nonce, Tag: tag}, nil
}

// Full returns the decrypted value, or nil when the field was never set.
// Repeated calls are side-effect free.
func (c *Codec) Full(f types.EncryptedField) (*string, error) {
	if f.Empty() {
		return nil, nil
	}

	plaintext, err := c.Decrypt(f.Ciphertext, f.Nonce, f.Tag)
	if err != nil {
		return nil, err
	}

	return &plaintext, nil
}

// Partial returns the last four characters of the value, for identity
// challenges and masked display. With padded set, the hidden prefix is
// replaced by mask runes so the result keeps the original width. Values
// of four characters or fewer are returned unmasked. An unset field
// yields "".
func (c *Codec) Partial(f types.EncryptedField, padded bool) (string, error) {
	full, err := c.Full(f)
	if err != nil {
		return "", err
	}
	if full == nil {
		return "", nil
	}

	value := *full
	if len(value) <= 4 {
		return value, nil
	}

	last4 := value[len(value)-4:]
	if !padded {
		return last4, nil
	}

	return strings.Repeat(string(MaskRune), len(value)-4) + last4, nil
}
