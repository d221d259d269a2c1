package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCodec(t *testing.T) *Codec {
	t.Helper()

	key := bytes.Repeat([]byte{0x42}, 32)
	codec, err := NewCodec(key)
	require.NoError(t, err)

	return codec
}

func TestNewCodec_KeyLength(t *testing.T) {
	for _, size := range []int{16, 24, 32} {
		_, err := NewCodec(make([]byte, size))
		assert.NoError(t, err, "key size %d", size)
	}

	for _, size := range []int{0, 1, 15, 17, 31, 33, 64} {
		_, err := NewCodec(make([]byte, size))
		assert.Error(t, err, "key size %d", size)
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	codec := testCodec(t)

	plaintexts := []string{
		"S1234567D",
		"G7654321K",
		"E01234567",
		"",
		"a much longer value with spaces and unicode: 女傭",
	}

	for _, plaintext := range plaintexts {
		ciphertext, nonce, tag, err := codec.Encrypt(plaintext)
		require.NoError(t, err)
		require.Len(t, nonce, NonceSize)
		require.Len(t, tag, 16)

		got, err := codec.Decrypt(ciphertext, nonce, tag)
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)
	}
}

func TestDecrypt_TamperDetection(t *testing.T) {
	codec := testCodec(t)

	ciphertext, nonce, tag, err := codec.Encrypt("S1234567D")
	require.NoError(t, err)

	// Flipping any single bit of the ciphertext must fail authentication,
	// never return altered plaintext.
	for i := range ciphertext {
		for bit := 0; bit < 8; bit++ {
			tampered := make([]byte, len(ciphertext))
			copy(tampered, ciphertext)
			tampered[i] ^= 1 << bit

			_, err := codec.Decrypt(tampered, nonce, tag)
			require.ErrorIs(t, err, ErrAuthentication)
		}
	}

	// Same for the tag.
	for i := range tag {
		tampered := make([]byte, len(tag))
		copy(tampered, tag)
		tampered[i] ^= 0x01

		_, err := codec.Decrypt(ciphertext, nonce, tampered)
		require.ErrorIs(t, err, ErrAuthentication)
	}

	// And a flipped nonce.
	badNonce := make([]byte, len(nonce))
	copy(badNonce, nonce)
	badNonce[0] ^= 0x80

	_, err = codec.Decrypt(ciphertext, badNonce, tag)
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestDecrypt_WrongKey(t *testing.T) {
	codec := testCodec(t)

	ciphertext, nonce, tag, err := codec.Encrypt("F7654321X")
	require.NoError(t, err)

	other, err := NewCodec(bytes.Repeat([]byte{0x43}, 32))
	require.NoError(t, err)

	_, err = other.Decrypt(ciphertext, nonce, tag)
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestDecrypt_BadLengths(t *testing.T) {
	codec := testCodec(t)

	ciphertext, nonce, tag, err := codec.Encrypt("S1234567D")
	require.NoError(t, err)

	_, err = codec.Decrypt(ciphertext, nonce[:12], tag)
	require.ErrorIs(t, err, ErrAuthentication)

	_, err = codec.Decrypt(ciphertext, nonce, tag[:8])
	require.ErrorIs(t, err, ErrAuthentication)
}

func TestEncrypt_NonceUniqueness(t *testing.T) {
	codec := testCodec(t)

	const n = 1000
	seen := make(map[string]bool, n)

	for i := 0; i < n; i++ {
		_, nonce, _, err := codec.Encrypt("S1234567D")
		require.NoError(t, err)

		key := string(nonce)
		require.False(t, seen[key], "nonce repeated after %d encryptions", i)
		seen[key] = true
	}
}
