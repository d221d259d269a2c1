package types

// EncryptedField is the three-column storage for one encrypted attribute.
// All three values are present together or all absent; readers that bypass
// the crypto accessor see only ciphertext bytes.
type EncryptedField struct {
	Ciphertext []byte
	Nonce      []byte
	Tag        []byte
}

// Empty reports whether no value has been stored.
func (f EncryptedField) Empty() bool {
	return len(f.Ciphertext) == 0
}
