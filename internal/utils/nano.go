package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

// Alphanumeric only so ids are safe in URLs, filenames and case refs.
const (
	nanoidSize     = 32
	nanoidAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NanoID returns a 32-character record id.
func NanoID() string {
	return NanoIDSize(nanoidSize)
}

func NanoIDSize(size int) string {
	if size <= 0 {
		size = nanoidSize
	}

	return gonanoid.MustGenerate(nanoidAlphabet, size)
}
