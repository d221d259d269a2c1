package signing

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// The signature pad posts its canvas as a base64 PNG data URI.
const dataURIPrefix = "data:image/png;base64,"

// Images larger than this are rejected outright; a signature stroke on
// the pad compresses to a few kilobytes.
const maxSignatureBytes = 512 * 1024

// Untouched signature pads export these exact payloads for the two pad
// sizes in use (300x150 inline, 500x200 full-width). Submitting either
// means nobody actually signed.
const (
	blankCanvas300x150 = "iVBORw0KGgoAAAANSUhEUgAAASwAAACWCAYAAABkW7XSAAAAxUlEQVR42u3BMQEAAADCoPVPbQhfoAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAOA1v9QAAS9p4J4AAAAASUVORK5CYII="
	blankCanvas500x200 = "iVBORw0KGgoAAAANSUhEUgAAAfQAAADICAYAAAAeGRPoAAABm0lEQVR42u3BgQAAAADDoPlTX+EAVQEAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAACvARuiAAF8M6eRAAAAAElFTkSuQmCC"
)

var (
	ErrBadSignatureImage = errors.New("signature image is not a valid PNG data URI")
	ErrBlankSignature    = errors.New("signature pad was left blank")
)

// ValidateSignatureImage checks a submitted signature payload: it must be
// a non-empty base64 PNG data URI within the size bound and must not be
// one of the known blank-canvas exports. Applies to every signer role.
func ValidateSignatureImage(dataURI string) error {
	payload, ok := strings.CutPrefix(dataURI, dataURIPrefix)
	if !ok {
		return ErrBadSignatureImage
	}

	if payload == "" {
		return ErrBlankSignature
	}
	if payload == blankCanvas300x150 || payload == blankCanvas500x200 {
		return ErrBlankSignature
	}

	if len(payload) > maxSignatureBytes {
		return fmt.Errorf("%w: payload too large", ErrBadSignatureImage)
	}

	if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrBadSignatureImage, err)
	}

	return nil
}

// DecodeSignaturePNG extracts the raw PNG bytes from a stored signature
// data URI, for embedding into rendered documents.
func DecodeSignaturePNG(dataURI string) ([]byte, error) {
	payload, ok := strings.CutPrefix(dataURI, dataURIPrefix)
	if !ok {
		return nil, ErrBadSignatureImage
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSignatureImage, err)
	}

	return raw, nil
}
