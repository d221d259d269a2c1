package types

import "errors"

var (
	ErrAgencyNotFound    = errors.New("agency not found")
	ErrEmployerNotFound  = errors.New("employer not found")
	ErrMaidNotFound      = errors.New("maid not found")
	ErrDocumentNotFound  = errors.New("employer doc not found")
	ErrSignatureNotFound = errors.New("signature record not found")
)
