// Package signing implements the tokenized multi-party signature
// workflow: agency staff issue an unguessable slug per signing role; the
// visitor solves an identity challenge; a single-use verification token
// with a ten-minute lifetime gates the actual signature capture.
//
// Per role the state machine is
//
//	SLUG_ISSUED -> CHALLENGE_PENDING -> VERIFIED -> SIGNED
//
// Renewing a slug invalidates the previously distributed link and any
// outstanding token immediately; there is no grace period.
package signing

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"maidlink/internal/utils"
	"maidlink/pkg/types"

	"github.com/google/uuid"
)

// TokenTTL is the verification-token lifetime. Expiry forces a restart
// from the challenge step.
const TokenTTL = 10 * time.Minute

const tokenSize = 43 // url-safe, ~256 bits

var (
	// ErrChallengeMismatch is deliberately generic: it never reveals
	// which submitted field was wrong, to resist enumeration.
	ErrChallengeMismatch = errors.New("details did not match")

	ErrTokenMismatch = errors.New("verification token mismatch")
	ErrTokenExpired  = errors.New("verification token expired")
)

// State of one signing role.
type State string

const (
	StateSlugIssued State = "SLUG_ISSUED"
	StateVerified   State = "VERIFIED"
	StateSigned     State = "SIGNED"
)

// RoleState derives the role's current state from the signature record.
// CHALLENGE_PENDING is the visitor-side view of SLUG_ISSUED and is not
// distinguishable server-side until the challenge is solved.
func RoleState(sig *types.DocSignature, role types.SignerRole) State {
	if sig.Signature(role) != nil {
		return StateSigned
	}
	if sig.Token(role) != nil {
		return StateVerified
	}
	return StateSlugIssued
}

// NewSlug returns a fresh UUIDv4 signing slug.
func NewSlug() string {
	return uuid.NewString()
}

// Challenge is what a visitor must answer to prove identity for a role.
// Employer-side roles answer with last-4 of NRIC/FIN and mobile number;
// the FDW answers with last-4 of passport and date of birth (2006-01-02).
type Challenge struct {
	Last4  string
	Answer string
}

// Verify compares the expected facts against a submission in constant
// time. Any mismatch, including malformed input, yields the same generic
// ErrChallengeMismatch.
func (c Challenge) Verify(last4, answer string) error {
	wantLast4 := normalize(c.Last4)
	wantAnswer := normalize(c.Answer)
	gotLast4 := normalize(last4)
	gotAnswer := normalize(answer)

	ok := constantTimeEqual(wantLast4, gotLast4)
	ok = constantTimeEqual(wantAnswer, gotAnswer) && ok

	if !ok {
		return ErrChallengeMismatch
	}

	return nil
}

// Token is a minted single-use verification token. The issue time rides
// along in the sealed session cookie so expiry survives independent of
// server state.
type Token struct {
	Value    string    `json:"value"`
	IssuedAt time.Time `json:"issued_at"`
}

// MintToken issues a fresh URL-safe token.
func MintToken(now time.Time) Token {
	return Token{
		Value:    utils.NanoIDSize(tokenSize),
		IssuedAt: now,
	}
}

// Expired reports whether the token's lifetime has elapsed at now.
func (t Token) Expired(now time.Time) bool {
	return now.Sub(t.IssuedAt) > TokenTTL
}

// CheckToken validates a presented session token against the token stored
// on the signature record for the role. The record token is nil when the
// challenge was never solved, the token was already consumed, or the slug
// was renewed since — all of which must fail.
func CheckToken(recordToken *string, presented Token, now time.Time) error {
	if presented.Expired(now) {
		return ErrTokenExpired
	}

	if recordToken == nil {
		return ErrTokenMismatch
	}
	if !constantTimeEqual(*recordToken, presented.Value) {
		return ErrTokenMismatch
	}

	return nil
}

func normalize(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

// constantTimeEqual compares strings without early exit on the shared
// prefix. Length is not secret here; the values are.
func constantTimeEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
