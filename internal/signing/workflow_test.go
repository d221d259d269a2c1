package signing

import (
	"testing"
	"time"

	"maidlink/internal/utils"
	"maidlink/pkg/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlug_IsUUIDAndUnique(t *testing.T) {
	a := NewSlug()
	b := NewSlug()

	_, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestChallenge_Verify(t *testing.T) {
	ch := Challenge{Last4: "567D", Answer: "91234567"}

	require.NoError(t, ch.Verify("567D", "91234567"))

	// Case and whitespace are normalized.
	require.NoError(t, ch.Verify(" 567d ", "91234567"))

	// Wrong mobile number: generic error only.
	err := ch.Verify("567D", "98765432")
	require.ErrorIs(t, err, ErrChallengeMismatch)
	assert.EqualError(t, err, "details did not match")

	// Wrong last-4 yields the identical error, no field leakage.
	err2 := ch.Verify("999X", "91234567")
	require.ErrorIs(t, err2, ErrChallengeMismatch)
	assert.Equal(t, err.Error(), err2.Error())

	// Both wrong, empty input.
	require.ErrorIs(t, ch.Verify("", ""), ErrChallengeMismatch)
}

func TestMintToken_FreshAndDistinct(t *testing.T) {
	now := time.Now()

	t1 := MintToken(now)
	t2 := MintToken(now)

	assert.Len(t, t1.Value, tokenSize)
	assert.NotEqual(t, t1.Value, t2.Value)
	assert.Equal(t, now, t1.IssuedAt)
}

func TestToken_Expiry(t *testing.T) {
	issued := time.Now()
	token := MintToken(issued)

	assert.False(t, token.Expired(issued.Add(599*time.Second)))
	assert.False(t, token.Expired(issued.Add(600*time.Second)))
	assert.True(t, token.Expired(issued.Add(601*time.Second)))
}

func TestCheckToken(t *testing.T) {
	now := time.Now()
	token := MintToken(now)
	record := utils.StringPtr(token.Value)

	// Accepted before expiry.
	require.NoError(t, CheckToken(record, token, now.Add(time.Minute)))

	// Rejected after 600 seconds have elapsed.
	err := CheckToken(record, token, now.Add(TokenTTL+time.Second))
	require.ErrorIs(t, err, ErrTokenExpired)

	// Rejected once the record-side token is gone (consumed or slug
	// renewed).
	require.ErrorIs(t, CheckToken(nil, token, now), ErrTokenMismatch)

	// Rejected when the record holds a different token (slug renewal
	// minted a new one).
	other := MintToken(now)
	require.ErrorIs(t, CheckToken(utils.StringPtr(other.Value), token, now), ErrTokenMismatch)
}

func TestRoleState(t *testing.T) {
	sig := &types.DocSignature{}

	assert.Equal(t, StateSlugIssued, RoleState(sig, types.RoleEmployer))

	sig.EmployerToken = utils.StringPtr("tok")
	assert.Equal(t, StateVerified, RoleState(sig, types.RoleEmployer))

	sig.EmployerSignature = utils.StringPtr("data:image/png;base64,AAAA")
	assert.Equal(t, StateSigned, RoleState(sig, types.RoleEmployer))

	// Other roles are unaffected.
	assert.Equal(t, StateSlugIssued, RoleState(sig, types.RoleFDW))
}

func TestValidateSignatureImage(t *testing.T) {
	valid := dataURIPrefix + "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="
	require.NoError(t, ValidateSignatureImage(valid))

	// Missing prefix, raw base64, junk.
	require.ErrorIs(t, ValidateSignatureImage("iVBORw0KGgo"), ErrBadSignatureImage)
	require.ErrorIs(t, ValidateSignatureImage(dataURIPrefix+"not base64!!"), ErrBadSignatureImage)

	// Empty payload.
	require.ErrorIs(t, ValidateSignatureImage(dataURIPrefix), ErrBlankSignature)
}

func TestValidateSignatureImage_BlankCanvases(t *testing.T) {
	// Both known blank-canvas exports are rejected, whichever pad size
	// produced them.
	for _, blank := range []string{blankCanvas300x150, blankCanvas500x200} {
		err := ValidateSignatureImage(dataURIPrefix + blank)
		require.ErrorIs(t, err, ErrBlankSignature)
	}
}
