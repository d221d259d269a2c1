package crypto

import (
	"bytes"
	"testing"

	"maidlink/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealFull_RoundTrip(t *testing.T) {
	codec := testCodec(t)

	field, err := codec.Seal("S1234567D")
	require.NoError(t, err)
	require.False(t, field.Empty())

	got, err := codec.Full(field)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "S1234567D", *got)

	// Idempotent: a second read returns the same value.
	again, err := codec.Full(field)
	require.NoError(t, err)
	assert.Equal(t, *got, *again)
}

func TestFull_AbsentField(t *testing.T) {
	codec := testCodec(t)

	got, err := codec.Full(types.EncryptedField{})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPartial(t *testing.T) {
	codec := testCodec(t)

	field, err := codec.Seal("S1234567D")
	require.NoError(t, err)

	short, err := codec.Partial(field, false)
	require.NoError(t, err)
	assert.Equal(t, "567D", short)

	padded, err := codec.Partial(field, true)
	require.NoError(t, err)
	assert.Equal(t, "*****567D", padded)
	assert.Len(t, padded, len("S1234567D"))
}

func TestPartial_ShortAndAbsentValues(t *testing.T) {
	codec := testCodec(t)

	field, err := codec.Seal("12")
	require.NoError(t, err)

	got, err := codec.Partial(field, true)
	require.NoError(t, err)
	assert.Equal(t, "12", got)

	empty, err := codec.Partial(types.EncryptedField{}, true)
	require.NoError(t, err)
	assert.Equal(t, "", empty)
}

func TestFull_TamperedFieldFailsLoudly(t *testing.T) {
	codec := testCodec(t)

	field, err := codec.Seal("E1234567")
	require.NoError(t, err)

	field.Tag = bytes.Repeat([]byte{0x00}, len(field.Tag))

	_, err = codec.Full(field)
	require.ErrorIs(t, err, ErrAuthentication)
}
