package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	u, err := DecodeUTF8("ကင\U0001F600")
	require.NoError(t, err)
	assert.Equal(t, "ကင\U0001F600", EncodeUTF8(u))
}

func TestDecodeUTF8Invalid(t *testing.T) {
	_, err := DecodeUTF8(string([]byte{0xff, 0xfe}))
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestEncodeScalarSurrogatePair(t *testing.T) {
	u := EncodeScalar(0x1F600)
	require.Len(t, u, 2)
	r, width := DecodeScalarAt(u, 0)
	assert.Equal(t, 2, width)
	assert.Equal(t, rune(0x1F600), r)
}

func TestEncodeScalarBMP(t *testing.T) {
	u := EncodeScalar(0x1000)
	assert.Equal(t, UTF16{0x1000}, u)
}

func TestSubBoundsClamped(t *testing.T) {
	u := UTF16{1, 2, 3, 4}
	assert.Equal(t, UTF16{2, 3}, Sub(u, 1, 3))
	assert.Nil(t, Sub(u, 3, 1))
	assert.Equal(t, UTF16{1, 2, 3, 4}, Sub(u, -5, 100))
}

func TestCommonPrefixLen(t *testing.T) {
	assert.Equal(t, 2, CommonPrefixLen(UTF16{1, 2, 3}, UTF16{1, 2, 9}))
	assert.Equal(t, 3, CommonPrefixLen(UTF16{1, 2, 3}, UTF16{1, 2, 3}))
	assert.Equal(t, 0, CommonPrefixLen(UTF16{9}, UTF16{1, 2, 3}))
}

func TestIsAnyCharacter(t *testing.T) {
	assert.True(t, IsAnyCharacter('!'))
	assert.True(t, IsAnyCharacter('~'))
	assert.False(t, IsAnyCharacter(' '))
	assert.False(t, IsAnyCharacter(0x1000))
}

func TestIsSingleASCIIPrintable(t *testing.T) {
	assert.True(t, IsSingleASCIIPrintable(UTF16{'u'}))
	assert.False(t, IsSingleASCIIPrintable(UTF16{'u', 'i'}))
	assert.False(t, IsSingleASCIIPrintable(UTF16{' '}))
}
