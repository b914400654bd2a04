package sdjwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHasherKnownAlgorithms(t *testing.T) {
	for _, alg := range []HashAlg{SHA256, SHA384, SHA512, SHA3256, SHA3384, SHA3512} {
		h, err := newHasher(alg)
		require.NoError(t, err, "alg %s", alg)
		assert.NotNil(t, h)
	}
}

func TestNewHasherUnknownAlgorithm(t *testing.T) {
	_, err := newHasher(HashAlg("md5"))
	assert.ErrorIs(t, err, ErrUnsupportedHashAlgorithm)
}

func TestDigestIsStable(t *testing.T) {
	d1, err := Digest(SHA256, "abc")
	require.NoError(t, err)
	d2, err := Digest(SHA256, "abc")
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}
