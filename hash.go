package sdjwt

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/sha3"
)

// HashAlg is the canonical alias used in _sd_alg, e.g. "sha-256". The
// registry below is built from these aliases rather than inferring an
// alias from a hash.Hash value, so adding an algorithm never needs
// reverse-engineering a fingerprint out of block/output sizes.
type HashAlg string

const (
	SHA256  HashAlg = "sha-256"
	SHA384  HashAlg = "sha-384"
	SHA512  HashAlg = "sha-512"
	SHA3256 HashAlg = "sha3-256"
	SHA3384 HashAlg = "sha3-384"
	SHA3512 HashAlg = "sha3-512"
)

var hashRegistry = map[HashAlg]func() hash.Hash{
	SHA256:  sha256.New,
	SHA384:  sha512.New384,
	SHA512:  sha512.New,
	SHA3256: sha3.New256,
	SHA3384: sha3.New384,
	SHA3512: sha3.New512,
}

func newHasher(alg HashAlg) (hash.Hash, error) {
	f, ok := hashRegistry[alg]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedHashAlgorithm, alg)
	}
	return f(), nil
}

// Digest hashes the disclosure's own base64url text (not its decoded
// content) under alg, returning the base64url digest used in _sd arrays
// and array-element placeholders.
func Digest(alg HashAlg, disclosure string) (string, error) {
	h, err := newHasher(alg)
	if err != nil {
		return "", err
	}
	h.Write([]byte(disclosure))
	return encodeBase64URL(h.Sum(nil)), nil
}
