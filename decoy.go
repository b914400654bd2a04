package sdjwt

import (
	"crypto/rand"
	"fmt"
	"io"
)

// decoyMinBytes and decoyMaxBytes bound the random padding a decoy digest
// hashes, keeping decoys indistinguishable in size from a typical real
// disclosure string.
const (
	decoyMinBytes = 12
	decoyMaxBytes = 24
)

// DecoyGenerator produces digests that look like real _sd entries but have
// no corresponding disclosure. Rand controls the padding length so a test
// can make padding lengths reproducible; Source supplies the padding bytes
// themselves and defaults to crypto/rand.
type DecoyGenerator struct {
	Hash   HashAlg
	Rand   Randomness
	Source io.Reader
}

func NewDecoyGenerator(alg HashAlg, rnd Randomness) *DecoyGenerator {
	return &DecoyGenerator{Hash: alg, Rand: rnd, Source: rand.Reader}
}

func (g *DecoyGenerator) Generate() (string, error) {
	hasher, err := newHasher(g.Hash)
	if err != nil {
		return "", err
	}
	n := decoyMinBytes + g.Rand.Intn(decoyMaxBytes-decoyMinBytes)
	buf := make([]byte, n)
	if _, err := io.ReadFull(g.Source, buf); err != nil {
		return "", fmt.Errorf("sdjwt: generating decoy digest: %w", err)
	}
	hasher.Write(buf)
	return encodeBase64URL(hasher.Sum(nil)), nil
}
