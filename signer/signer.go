// Package signer supplies a concrete JWS signer/verifier for the SD-JWT
// core. The core treats signing as an external collaborator specified only
// by interface; this package is one pluggable implementation of it, built
// on golang-jwt/jwt/v5.
package signer

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer produces the compact JWS that becomes the first segment of an
// SD-JWT combined serialization.
type Signer interface {
	Sign(header map[string]any, claims map[string]any) (string, error)
}

// Verifier checks a compact JWS and returns its claims.
type Verifier interface {
	Verify(jws string) (map[string]any, error)
}

// KeySigner signs with a single private key, picking the JWS algorithm
// from the key's type and, for ECDSA, its curve.
type KeySigner struct {
	PrivateKey any
}

func (s *KeySigner) Sign(header map[string]any, claims map[string]any) (string, error) {
	method, algName := signingMethodFor(s.PrivateKey)
	token := jwt.NewWithClaims(method, jwt.MapClaims(claims))
	for k, v := range header {
		token.Header[k] = v
	}
	token.Header["alg"] = algName
	return token.SignedString(s.PrivateKey)
}

// KeyVerifier verifies with a single public key.
type KeyVerifier struct {
	PublicKey any
}

func (v *KeyVerifier) Verify(jws string) (map[string]any, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(jws, claims, func(*jwt.Token) (any, error) {
		return v.PublicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("signer: verifying JWS: %w", err)
	}
	return map[string]any(claims), nil
}

// signingMethodFor picks a JWS algorithm from the private key's type and,
// for ECDSA, its curve — the same switch dc4eu-vc's SD-JWT issuer uses to
// go from a Go crypto key to a JOSE alg name.
func signingMethodFor(privateKey any) (jwt.SigningMethod, string) {
	if rsaKey, ok := privateKey.(*rsa.PrivateKey); ok {
		switch {
		case rsaKey.N.BitLen() >= 4096:
			return jwt.SigningMethodRS512, "RS512"
		case rsaKey.N.BitLen() >= 3072:
			return jwt.SigningMethodRS384, "RS384"
		default:
			return jwt.SigningMethodRS256, "RS256"
		}
	}
	if ecKey, ok := privateKey.(*ecdsa.PrivateKey); ok {
		switch ecKey.Curve.Params().Name {
		case "P-384":
			return jwt.SigningMethodES384, "ES384"
		case "P-521":
			return jwt.SigningMethodES512, "ES512"
		default:
			return jwt.SigningMethodES256, "ES256"
		}
	}
	return jwt.SigningMethodES256, "ES256"
}
