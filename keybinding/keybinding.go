// Package keybinding implements the narrow Key Binding JWT checks the core
// leaves to an external collaborator: recomputing sd_hash and confirming a
// holder public key was bound. Full KB-JWT claim validation (nonce,
// audience, holder signature) stays out of scope, same as the core.
package keybinding

import (
	"encoding/base64"
	"fmt"
	"hash"
)

// presentationWithoutKeyBinding reconstructs <issuer JWT>~<d1>~...~<dn>~,
// the exact text sd_hash is computed over per the SD-JWT spec.
func presentationWithoutKeyBinding(issuerJWT string, disclosures []string) string {
	s := issuerJWT
	for _, d := range disclosures {
		s += "~" + d
	}
	return s + "~"
}

func sdHash(newHash func() hash.Hash, issuerJWT string, disclosures []string) string {
	h := newHash()
	h.Write([]byte(presentationWithoutKeyBinding(issuerJWT, disclosures)))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// ComputeSDHash computes the sd_hash a Key Binding JWT must carry for the
// given issuer JWT and disclosure list.
func ComputeSDHash(newHash func() hash.Hash, issuerJWT string, disclosures []string) string {
	return sdHash(newHash, issuerJWT, disclosures)
}

// VerifySDHash confirms that a Key Binding JWT's sd_hash claim matches the
// hash of the presentation it is bound to.
func VerifySDHash(newHash func() hash.Hash, issuerJWT string, disclosures []string, kbClaims map[string]any) error {
	expected := sdHash(newHash, issuerJWT, disclosures)
	actual, _ := kbClaims["sd_hash"].(string)
	if actual == "" {
		return fmt.Errorf("keybinding: KB-JWT carries no sd_hash")
	}
	if actual != expected {
		return fmt.Errorf("keybinding: sd_hash mismatch")
	}
	return nil
}

// ConfirmationKey extracts the holder's JWK from a verified issuer claim
// set's "cnf" claim. The core passes "cnf" through opaquely; this is the
// one place its shape is interpreted.
func ConfirmationKey(issuerClaims map[string]any) (map[string]any, error) {
	cnfRaw, ok := issuerClaims["cnf"]
	if !ok {
		return nil, fmt.Errorf("keybinding: issuer claims carry no cnf")
	}
	cnf, ok := cnfRaw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("keybinding: cnf is not an object")
	}
	jwk, ok := cnf["jwk"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("keybinding: cnf.jwk missing or not an object")
	}
	return jwk, nil
}
