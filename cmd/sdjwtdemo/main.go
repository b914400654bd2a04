// Command sdjwtdemo issues a sample SD-JWT credential with a flat,
// structured, and recursively disclosable claim, then verifies it end to
// end, wiring the ambient logging/config stack around the sdjwt core.
package main

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"os"

	"github.com/google/uuid"

	sdjwt "github.com/selectivedisclosure/sdjwt-core"
	"github.com/selectivedisclosure/sdjwt-core/internal/config"
	"github.com/selectivedisclosure/sdjwt-core/internal/log"
	"github.com/selectivedisclosure/sdjwt-core/signer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	logger, err := log.New("sdjwtdemo", cfg.Production)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	logger.Info("starting", "hashAlg", cfg.HashAlg, "decoyCount", cfg.DecoyCount)

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("generating issuer key: %w", err)
	}

	root := buildCredentialIR(cfg.DecoyCount)

	enc := sdjwt.NewEncoder(sdjwt.HashAlg(cfg.HashAlg))
	enc.DecoyCount = cfg.DecoyCount

	claims, disclosures, err := enc.Encode(root)
	if err != nil {
		return fmt.Errorf("encoding credential: %w", err)
	}
	claims["jti"] = uuid.NewString()
	logger.Info("encoded credential", "disclosureCount", len(disclosures))

	s := &signer.KeySigner{PrivateKey: key}
	jwt, err := s.Sign(map[string]any{"typ": "vc+sd-jwt"}, claims)
	if err != nil {
		return fmt.Errorf("signing credential: %w", err)
	}

	combined := &sdjwt.Combined{JWT: jwt, Disclosures: disclosures}
	wire := sdjwt.Format(combined)
	logger.Info("issued presentation", "length", len(wire))

	v := &signer.KeyVerifier{PublicKey: &key.PublicKey}
	verifiedClaims, err := v.Verify(jwt)
	if err != nil {
		return fmt.Errorf("verifying JWS: %w", err)
	}

	presentation, err := sdjwt.ParsePresentation(wire)
	if err != nil {
		return fmt.Errorf("parsing presentation: %w", err)
	}
	presentation.Claims = verifiedClaims

	result, err := presentation.Disclose()
	if err != nil {
		return fmt.Errorf("reconstructing claims: %w", err)
	}

	logger.Info("verified credential", "claims", result.Claims)
	return nil
}

// buildCredentialIR assembles the three forms of selective disclosure the
// core supports: a flat leaf (given_name), a structured container whose
// elements are independently disclosable (nationalities, a plain array with
// one selectively disclosable element), and a recursively disclosable
// container (address, hoisted into its own disclosure while each of its
// children is independently disclosable too).
func buildCredentialIR(minDigests int) *sdjwt.DisclosableObject {
	root := sdjwt.NewDisclosableObject()
	_ = root.Set("iss", sdjwt.PlainElement(sdjwt.LeafValue("https://issuer.example")))
	_ = root.Set("vct", sdjwt.PlainElement(sdjwt.LeafValue("https://credentials.example/identity")))
	_ = root.Set("given_name", sdjwt.SelectiveElement(sdjwt.LeafValue("Erika")))
	_ = root.Set("family_name", sdjwt.SelectiveElement(sdjwt.LeafValue("Mustermann")))

	address := sdjwt.NewDisclosableObject()
	address.MinDigests = minDigests
	_ = address.Set("street_address", sdjwt.SelectiveElement(sdjwt.LeafValue("Schulstr. 12")))
	_ = address.Set("locality", sdjwt.SelectiveElement(sdjwt.LeafValue("Schulpforta")))
	_ = address.Set("region", sdjwt.SelectiveElement(sdjwt.LeafValue("Sachsen-Anhalt")))
	_ = address.Set("country", sdjwt.SelectiveElement(sdjwt.LeafValue("DE")))
	_ = root.Set("address", sdjwt.SelectiveElement(sdjwt.ObjectValue(address)))

	nationalities := &sdjwt.DisclosableArray{}
	nationalities.Append(sdjwt.PlainElement(sdjwt.LeafValue("DE")))
	nationalities.Append(sdjwt.SelectiveElement(sdjwt.LeafValue("US")))
	_ = root.Set("nationalities", sdjwt.PlainElement(sdjwt.ArrayValue(nationalities)))

	return root
}
