package sdjwt

import (
	"encoding/json"
	"fmt"
)

// Presentation is a parsed (not yet verified) SD-JWT presentation: the
// combined wire format split into its parts, with the JWT's header and
// payload already base64url-decoded. Presentation never checks the JWT
// signature; call Disclose only after an external verifier has confirmed
// it and handed back the claim set carried in Claims.
type Presentation struct {
	Combined *Combined
	Header   map[string]any
	Claims   map[string]any
}

// ParsePresentation parses the combined serialization and decodes the JWT's
// header and payload, without checking the signature.
func ParsePresentation(s string) (*Presentation, error) {
	combined, err := ParseCombined(s)
	if err != nil {
		return nil, err
	}

	segments := splitJWS(combined.JWT)
	if len(segments) != 3 {
		return nil, fmt.Errorf("%w: JWT must have 3 segments", ErrMalformedDisclosure)
	}

	header, err := decodeJWSSegment(segments[0], "header")
	if err != nil {
		return nil, err
	}
	claims, err := decodeJWSSegment(segments[1], "claims")
	if err != nil {
		return nil, err
	}

	return &Presentation{Combined: combined, Header: header, Claims: claims}, nil
}

func decodeJWSSegment(segment, label string) (map[string]any, error) {
	raw, err := decodeBase64URL(segment)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding JWT %s: %s", ErrMalformedDisclosure, label, err.Error())
	}
	var v map[string]any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: parsing JWT %s: %s", ErrMalformedDisclosure, label, err.Error())
	}
	return v, nil
}

// Disclose runs the recreator over the presentation's claim set and the
// disclosures carried alongside the JWT. Call this only after the caller
// has independently verified the JWT's signature.
func (p *Presentation) Disclose() (*RecreateResult, error) {
	return Recreate(p.Claims, p.Combined.Disclosures)
}
