package sdjwt

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// b64 is the unpadded URL-safe alphabet used for every base64url value in
// the SD-JWT wire format: disclosures, digests, and JWS segments.
var b64 = base64.RawURLEncoding

func encodeBase64URL(b []byte) string {
	return b64.EncodeToString(b)
}

// decodeBase64URL rejects padding and any byte outside the unpadded URL
// alphabet. RawURLEncoding enforces both except for line breaks, which it
// skips, so those are rejected here first.
func decodeBase64URL(s string) ([]byte, error) {
	if strings.ContainsAny(s, "\r\n") {
		return nil, fmt.Errorf("sdjwt: invalid base64url: line break in input")
	}
	b, err := b64.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("sdjwt: invalid base64url: %w", err)
	}
	return b, nil
}
