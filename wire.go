package sdjwt

import (
	"fmt"
	"strings"
)

// Combined is the three parts of an SD-JWT combined serialization:
// <JWT>~<d1>~...~<dn>~[<KB-JWT>].
type Combined struct {
	JWT           string
	Disclosures   []string
	KeyBindingJWT string // empty if absent
}

// ParseCombined splits the wire format into its parts. It validates that
// every disclosure segment decodes (see DecodeDisclosure) but does not
// touch the JWT's signature — that verification is an external
// collaborator's job.
func ParseCombined(s string) (*Combined, error) {
	if !strings.Contains(s, "~") {
		return nil, fmt.Errorf("%w: missing ~ separator", ErrMalformedDisclosure)
	}
	parts := strings.Split(s, "~")

	jwt := parts[0]
	if !looksLikeJWS(jwt) {
		return nil, fmt.Errorf("%w: first segment is not a compact JWS", ErrMalformedDisclosure)
	}

	rest := parts[1:]
	kb := ""
	if n := len(rest); n > 0 {
		last := rest[n-1]
		switch {
		case last == "":
			rest = rest[:n-1]
		case looksLikeJWS(last):
			kb = last
			rest = rest[:n-1]
		}
	}

	disclosures := make([]string, 0, len(rest))
	for i, d := range rest {
		if d == "" {
			return nil, fmt.Errorf("%w: empty disclosure segment at position %d", ErrMalformedDisclosure, i)
		}
		if _, err := DecodeDisclosure(d); err != nil {
			return nil, fmt.Errorf("%w: segment %d: %s", ErrMalformedDisclosure, i, err.Error())
		}
		disclosures = append(disclosures, d)
	}

	return &Combined{JWT: jwt, Disclosures: disclosures, KeyBindingJWT: kb}, nil
}

// Format reassembles the wire format from its parts.
func Format(c *Combined) string {
	var b strings.Builder
	b.WriteString(c.JWT)
	for _, d := range c.Disclosures {
		b.WriteByte('~')
		b.WriteString(d)
	}
	b.WriteByte('~')
	b.WriteString(c.KeyBindingJWT)
	return b.String()
}

func looksLikeJWS(s string) bool {
	return strings.Count(s, ".") == 2
}

func splitJWS(s string) []string {
	return strings.Split(s, ".")
}
