package sdjwt

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Disclosure is a decoded selective-disclosure string. Object-form
// disclosures carry Name; array-element-form disclosures leave Name empty
// and set Array. Encoded is the disclosure's own base64url text, the value
// that gets hashed to produce a digest — never the decoded Value.
type Disclosure struct {
	Salt    string
	Name    string
	Value   any
	Array   bool
	Encoded string
}

// Digest hashes the disclosure's Encoded text under alg.
func (d *Disclosure) Digest(alg HashAlg) (string, error) {
	return Digest(alg, d.Encoded)
}

// EncodeDisclosure builds an object-form disclosure [salt, name, value].
// It rejects a reserved name and a value that itself carries a reserved
// "_sd" key at any depth, matching the SD-JWT digest-construction rules.
func EncodeDisclosure(salt, name string, value any) (*Disclosure, error) {
	if name == "" || name == "_sd" || name == "_sd_alg" {
		return nil, fmt.Errorf("%w: %q", ErrReservedName, name)
	}
	if value == nil {
		return nil, fmt.Errorf("%w: disclosure value must not be null", ErrMalformedDisclosure)
	}
	if containsSDKey(value) {
		return nil, fmt.Errorf("%w: value contains a reserved _sd key", ErrReservedName)
	}
	b, err := json.Marshal([]any{salt, name, value})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedDisclosure, err.Error())
	}
	return &Disclosure{Salt: salt, Name: name, Value: value, Encoded: encodeBase64URL(b)}, nil
}

// EncodeArrayDisclosure builds an array-element-form disclosure [salt, value].
func EncodeArrayDisclosure(salt string, value any) (*Disclosure, error) {
	if value == nil {
		return nil, fmt.Errorf("%w: disclosure value must not be null", ErrMalformedDisclosure)
	}
	if containsSDKey(value) {
		return nil, fmt.Errorf("%w: value contains a reserved _sd key", ErrReservedName)
	}
	b, err := json.Marshal([]any{salt, value})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedDisclosure, err.Error())
	}
	return &Disclosure{Salt: salt, Value: value, Array: true, Encoded: encodeBase64URL(b)}, nil
}

// DecodeDisclosure parses a base64url disclosure string into its salt, name
// (if any), and value, rejecting anything not shaped like a 2- or 3-element
// JSON array.
func DecodeDisclosure(encoded string) (*Disclosure, error) {
	raw, err := decodeBase64URL(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedDisclosure, err.Error())
	}

	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, fmt.Errorf("%w: not a JSON array: %s", ErrMalformedDisclosure, err.Error())
	}

	switch len(arr) {
	case 2:
		salt, err := decodeJSONString(arr[0])
		if err != nil {
			return nil, fmt.Errorf("%w: salt must be a string: %s", ErrMalformedDisclosure, err.Error())
		}
		value, err := decodeJSONValue(arr[1])
		if err != nil {
			return nil, err
		}
		return &Disclosure{Salt: salt, Value: value, Array: true, Encoded: encoded}, nil
	case 3:
		salt, err := decodeJSONString(arr[0])
		if err != nil {
			return nil, fmt.Errorf("%w: salt must be a string: %s", ErrMalformedDisclosure, err.Error())
		}
		name, err := decodeJSONString(arr[1])
		if err != nil {
			return nil, fmt.Errorf("%w: claim name must be a string: %s", ErrMalformedDisclosure, err.Error())
		}
		if name == "_sd" || name == "_sd_alg" {
			return nil, fmt.Errorf("%w: disclosure names reserved claim %q", ErrMalformedDisclosure, name)
		}
		value, err := decodeJSONValue(arr[2])
		if err != nil {
			return nil, err
		}
		return &Disclosure{Salt: salt, Name: name, Value: value, Encoded: encoded}, nil
	default:
		return nil, fmt.Errorf("%w: expected 2 or 3 array elements, got %d", ErrMalformedDisclosure, len(arr))
	}
}

func decodeJSONString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}

func decodeJSONValue(raw json.RawMessage) (any, error) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, fmt.Errorf("%w: disclosure value must not be null", ErrMalformedDisclosure)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedDisclosure, err.Error())
	}
	return v, nil
}

// containsSDKey reports whether v contains an object key "_sd" at any depth.
func containsSDKey(v any) bool {
	switch t := v.(type) {
	case map[string]any:
		if _, ok := t["_sd"]; ok {
			return true
		}
		for _, vv := range t {
			if containsSDKey(vv) {
				return true
			}
		}
	case []any:
		for _, vv := range t {
			if containsSDKey(vv) {
				return true
			}
		}
	}
	return false
}
