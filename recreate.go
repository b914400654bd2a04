package sdjwt

import "fmt"

// RecreateResult is the output of a successful Recreate call.
type RecreateResult struct {
	Claims      map[string]any
	Disclosures []string // the candidates actually consumed, in input order
}

// Recreate reconstructs the full claim set from a redacted claims document
// and the candidate disclosure strings a holder chose to reveal. It never
// mutates claims; the returned Claims is an independent copy.
//
// Every candidate must be consumed by some _sd entry or array placeholder
// in claims (ErrUnusedDisclosure), every candidate digest must be unique
// (ErrNonUniqueDisclosures), and a claims document carrying digests without
// a declared _sd_alg is rejected (ErrMissingHashAlgorithm).
func Recreate(claims map[string]any, candidates []string) (*RecreateResult, error) {
	algRaw, hasAlg := claims["_sd_alg"]
	if !hasAlg {
		if containsDigests(claims) {
			return nil, fmt.Errorf("%w", ErrMissingHashAlgorithm)
		}
		return &RecreateResult{Claims: deepCopyAny(claims).(map[string]any)}, nil
	}

	algStr, ok := algRaw.(string)
	if !ok {
		return nil, fmt.Errorf("%w: _sd_alg must be a string", ErrUnsupportedHashAlgorithm)
	}
	alg := HashAlg(algStr)
	hasher, err := newHasher(alg)
	if err != nil {
		return nil, err
	}

	byDigest := map[string]string{}
	order := make([]string, 0, len(candidates))
	for _, c := range candidates {
		hasher.Reset()
		hasher.Write([]byte(c))
		digest := encodeBase64URL(hasher.Sum(nil))
		if _, exists := byDigest[digest]; exists {
			return nil, fmt.Errorf("%w: %s", ErrNonUniqueDisclosures, c)
		}
		byDigest[digest] = c
		order = append(order, digest)
	}

	rootMap := deepCopyAny(claims).(map[string]any)
	used := map[string]bool{}
	if err := recreateObjectInPlace(rootMap, byDigest, used); err != nil {
		return nil, err
	}
	delete(rootMap, "_sd_alg")

	var unused []string
	for _, digest := range order {
		if !used[digest] {
			unused = append(unused, byDigest[digest])
		}
	}
	if len(unused) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnusedDisclosure, unused)
	}

	usedList := make([]string, 0, len(order))
	for _, digest := range order {
		usedList = append(usedList, byDigest[digest])
	}

	return &RecreateResult{Claims: rootMap, Disclosures: usedList}, nil
}

func recreateObjectInPlace(obj map[string]any, byDigest map[string]string, used map[string]bool) error {
	if sdRaw, ok := obj["_sd"]; ok {
		delete(obj, "_sd")
		sdArr, ok := sdRaw.([]any)
		if !ok {
			return fmt.Errorf("%w: _sd is not an array", ErrMalformedDisclosure)
		}
		for _, entry := range sdArr {
			digestStr, ok := entry.(string)
			if !ok {
				continue
			}
			candidate, found := byDigest[digestStr]
			if !found {
				continue // decoy, or a real digest the holder chose not to reveal
			}
			d, err := DecodeDisclosure(candidate)
			if err != nil {
				return fmt.Errorf("%w: %s", ErrMalformedDisclosure, err.Error())
			}
			if d.Array || d.Name == "" {
				return fmt.Errorf("%w: disclosure for _sd entry must be object form", ErrMalformedDisclosure)
			}
			if _, exists := obj[d.Name]; exists {
				return fmt.Errorf("%w: %q", ErrDuplicateClaim, d.Name)
			}
			obj[d.Name] = d.Value
			used[digestStr] = true
		}
	}

	for key, val := range obj {
		switch v := val.(type) {
		case map[string]any:
			if err := recreateObjectInPlace(v, byDigest, used); err != nil {
				return err
			}
		case []any:
			newArr, err := recreateArrayInPlace(v, byDigest, used)
			if err != nil {
				return err
			}
			obj[key] = newArr
		}
	}
	return nil
}

func recreateArrayInPlace(arr []any, byDigest map[string]string, used map[string]bool) ([]any, error) {
	result := make([]any, 0, len(arr))
	for _, elem := range arr {
		if ph, ok := elem.(map[string]any); ok && len(ph) == 1 {
			if digestRaw, has := ph["..."]; has {
				digestStr, ok := digestRaw.(string)
				if !ok {
					return nil, fmt.Errorf("%w: array placeholder digest is not a string", ErrMalformedDisclosure)
				}
				candidate, found := byDigest[digestStr]
				if !found {
					continue // undisclosed array element: drop it
				}
				d, err := DecodeDisclosure(candidate)
				if err != nil {
					return nil, fmt.Errorf("%w: %s", ErrMalformedDisclosure, err.Error())
				}
				if !d.Array {
					return nil, fmt.Errorf("%w: disclosure for array placeholder must be array-element form", ErrMalformedDisclosure)
				}
				used[digestStr] = true
				revealed := d.Value
				switch rv := revealed.(type) {
				case map[string]any:
					if err := recreateObjectInPlace(rv, byDigest, used); err != nil {
						return nil, err
					}
				case []any:
					na, err := recreateArrayInPlace(rv, byDigest, used)
					if err != nil {
						return nil, err
					}
					revealed = na
				}
				result = append(result, revealed)
				continue
			}
		}
		switch v := elem.(type) {
		case map[string]any:
			if err := recreateObjectInPlace(v, byDigest, used); err != nil {
				return nil, err
			}
			result = append(result, v)
		case []any:
			nested, err := recreateArrayInPlace(v, byDigest, used)
			if err != nil {
				return nil, err
			}
			result = append(result, nested)
		default:
			result = append(result, v)
		}
	}
	return result, nil
}

// containsDigests reports whether v has an _sd array or an array-element
// placeholder anywhere beneath it.
func containsDigests(v any) bool {
	switch t := v.(type) {
	case map[string]any:
		if _, ok := t["_sd"]; ok {
			return true
		}
		if len(t) == 1 {
			if _, ok := t["..."]; ok {
				return true
			}
		}
		for _, vv := range t {
			if containsDigests(vv) {
				return true
			}
		}
	case []any:
		for _, vv := range t {
			if containsDigests(vv) {
				return true
			}
		}
	}
	return false
}

func deepCopyAny(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = deepCopyAny(vv)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = deepCopyAny(vv)
		}
		return s
	default:
		return t
	}
}
