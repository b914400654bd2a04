package sdjwt

import "fmt"

// Encoder compiles a Disclosable IR and its leaf values into a redacted
// claim set plus the ordered bag of disclosures that reveal it. An Encoder
// holds no state between calls and is safe to reuse for unrelated Encode
// calls, but not to share concurrently: Salt and Rand are not assumed
// thread-safe unless the caller makes them so.
type Encoder struct {
	Hash HashAlg
	Salt SaltProvider
	Rand Randomness
	// DecoyCount is the number of decoy digests added to every object's _sd
	// array. When real digests plus DecoyCount fall short of the object's
	// MinDigests, extra decoys are added until _sd holds MinDigests entries.
	DecoyCount int
}

// NewEncoder returns an Encoder with the default secure SaltProvider and
// Randomness and no decoy padding.
func NewEncoder(alg HashAlg) *Encoder {
	return &Encoder{Hash: alg, Salt: NewSaltProvider(), Rand: NewRandomness()}
}

// Encode walks root and returns the redacted claim set and the disclosures
// needed to reveal every selectively disclosable node in it.
func (e *Encoder) Encode(root *DisclosableObject) (map[string]any, []string, error) {
	if root == nil {
		return nil, nil, fmt.Errorf("%w: nil root", ErrInvalidIR)
	}
	st := &encodeState{enc: e, digests: map[string]string{}}
	claims, bag, err := st.encodeObject(root)
	if err != nil {
		return nil, nil, err
	}
	if st.anyDigest {
		claims["_sd_alg"] = string(e.Hash)
	}
	return claims, bag, nil
}

type encodeState struct {
	enc       *Encoder
	digests   map[string]string // digest -> the disclosure string that produced it
	anyDigest bool
}

func (st *encodeState) recordDigest(digest, encoded string) error {
	if existing, ok := st.digests[digest]; ok && existing != encoded {
		return fmt.Errorf("%w: %s", ErrDigestCollision, digest)
	}
	st.digests[digest] = encoded
	st.anyDigest = true
	return nil
}

func (st *encodeState) discloseLeaf(name string, value any) (digest, encoded string, err error) {
	salt, err := st.enc.Salt.Salt()
	if err != nil {
		return "", "", err
	}
	d, err := EncodeDisclosure(salt, name, value)
	if err != nil {
		return "", "", err
	}
	digest, err = d.Digest(st.enc.Hash)
	if err != nil {
		return "", "", err
	}
	if err := st.recordDigest(digest, d.Encoded); err != nil {
		return "", "", err
	}
	return digest, d.Encoded, nil
}

func (st *encodeState) discloseElement(value any) (placeholder map[string]any, encoded string, err error) {
	salt, err := st.enc.Salt.Salt()
	if err != nil {
		return nil, "", err
	}
	d, err := EncodeArrayDisclosure(salt, value)
	if err != nil {
		return nil, "", err
	}
	digest, err := d.Digest(st.enc.Hash)
	if err != nil {
		return nil, "", err
	}
	if err := st.recordDigest(digest, d.Encoded); err != nil {
		return nil, "", err
	}
	return map[string]any{"...": digest}, d.Encoded, nil
}

func (st *encodeState) withDecoys(digests []string, minDigests int) ([]string, error) {
	want := st.enc.DecoyCount
	if need := len(digests) + want; need < minDigests {
		want += minDigests - need
	}
	if want <= 0 {
		return digests, nil
	}
	gen := NewDecoyGenerator(st.enc.Hash, st.enc.Rand)
	for i := 0; i < want; i++ {
		d, err := gen.Generate()
		if err != nil {
			return nil, err
		}
		digests = append(digests, d)
	}
	st.anyDigest = true
	return digests, nil
}

func (st *encodeState) encodeObject(o *DisclosableObject) (map[string]any, []string, error) {
	claims := map[string]any{}
	var bag []string
	var digests []string

	for _, name := range o.Keys {
		el := o.Content[name]
		switch el.Value.kind {
		case kindLeaf:
			if el.Disclosability == Plain {
				claims[name] = el.Value.leaf
				continue
			}
			digest, encoded, err := st.discloseLeaf(name, el.Value.leaf)
			if err != nil {
				return nil, nil, err
			}
			bag = append(bag, encoded)
			digests = append(digests, digest)

		case kindObject:
			subClaims, subBag, err := st.encodeObject(el.Value.object)
			if err != nil {
				return nil, nil, err
			}
			bag = append(bag, subBag...)
			if el.Disclosability == Plain {
				claims[name] = subClaims
				continue
			}
			digest, encoded, err := st.discloseLeaf(name, subClaims)
			if err != nil {
				return nil, nil, err
			}
			bag = append(bag, encoded)
			digests = append(digests, digest)

		case kindArray:
			subArr, subBag, err := st.encodeArray(el.Value.array)
			if err != nil {
				return nil, nil, err
			}
			bag = append(bag, subBag...)
			if el.Disclosability == Plain {
				claims[name] = subArr
				continue
			}
			digest, encoded, err := st.discloseLeaf(name, subArr)
			if err != nil {
				return nil, nil, err
			}
			bag = append(bag, encoded)
			digests = append(digests, digest)
		}
	}

	finalDigests, err := st.withDecoys(digests, o.MinDigests)
	if err != nil {
		return nil, nil, err
	}
	if len(finalDigests) > 0 {
		shuffle(st.enc.Rand, finalDigests)
		sd := make([]any, len(finalDigests))
		for i, d := range finalDigests {
			sd[i] = d
		}
		claims["_sd"] = sd
	}
	return claims, bag, nil
}

func (st *encodeState) encodeArray(a *DisclosableArray) ([]any, []string, error) {
	result := make([]any, 0, len(a.Content))
	var bag []string

	for _, el := range a.Content {
		switch el.Value.kind {
		case kindLeaf:
			if el.Disclosability == Plain {
				result = append(result, el.Value.leaf)
				continue
			}
			ph, encoded, err := st.discloseElement(el.Value.leaf)
			if err != nil {
				return nil, nil, err
			}
			result = append(result, ph)
			bag = append(bag, encoded)

		case kindObject:
			subClaims, subBag, err := st.encodeObject(el.Value.object)
			if err != nil {
				return nil, nil, err
			}
			bag = append(bag, subBag...)
			if el.Disclosability == Plain {
				result = append(result, subClaims)
				continue
			}
			ph, encoded, err := st.discloseElement(subClaims)
			if err != nil {
				return nil, nil, err
			}
			result = append(result, ph)
			bag = append(bag, encoded)

		case kindArray:
			subArr, subBag, err := st.encodeArray(el.Value.array)
			if err != nil {
				return nil, nil, err
			}
			bag = append(bag, subBag...)
			if el.Disclosability == Plain {
				result = append(result, subArr)
				continue
			}
			ph, encoded, err := st.discloseElement(subArr)
			if err != nil {
				return nil, nil, err
			}
			result = append(result, ph)
			bag = append(bag, encoded)
		}
	}

	return result, bag, nil
}
