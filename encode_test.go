package sdjwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addressValue() map[string]any {
	return map[string]any{
		"street_address": "Schulstr. 12",
		"locality":       "Schulpforta",
		"region":         "Sachsen-Anhalt",
		"country":        "DE",
	}
}

func baseRoot(t *testing.T) *DisclosableObject {
	t.Helper()
	root := NewDisclosableObject()
	require.NoError(t, root.Set("sub", PlainElement(LeafValue("6c…"))))
	require.NoError(t, root.Set("iss", PlainElement(LeafValue("sample"))))
	return root
}

// Scenario 1: flat address — the whole address object is a single disclosure.
func TestEncodeFlatAddress(t *testing.T) {
	root := baseRoot(t)
	require.NoError(t, root.Set("address", SelectiveElement(LeafValue(addressValue()))))

	enc := NewEncoder(SHA256)
	enc.DecoyCount = 4

	claims, disclosures, err := enc.Encode(root)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"sub", "iss", "_sd", "_sd_alg"}, keysOf(claims))
	sd, ok := claims["_sd"].([]any)
	require.True(t, ok)
	assert.Len(t, sd, 5)
	assert.Len(t, disclosures, 1)

	result, err := Recreate(claims, disclosures)
	require.NoError(t, err)
	assert.Equal(t, addressValue(), result.Claims["address"])
	assert.Equal(t, "6c…", result.Claims["sub"])
}

// Scenario 2: structured address — four leaf disclosures under a plain container.
func TestEncodeStructuredAddress(t *testing.T) {
	root := baseRoot(t)
	addr := NewDisclosableObject()
	av := addressValue()
	for name, v := range av {
		require.NoError(t, addr.Set(name, SelectiveElement(LeafValue(v))))
	}
	require.NoError(t, root.Set("address", PlainElement(ObjectValue(addr))))

	enc := NewEncoder(SHA256)
	claims, disclosures, err := enc.Encode(root)
	require.NoError(t, err)

	addrClaims, ok := claims["address"].(map[string]any)
	require.True(t, ok)
	sd, ok := addrClaims["_sd"].([]any)
	require.True(t, ok)
	assert.Len(t, sd, 4)
	assert.Len(t, disclosures, 4)
	assert.Equal(t, SHA256, HashAlg(claims["_sd_alg"].(string)))

	result, err := Recreate(claims, disclosures)
	require.NoError(t, err)
	assert.Equal(t, av, result.Claims["address"])
}

// Scenario 3: recursive address — hoisted container whose own children are
// themselves selectively disclosable.
func TestEncodeRecursiveAddress(t *testing.T) {
	root := baseRoot(t)
	addr := NewDisclosableObject()
	av := addressValue()
	for name, v := range av {
		require.NoError(t, addr.Set(name, SelectiveElement(LeafValue(v))))
	}
	require.NoError(t, root.Set("address", SelectiveElement(ObjectValue(addr))))

	enc := NewEncoder(SHA256)
	claims, disclosures, err := enc.Encode(root)
	require.NoError(t, err)

	sd, ok := claims["_sd"].([]any)
	require.True(t, ok)
	assert.Len(t, sd, 1)
	assert.Len(t, disclosures, 5)

	full, err := Recreate(claims, disclosures)
	require.NoError(t, err)
	assert.Equal(t, av, full.Claims["address"])

	// Projection: reveal the address container plus only two of its leaves.
	var addressDisclosure string
	var countryDisclosure, regionDisclosure string
	for _, d := range disclosures {
		dec, derr := DecodeDisclosure(d)
		require.NoError(t, derr)
		switch dec.Name {
		case "address":
			addressDisclosure = d
		case "country":
			countryDisclosure = d
		case "region":
			regionDisclosure = d
		}
	}
	require.NotEmpty(t, addressDisclosure)
	require.NotEmpty(t, countryDisclosure)
	require.NotEmpty(t, regionDisclosure)

	partial, err := Recreate(claims, []string{addressDisclosure, countryDisclosure, regionDisclosure})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"country": "DE", "region": "Sachsen-Anhalt"}, partial.Claims["address"])
}

// Scenario 4: rejected reserved name.
func TestEncodeRejectsReservedClaimName(t *testing.T) {
	root := NewDisclosableObject()
	err := root.Set("_sd", PlainElement(LeafValue("foo")))
	assert.ErrorIs(t, err, ErrReservedName)
}

// Scenario 5: unknown _sd_alg.
func TestRecreateRejectsUnknownHashAlgorithm(t *testing.T) {
	claims := map[string]any{
		"_sd_alg": "md5",
		"_sd":     []any{"whatever"},
	}
	_, err := Recreate(claims, nil)
	assert.ErrorIs(t, err, ErrUnsupportedHashAlgorithm)
}

func TestRecreateRejectsMissingHashAlgorithm(t *testing.T) {
	claims := map[string]any{"_sd": []any{"whatever"}}
	_, err := Recreate(claims, nil)
	assert.ErrorIs(t, err, ErrMissingHashAlgorithm)
}

func TestRecreatePassesThroughWithNoDigestsAndNoAlg(t *testing.T) {
	claims := map[string]any{"sub": "6c…"}
	result, err := Recreate(claims, nil)
	require.NoError(t, err)
	assert.Equal(t, claims, result.Claims)
	assert.Empty(t, result.Disclosures)
}

func TestEncodeDecoyFloor(t *testing.T) {
	root := NewDisclosableObject()
	require.NoError(t, root.Set("given_name", SelectiveElement(LeafValue("Erika"))))
	root.MinDigests = 5

	enc := NewEncoder(SHA256)
	claims, _, err := enc.Encode(root)
	require.NoError(t, err)

	sd := claims["_sd"].([]any)
	assert.Len(t, sd, 5)
}

func TestEncodeRejectsDuplicateClaimName(t *testing.T) {
	root := NewDisclosableObject()
	require.NoError(t, root.Set("given_name", PlainElement(LeafValue("Erika"))))
	err := root.Set("given_name", SelectiveElement(LeafValue("Erika")))
	assert.ErrorIs(t, err, ErrDuplicateClaim)
}

func TestEncodeOrderIndependentShuffle(t *testing.T) {
	root := baseRoot(t)
	require.NoError(t, root.Set("given_name", SelectiveElement(LeafValue("Erika"))))
	require.NoError(t, root.Set("family_name", SelectiveElement(LeafValue("Mustermann"))))

	enc := NewEncoder(SHA256)
	enc.Salt = &FixedSaltProvider{Salts: []string{"s1", "s2"}}
	enc.Rand = &SequenceRandomness{Values: []int{0}}
	claims, disclosures, err := enc.Encode(root)
	require.NoError(t, err)

	// Recreate must succeed regardless of candidate disclosure order.
	reversed := []string{disclosures[1], disclosures[0]}
	result, err := Recreate(claims, reversed)
	require.NoError(t, err)
	assert.Equal(t, "Erika", result.Claims["given_name"])
	assert.Equal(t, "Mustermann", result.Claims["family_name"])
}

func TestEncodeArrayWithSelectiveElements(t *testing.T) {
	root := baseRoot(t)
	arr := &DisclosableArray{}
	arr.Append(PlainElement(LeafValue("US")))
	arr.Append(SelectiveElement(LeafValue("DE")))
	require.NoError(t, root.Set("nationalities", PlainElement(ArrayValue(arr))))

	enc := NewEncoder(SHA256)
	claims, disclosures, err := enc.Encode(root)
	require.NoError(t, err)

	nat := claims["nationalities"].([]any)
	require.Len(t, nat, 2)
	assert.Equal(t, "US", nat[0])
	ph, ok := nat[1].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, ph, "...")
	require.Len(t, disclosures, 1)

	result, err := Recreate(claims, disclosures)
	require.NoError(t, err)
	assert.Equal(t, []any{"US", "DE"}, result.Claims["nationalities"])

	dropped, err := Recreate(claims, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"US"}, dropped.Claims["nationalities"])
}

func keysOf(m map[string]any) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	return ks
}
