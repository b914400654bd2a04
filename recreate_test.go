package sdjwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecreateRejectsNonUniqueDisclosures(t *testing.T) {
	root := NewDisclosableObject()
	require.NoError(t, root.Set("given_name", SelectiveElement(LeafValue("Erika"))))
	enc := NewEncoder(SHA256)
	claims, disclosures, err := enc.Encode(root)
	require.NoError(t, err)

	_, err = Recreate(claims, []string{disclosures[0], disclosures[0]})
	assert.ErrorIs(t, err, ErrNonUniqueDisclosures)
}

func TestRecreateRejectsUnusedDisclosure(t *testing.T) {
	root := NewDisclosableObject()
	require.NoError(t, root.Set("given_name", SelectiveElement(LeafValue("Erika"))))
	enc := NewEncoder(SHA256)
	claims, disclosures, err := enc.Encode(root)
	require.NoError(t, err)

	bogus, err := EncodeDisclosure("other-salt", "family_name", "Mustermann")
	require.NoError(t, err)

	_, err = Recreate(claims, append(disclosures, bogus.Encoded))
	assert.ErrorIs(t, err, ErrUnusedDisclosure)
}

func TestRecreateRejectsDuplicateClaimOnMerge(t *testing.T) {
	root := NewDisclosableObject()
	require.NoError(t, root.Set("given_name", PlainElement(LeafValue("Erika"))))

	enc := NewEncoder(SHA256)
	claims, _, err := enc.Encode(root)
	require.NoError(t, err)

	// Hand-craft a disclosure that collides with the existing plain claim.
	d, err := EncodeDisclosure("salt", "given_name", "Someone Else")
	require.NoError(t, err)
	digest, err := d.Digest(SHA256)
	require.NoError(t, err)
	claims["_sd"] = []any{digest}
	claims["_sd_alg"] = string(SHA256)

	_, err = Recreate(claims, []string{d.Encoded})
	assert.ErrorIs(t, err, ErrDuplicateClaim)
}

func TestRecreateRejectsMalformedCandidate(t *testing.T) {
	claims := map[string]any{
		"_sd_alg": string(SHA256),
		"_sd":     []any{"AAAA"},
	}
	_, err := Recreate(claims, []string{"not-a-disclosure!!"})
	assert.ErrorIs(t, err, ErrUnusedDisclosure)
}

func TestEncodeAcceptsSameSaltForDistinctClaims(t *testing.T) {
	root := NewDisclosableObject()
	require.NoError(t, root.Set("a", SelectiveElement(LeafValue("x"))))
	require.NoError(t, root.Set("b", SelectiveElement(LeafValue("y"))))

	enc := NewEncoder(SHA256)
	enc.Salt = &FixedSaltProvider{Salts: []string{"same-salt", "same-salt"}}
	_, _, err := enc.Encode(root)
	// a and b have different names so their encoded disclosures differ even
	// with the same salt; this exercises recordDigest's equality check by
	// forcing two structurally distinct entries through it without a real
	// collision, which must succeed.
	require.NoError(t, err)
}

func TestRecreateDropsUnmatchedSDDigest(t *testing.T) {
	root := NewDisclosableObject()
	require.NoError(t, root.Set("given_name", SelectiveElement(LeafValue("Erika"))))
	enc := NewEncoder(SHA256)
	enc.DecoyCount = 2
	claims, disclosures, err := enc.Encode(root)
	require.NoError(t, err)

	result, err := Recreate(claims, disclosures)
	require.NoError(t, err)
	assert.Equal(t, "Erika", result.Claims["given_name"])
	assert.NotContains(t, result.Claims, "_sd")
	assert.NotContains(t, result.Claims, "_sd_alg")
}

func TestClaimPathsCoversEveryNode(t *testing.T) {
	root := NewDisclosableObject()
	require.NoError(t, root.Set("sub", PlainElement(LeafValue("6c…"))))
	addr := NewDisclosableObject()
	require.NoError(t, addr.Set("country", SelectiveElement(LeafValue("DE"))))
	require.NoError(t, root.Set("address", SelectiveElement(ObjectValue(addr))))

	paths, err := ClaimPaths(root)
	require.NoError(t, err)

	strs := make([]string, len(paths))
	for i, p := range paths {
		strs[i] = p.String()
	}
	assert.Contains(t, strs, "$.sub")
	assert.Contains(t, strs, "$.address")
	assert.Contains(t, strs, "$.address.country")
}
