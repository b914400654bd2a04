package sdjwt

import "errors"

// Sentinel error kinds from the SD-JWT core's error taxonomy. Test which
// kind occurred with errors.Is against these values; the core returns them
// wrapped with fmt.Errorf's %w, adding the diagnostic detail (offending
// disclosure, claim name or digest) to the message.
var (
	ErrMalformedDisclosure      = errors.New("sdjwt: malformed disclosure")
	ErrUnsupportedHashAlgorithm = errors.New("sdjwt: unsupported hash algorithm")
	ErrMissingHashAlgorithm     = errors.New("sdjwt: missing _sd_alg")
	ErrDigestCollision          = errors.New("sdjwt: digest collision")
	ErrNonUniqueDisclosures     = errors.New("sdjwt: non-unique disclosures")
	ErrUnusedDisclosure         = errors.New("sdjwt: unused disclosure")
	ErrDuplicateClaim           = errors.New("sdjwt: duplicate claim")
	ErrReservedName             = errors.New("sdjwt: reserved claim name")
	ErrInvalidIR                = errors.New("sdjwt: invalid disclosable IR")
)
