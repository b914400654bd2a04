package sdjwt

import "strconv"

// PathSegment is one hop of a ClaimPath: an object key, an array index, or
// the "all elements" wildcard used by SD-JWT VC-style array path matching.
type PathSegment struct {
	Key         string
	Index       int
	IsIndex     bool
	AllElements bool
}

func KeySegment(key string) PathSegment { return PathSegment{Key: key} }

func IndexSegment(i int) PathSegment { return PathSegment{Index: i, IsIndex: true} }

func AllElementsSegment() PathSegment { return PathSegment{IsIndex: true, AllElements: true} }

func (s PathSegment) String() string {
	switch {
	case s.AllElements:
		return "[*]"
	case s.IsIndex:
		return "[" + strconv.Itoa(s.Index) + "]"
	default:
		return s.Key
	}
}

// ClaimPath locates a node in a Disclosable IR: a sequence of object-key
// and array-index hops from the document root.
type ClaimPath []PathSegment

// Append returns a new path with seg as its final hop, leaving p untouched.
func (p ClaimPath) Append(seg PathSegment) ClaimPath {
	next := make(ClaimPath, len(p)+1)
	copy(next, p)
	next[len(p)] = seg
	return next
}

func (p ClaimPath) String() string {
	s := "$"
	for _, seg := range p {
		if seg.IsIndex {
			s += seg.String()
		} else {
			s += "." + seg.Key
		}
	}
	return s
}
