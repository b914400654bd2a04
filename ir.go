package sdjwt

import "fmt"

// Disclosability tags whether an Element is always revealed in the cleartext
// claim set (Plain) or hoisted out into its own disclosure (Selectively).
type Disclosability int

const (
	Plain Disclosability = iota
	Selectively
)

type valueKind int

const (
	kindLeaf valueKind = iota
	kindObject
	kindArray
)

// Value is the sum type an Element carries: exactly one of a scalar leaf,
// a nested DisclosableObject, or a nested DisclosableArray.
type Value struct {
	leaf   any
	object *DisclosableObject
	array  *DisclosableArray
	kind   valueKind
}

// LeafValue wraps a scalar (or plain map/slice treated as opaque JSON) as a
// leaf Value.
func LeafValue(v any) Value { return Value{leaf: v, kind: kindLeaf} }

// ObjectValue wraps a nested DisclosableObject.
func ObjectValue(o *DisclosableObject) Value { return Value{object: o, kind: kindObject} }

// ArrayValue wraps a nested DisclosableArray.
func ArrayValue(a *DisclosableArray) Value { return Value{array: a, kind: kindArray} }

// Element is one child of a DisclosableObject or DisclosableArray.
type Element struct {
	Disclosability Disclosability
	Value          Value
}

func PlainElement(v Value) Element { return Element{Disclosability: Plain, Value: v} }

func SelectiveElement(v Value) Element { return Element{Disclosability: Selectively, Value: v} }

// DisclosableObject is an object-level node of the IR. Keys records
// insertion order so the encoder's output and the shuffled _sd array are
// reproducible given a deterministic SaltProvider and Randomness.
type DisclosableObject struct {
	Content    map[string]Element
	Keys       []string
	MinDigests int
}

func NewDisclosableObject() *DisclosableObject {
	return &DisclosableObject{Content: map[string]Element{}}
}

// Set adds a named child. It is the single place duplicate and reserved
// names are rejected, whether the duplicate is plain, selective, or mixed.
func (o *DisclosableObject) Set(name string, el Element) error {
	if name == "_sd" || name == "_sd_alg" {
		return fmt.Errorf("%w: %q", ErrReservedName, name)
	}
	if _, exists := o.Content[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateClaim, name)
	}
	o.Content[name] = el
	o.Keys = append(o.Keys, name)
	return nil
}

// DisclosableArray is an array-level node of the IR. MinDigests is accepted
// for symmetry with DisclosableObject but has no decoy effect: SD-JWT only
// pads digest arrays (_sd), and an array's own elements cannot be padded
// without changing the array's visible shape.
type DisclosableArray struct {
	Content    []Element
	MinDigests int
}

func (a *DisclosableArray) Append(el Element) {
	a.Content = append(a.Content, el)
}

// FoldVisitor receives every node Fold visits, in depth-first order.
type FoldVisitor interface {
	VisitLeaf(path ClaimPath, disc Disclosability, value any) error
	VisitObject(path ClaimPath, disc Disclosability, obj *DisclosableObject) error
	VisitArray(path ClaimPath, disc Disclosability, arr *DisclosableArray) error
}

// Fold walks root depth-first, invoking v at every leaf, nested object, and
// nested array. Encode and ClaimPaths share this traversal order, so any
// node the encoder reaches is also reachable by path enumeration.
func Fold(root *DisclosableObject, v FoldVisitor) error {
	return foldObject(root, ClaimPath{}, v)
}

func foldObject(o *DisclosableObject, path ClaimPath, v FoldVisitor) error {
	for _, name := range o.Keys {
		el := o.Content[name]
		childPath := path.Append(KeySegment(name))
		if err := foldElement(el, childPath, v); err != nil {
			return err
		}
	}
	return nil
}

func foldArray(a *DisclosableArray, path ClaimPath, v FoldVisitor) error {
	for i, el := range a.Content {
		childPath := path.Append(IndexSegment(i))
		if err := foldElement(el, childPath, v); err != nil {
			return err
		}
	}
	return nil
}

func foldElement(el Element, path ClaimPath, v FoldVisitor) error {
	switch el.Value.kind {
	case kindLeaf:
		return v.VisitLeaf(path, el.Disclosability, el.Value.leaf)
	case kindObject:
		if err := v.VisitObject(path, el.Disclosability, el.Value.object); err != nil {
			return err
		}
		return foldObject(el.Value.object, path, v)
	case kindArray:
		if err := v.VisitArray(path, el.Disclosability, el.Value.array); err != nil {
			return err
		}
		return foldArray(el.Value.array, path, v)
	default:
		return fmt.Errorf("%w: element has no value", ErrInvalidIR)
	}
}

type pathCollector struct{ paths []ClaimPath }

func (c *pathCollector) VisitLeaf(path ClaimPath, _ Disclosability, _ any) error {
	c.paths = append(c.paths, path)
	return nil
}

func (c *pathCollector) VisitObject(path ClaimPath, _ Disclosability, _ *DisclosableObject) error {
	c.paths = append(c.paths, path)
	return nil
}

func (c *pathCollector) VisitArray(path ClaimPath, _ Disclosability, _ *DisclosableArray) error {
	c.paths = append(c.paths, path)
	return nil
}

// ClaimPaths enumerates the path of every node Fold visits in root.
func ClaimPaths(root *DisclosableObject) ([]ClaimPath, error) {
	c := &pathCollector{}
	if err := Fold(root, c); err != nil {
		return nil, err
	}
	return c.paths, nil
}
