// Package style resolves the visual appearance of diagram elements.
//
// Every style attribute is a [Value]: either a constant or a function of the
// element being styled. Values are stacked in layers (built-in defaults, the
// "all" type, the element's own type, cluster colours, state overrides) and
// the topmost set layer wins. [Resolver.Node] and [Resolver.Edge] collapse the
// stack into a [Snapshot] for the renderer.
package style

import "github.com/matzehuels/forcegraph/pkg/graph"

// Element is what computed values receive. Exactly one of Node and Edge is
// set. Radius carries the already-resolved node radius so that attributes
// like stroke width can scale with it.
type Element struct {
	Node   *graph.Node
	Edge   *graph.Edge
	Radius float64
}

// Value is either a constant or a function of the element.
// The zero value is unset and defers to lower layers.
type Value[T any] struct {
	set      bool
	constant T
	fn       func(Element) T
}

// Constant returns a value that always resolves to v.
func Constant[T any](v T) Value[T] {
	return Value[T]{set: true, constant: v}
}

// Computed returns a value resolved by calling fn.
func Computed[T any](fn func(Element) T) Value[T] {
	if fn == nil {
		return Value[T]{}
	}
	return Value[T]{set: true, fn: fn}
}

// IsSet reports whether the value overrides lower layers.
func (v Value[T]) IsSet() bool { return v.set }

// IsComputed reports whether the value is a function.
func (v Value[T]) IsComputed() bool { return v.fn != nil }

// Resolve returns the value for el. Unset values resolve to the zero T.
func (v Value[T]) Resolve(el Element) T {
	if v.fn != nil {
		return v.fn(el)
	}
	return v.constant
}

// Or returns v if set, else fallback.
func (v Value[T]) Or(fallback Value[T]) Value[T] {
	if v.set {
		return v
	}
	return fallback
}

// ptrValue converts an optional constant into a Value.
func ptrValue[T any](p *T) Value[T] {
	if p == nil {
		return Value[T]{}
	}
	return Constant(*p)
}
