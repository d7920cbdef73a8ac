package stdlib

import (
	"fmt"

	"pup/grammar"
	"pup/internal/registry"
	"pup/internal/types"
)

// Bind resolves the signature against the value a resource function is
// called on. T is the element of an array receiver, K and V the key and
// value of a map receiver. Unbound type parameters stay Unknown so the
// caller can fill them from context.
func (f FunctionDefinition) Bind(recv types.Type) ([]ParameterDefinition, types.Type, error) {
	resolve := func(name string) (types.Type, bool) {
		switch name {
		case "any":
			return types.Unknown, true
		case "T":
			if recv.Kind == types.KindArray {
				return recv.Elem(), true
			}
			return types.Unknown, true
		case "K":
			return recv.Key(), true
		case "V":
			return recv.Value(), true
		}
		return registry.LookupType(name)
	}

	params := make([]ParameterDefinition, len(f.Signature.Params))
	for i, p := range f.Signature.Params {
		t, err := p.Type.Resolve(resolve)
		if err != nil {
			return nil, types.Unknown, fmt.Errorf("%s.%s: %w", f.Namespace, f.Name, err)
		}
		params[i] = ParameterDefinition{Name: p.Name, Type: t, Variadic: p.Variadic}
	}

	ret := types.Void
	if f.Signature.Return != nil {
		t, err := f.Signature.Return.Resolve(resolve)
		if err != nil {
			return nil, types.Unknown, fmt.Errorf("%s.%s: %w", f.Namespace, f.Name, err)
		}
		ret = t
	}
	return params, ret, nil
}

// Arity returns the minimum argument count and whether more are accepted.
func (f FunctionDefinition) Arity() (int, bool) {
	n := len(f.Signature.Params)
	if n > 0 && f.Signature.Params[n-1].Variadic {
		return n - 1, true
	}
	return n, false
}

// Generic reports whether the signature mentions a receiver type
// parameter, so binding needs the type of the first argument.
func (f FunctionDefinition) Generic() bool {
	for _, p := range f.Signature.Params {
		if mentionsTypeParam(p.Type) {
			return true
		}
	}
	return f.Signature.Return != nil && mentionsTypeParam(f.Signature.Return)
}

func mentionsTypeParam(t *grammar.Type) bool {
	if t.Fixed != nil {
		return mentionsTypeParam(t.Fixed.Elem)
	}
	switch t.Name {
	case "T", "K", "V":
		return true
	}
	for _, a := range t.Args {
		if mentionsTypeParam(a) {
			return true
		}
	}
	return false
}
