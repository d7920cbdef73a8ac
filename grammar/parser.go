package grammar

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"

	"pup/internal/builtins"
	"pup/internal/types"
)

var (
	signatureParser = participle.MustBuild[Signature](
		participle.Lexer(SignatureLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
	typeParser = participle.MustBuild[Type](
		participle.Lexer(SignatureLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
)

// ParseSignature parses a declaration like "(path: string) -> Texture".
func ParseSignature(source string) (*Signature, error) {
	sig, err := signatureParser.ParseString("", source)
	if err != nil {
		return nil, describeParseError(source, err)
	}
	return sig, nil
}

// MustSignature is ParseSignature for declarations built into the binary.
func MustSignature(source string) *Signature {
	sig, err := ParseSignature(source)
	if err != nil {
		panic(err)
	}
	return sig
}

func ParseType(source string) (*Type, error) {
	ty, err := typeParser.ParseString("", source)
	if err != nil {
		return nil, describeParseError(source, err)
	}
	return ty, nil
}

// describeParseError renders a caret under the failing column.
func describeParseError(src string, err error) error {
	pe, ok := err.(participle.Error)
	if !ok {
		return err
	}

	pos := pe.Position()
	if pos.Line != 1 || pos.Column <= 0 {
		return fmt.Errorf("signature %q: %s", src, pe.Message())
	}
	caret := strings.Repeat(" ", pos.Column-1) + "^"
	return fmt.Errorf("signature %q: %s\n  %s\n  %s", src, pe.Message(), src, caret)
}

// Resolver maps a type name without arguments to a type. Names it does not
// know report false.
type Resolver func(name string) (types.Type, bool)

// Builtins resolves the builtin vocabulary only.
func Builtins(name string) (types.Type, bool) {
	return builtins.Lookup(name)
}

// Resolve converts the declared type, resolving names through resolve.
func (t *Type) Resolve(resolve Resolver) (types.Type, error) {
	if t.Fixed != nil {
		elem, err := t.Fixed.Elem.Resolve(resolve)
		if err != nil {
			return types.Unknown, err
		}
		return types.FixedArray(elem, t.Fixed.Size), nil
	}

	if want, generic := builtins.Generics[t.Name]; generic {
		if len(t.Args) != want {
			return types.Unknown, fmt.Errorf("%s takes %d type argument(s), got %d", t.Name, want, len(t.Args))
		}
		args := make([]types.Type, len(t.Args))
		for i, a := range t.Args {
			resolved, err := a.Resolve(resolve)
			if err != nil {
				return types.Unknown, err
			}
			args[i] = resolved
		}
		switch t.Name {
		case "Option":
			return types.Option(args[0]), nil
		case "Array":
			return types.Array(args[0]), nil
		default:
			return types.Map(args[0], args[1]), nil
		}
	}

	if len(t.Args) > 0 {
		return types.Unknown, fmt.Errorf("%s does not take type arguments", t.Name)
	}
	if resolved, ok := resolve(t.Name); ok {
		return resolved, nil
	}
	return types.Unknown, fmt.Errorf("unknown type %q", t.Name)
}
