package grammar

import (
	"fmt"
	"strings"
)

func (s *Signature) String() string {
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.String()
	}
	out := "(" + strings.Join(params, ", ") + ")"
	if s.Return != nil {
		out += " -> " + s.Return.String()
	}
	return out
}

func (p *Param) String() string {
	s := p.Name + ": " + p.Type.String()
	if p.Variadic {
		s += "..."
	}
	return s
}

func (t *Type) String() string {
	if t.Fixed != nil {
		return fmt.Sprintf("[%s; %d]", t.Fixed.Elem.String(), t.Fixed.Size)
	}
	if len(t.Args) == 0 {
		return t.Name
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return t.Name + "<" + strings.Join(args, ", ") + ">"
}
