package dsl

import (
	"strings"
)

// Values returns the command arguments with a leading '-' folded into the
// following number, so `scroll -40` yields ["-40"].
func (c *Command) Values() []string {
	if c == nil {
		return nil
	}
	return foldSigns(c.Args)
}

// ParamValues is Values for the viewport header.
func (v *ViewportSection) ParamValues() []string {
	if v == nil {
		return nil
	}
	return foldSigns(v.Params)
}

func foldSigns(args []*Lexeme) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a.Type == "Symbol" && a.Value == "-" && i+1 < len(args) && args[i+1].Type == "Number" {
			out = append(out, "-"+args[i+1].Value)
			i++
			continue
		}
		out = append(out, a.Value)
	}
	return out
}

// String joins the raw tokens without separators: `data.items[0]`.
func (e *Expression) String() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range e.Parts {
		b.WriteString(p.Raw)
	}
	return b.String()
}

// Text returns the value as written when it is a scalar: the unquoted
// string, the number with its unit, the colour or the joined expression.
// Arrays and inline objects report false.
func (v *Value) Text() (string, bool) {
	switch {
	case v == nil:
		return "", false
	case v.String != nil:
		return string(*v.String), true
	case v.Number != nil:
		return *v.Number, true
	case v.Color != nil:
		return *v.Color, true
	case v.Expr != nil:
		return v.Expr.String(), true
	default:
		return "", false
	}
}

// Assignments collects the block's key/value statements; later keys win.
func (b *Block) Assignments() map[string]*Value {
	out := map[string]*Value{}
	if b == nil {
		return out
	}
	for _, st := range b.Statements {
		if st.Assignment != nil {
			out[st.Assignment.Key] = st.Assignment.Value
		}
	}
	return out
}

// Commands returns the block's commands in order.
func (b *Block) Commands() []*Command {
	if b == nil {
		return nil
	}
	var out []*Command
	for _, st := range b.Statements {
		if st.Command != nil {
			out = append(out, st.Command)
		}
	}
	return out
}
