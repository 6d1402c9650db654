package interp

import (
	"strings"

	"github.com/avscript/avscript/lexer"
	"github.com/avscript/avscript/object"
	"github.com/avscript/avscript/parser"
	"github.com/avscript/avscript/scope"
)

// evalStringLiteral decodes backslash escapes and then substitutes every
// #{expr} interpolation by reentering the expression parser — spec.md
// §4.4's "string interpolation reenters the expression grammar" rule, and
// the reason parser.ParseExpression exists as a standalone entry point.
func (it *Interp) evalStringLiteral(tok lexer.Token, fr *scope.Frame) (object.Value, error) {
	decoded := decodeEscapes(tok.Lexeme)
	out, err := it.interpolate(decoded, fr)
	if err != nil {
		return nil, err
	}
	return object.String(out), nil
}

func decodeEscapes(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case '0':
			b.WriteByte(0)
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// interpolate scans for "#{" ... "}" spans, tracking brace depth so a
// nested '{'/'}' inside the embedded expression doesn't end the span early.
// A span with no matching close brace, or one whose contents fail to
// parse, is substituted literally (spec.md §9's resolved Open Question).
func (it *Interp) interpolate(s string, fr *scope.Frame) (string, error) {
	var out strings.Builder
	i := 0
	for i < len(s) {
		start := strings.Index(s[i:], "#{")
		if start < 0 {
			out.WriteString(s[i:])
			break
		}
		start += i
		out.WriteString(s[i:start])

		depth := 1
		j := start + 2
		for j < len(s) && depth > 0 {
			switch s[j] {
			case '{':
				depth++
			case '}':
				depth--
			}
			if depth == 0 {
				break
			}
			j++
		}
		if depth != 0 {
			// unterminated: keep the rest of the string as literal text
			out.WriteString(s[start:])
			return out.String(), nil
		}

		inner := s[start+2 : j]
		expr, err := parser.ParseExpression(inner)
		if err != nil {
			out.WriteString(s[start : j+1])
			i = j + 1
			continue
		}
		v, err := it.Eval(expr, fr)
		if err != nil {
			return "", err
		}
		out.WriteString(v.String())
		i = j + 1
	}
	return out.String(), nil
}
