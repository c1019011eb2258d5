package asmparser

import "strings"

// Kind is the type of a token.
type Kind int

const (
	KindMnemonic     Kind = iota + 1 // instruction name
	KindRegister                     // register name
	KindImmediate                    // numeric literal, kept in its textual form
	KindBracketOpen                  // start of a memory operand
	KindBracketClose                 // end of a memory operand
	KindPunct                        // operand separators and address arithmetic
	KindKeyword                      // size hints, prefixes and other words
)

func (k Kind) String() string {
	switch k {
	case KindMnemonic:
		return "mnemonic"
	case KindRegister:
		return "register"
	case KindImmediate:
		return "immediate"
	case KindBracketOpen:
		return "["
	case KindBracketClose:
		return "]"
	case KindPunct:
		return "punct"
	case KindKeyword:
		return "keyword"
	default:
		return "unknown"
	}
}

type Token struct {
	Kind Kind
	Text string
}

func (t Token) String() string {
	return t.Text
}

// IsSignificant reports whether patterns see the token. Punctuation and
// keywords only carry layout.
func (t Token) IsSignificant() bool {
	return t.Kind != KindPunct && t.Kind != KindKeyword
}

// Significant returns the tokens patterns are matched against.
func Significant(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.IsSignificant() {
			out = append(out, t)
		}
	}
	return out
}

// Join renders tokens back into a readable line.
func Join(tokens []Token) string {
	var sb strings.Builder
	for i, t := range tokens {
		if i > 0 && needsSpace(tokens[i-1], t) {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.Text)
	}
	return sb.String()
}

func needsSpace(prev, cur Token) bool {
	switch {
	case cur.Text == "," || cur.Text == ":" || prev.Text == ":":
		return false
	case prev.Kind == KindBracketOpen || cur.Kind == KindBracketClose:
		return false
	case prev.Text == "+" || prev.Text == "-" || prev.Text == "*":
		return false
	case cur.Kind == KindImmediate && strings.HasPrefix(cur.Text, "-"):
		// signed displacement following a base or index
		return prev.Kind != KindRegister && prev.Kind != KindImmediate
	case cur.Text == "+" || cur.Text == "-" || cur.Text == "*":
		return prev.Kind == KindMnemonic || prev.Text == ","
	}
	return true
}
