package asmparser

import (
	"fmt"
	"strings"
)

// Element matches one token, or a run of tokens for a wildcard.
type Element struct {
	desc    string
	match   func(Token) bool
	capture string
	many    bool
}

// As names the token matched by e so it can be read from the Captures.
func (e Element) As(name string) Element {
	e.capture = name
	e.desc = e.desc + "@" + name
	return e
}

// Mnemonic matches the instruction name text, case-insensitively.
func Mnemonic(text string) Element {
	return Element{
		desc: text,
		match: func(t Token) bool {
			return t.Kind == KindMnemonic && strings.EqualFold(t.Text, text)
		},
	}
}

// Register matches the named register, or any register when name is empty.
func Register(name string) Element {
	desc := name
	if desc == "" {
		desc = "<reg>"
	}
	return Element{
		desc: desc,
		match: func(t Token) bool {
			return t.Kind == KindRegister && (name == "" || strings.EqualFold(t.Text, name))
		},
	}
}

// Immediate matches any numeric literal.
func Immediate() Element {
	return Element{
		desc: "<imm>",
		match: func(t Token) bool {
			return t.Kind == KindImmediate
		},
	}
}

func BracketOpen() Element {
	return Element{desc: "[", match: func(t Token) bool { return t.Kind == KindBracketOpen }}
}

func BracketClose() Element {
	return Element{desc: "]", match: func(t Token) bool { return t.Kind == KindBracketClose }}
}

// Any matches zero or more tokens of any kind, as few as possible.
func Any() Element {
	return Element{desc: "...", many: true}
}

// Captures holds the tokens bound by Element.As during a match.
type Captures map[string]Token

// Pattern is an ordered sequence of elements anchored at both ends of the
// significant tokens of an instruction.
type Pattern struct {
	Name  string
	elems []Element
}

func NewPattern(name string, elems ...Element) Pattern {
	return Pattern{Name: name, elems: elems}
}

// Match reports whether tokens have the shape of p. Punctuation and keywords
// are skipped before matching.
func (p Pattern) Match(tokens []Token) (Captures, bool) {
	caps := make(Captures)
	if !matchElems(p.elems, Significant(tokens), caps) {
		return nil, false
	}
	return caps, true
}

func (p Pattern) String() string {
	parts := make([]string, len(p.elems))
	for i, e := range p.elems {
		parts[i] = e.desc
	}
	return fmt.Sprintf("%s(%s)", p.Name, strings.Join(parts, " "))
}

func matchElems(elems []Element, tokens []Token, caps Captures) bool {
	if len(elems) == 0 {
		return len(tokens) == 0
	}
	e := elems[0]
	if e.many {
		for n := 0; n <= len(tokens); n++ {
			if matchElems(elems[1:], tokens[n:], caps) {
				return true
			}
		}
		return false
	}
	if len(tokens) == 0 || !e.match(tokens[0]) {
		return false
	}
	if !matchElems(elems[1:], tokens[1:], caps) {
		return false
	}
	// bound only once the rest matched, so a failed branch leaves nothing behind
	if e.capture != "" {
		caps[e.capture] = tokens[0]
	}
	return true
}
