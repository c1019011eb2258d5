// Package x86 tokenizes Intel-syntax x86 instruction text.
package x86

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ChainSafe/mzview/asmparser"
)

var (
	lexemeRegex = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_.]*|[0-9][0-9A-Za-z]*|[\[\],+\-*:.]`)

	registers = map[string]bool{
		"al": true, "ah": true, "ax": true, "eax": true,
		"bl": true, "bh": true, "bx": true, "ebx": true,
		"cl": true, "ch": true, "cx": true, "ecx": true,
		"dl": true, "dh": true, "dx": true, "edx": true,
		"si": true, "esi": true, "di": true, "edi": true,
		"bp": true, "ebp": true, "sp": true, "esp": true,
		"ip": true, "eip": true,
		"cs": true, "ds": true, "es": true, "ss": true, "fs": true, "gs": true,
	}

	prefixes = map[string]bool{
		"rep": true, "repe": true, "repz": true, "repne": true, "repnz": true, "lock": true,
	}
)

type ParserImpl struct {
}

func NewParser() asmparser.Parser {
	return &ParserImpl{}
}

// Parse splits one instruction into typed tokens. The first word that is not
// a prefix is the mnemonic.
func (p *ParserImpl) Parse(text string) ([]asmparser.Token, error) {
	tokens := make([]asmparser.Token, 0)
	prev := 0
	seenMnemonic := false
	for _, loc := range lexemeRegex.FindAllStringIndex(text, -1) {
		if gap := text[prev:loc[0]]; strings.TrimSpace(gap) != "" {
			return nil, fmt.Errorf("unexpected %q in instruction %q", gap, text)
		}
		prev = loc[1]

		lexeme := text[loc[0]:loc[1]]
		tok := asmparser.Token{Text: lexeme}
		lower := strings.ToLower(lexeme)
		switch c := lexeme[0]; {
		case c == '[':
			tok.Kind = asmparser.KindBracketOpen
		case c == ']':
			tok.Kind = asmparser.KindBracketClose
		case c >= '0' && c <= '9':
			tok.Kind = asmparser.KindImmediate
		case strings.ContainsRune(",+-*:", rune(c)):
			tok.Kind = asmparser.KindPunct
		case c == '.':
			// location counter of a relative branch target, as in ".+0x10"
			tok.Kind = asmparser.KindKeyword
		case !seenMnemonic && !prefixes[lower]:
			tok.Kind = asmparser.KindMnemonic
			seenMnemonic = true
		case registers[lower]:
			tok.Kind = asmparser.KindRegister
		default:
			tok.Kind = asmparser.KindKeyword
		}
		tokens = append(tokens, tok)
	}
	if rest := text[prev:]; strings.TrimSpace(rest) != "" {
		return nil, fmt.Errorf("unexpected %q in instruction %q", rest, text)
	}
	if !seenMnemonic {
		return nil, fmt.Errorf("no mnemonic in instruction %q", text)
	}
	return foldSigns(tokens), nil
}

// foldSigns merges a minus into the literal that follows it when it starts
// an operand or precedes a displacement inside brackets. Anywhere else it
// stays punctuation.
func foldSigns(tokens []asmparser.Token) []asmparser.Token {
	out := tokens[:0]
	inBrackets := false
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok.Kind {
		case asmparser.KindBracketOpen:
			inBrackets = true
		case asmparser.KindBracketClose:
			inBrackets = false
		}
		if tok.Kind == asmparser.KindPunct && tok.Text == "-" && i+1 < len(tokens) &&
			tokens[i+1].Kind == asmparser.KindImmediate && (inBrackets || isOperandStart(out)) {
			tok = asmparser.Token{Kind: asmparser.KindImmediate, Text: "-" + tokens[i+1].Text}
			i++
		}
		out = append(out, tok)
	}
	return out
}

func isOperandStart(prev []asmparser.Token) bool {
	if len(prev) == 0 {
		return true
	}
	last := prev[len(prev)-1]
	switch last.Kind {
	case asmparser.KindRegister, asmparser.KindImmediate, asmparser.KindBracketClose:
		return false
	}
	return last.Text != "."
}
