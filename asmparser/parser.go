// Package asmparser holds the typed token form of a decoded instruction and
// a small grammar for matching token sequences.
package asmparser

// Parser turns the textual form of a single instruction into tokens.
type Parser interface {
	Parse(text string) ([]Token, error)
}

// Instruction is one decoded instruction. It lives for a single scan step.
type Instruction struct {
	Text   string
	Tokens []Token
	Length int // encoded length in bytes
}
