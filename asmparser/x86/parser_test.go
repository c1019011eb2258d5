package x86

import (
	"testing"

	"github.com/ChainSafe/mzview/asmparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		text  string
		kinds []asmparser.Kind
		texts []string
	}{
		{
			text:  "mov ax, 0x1234",
			kinds: []asmparser.Kind{asmparser.KindMnemonic, asmparser.KindRegister, asmparser.KindPunct, asmparser.KindImmediate},
			texts: []string{"mov", "ax", ",", "0x1234"},
		},
		{
			text:  "mov ds, ax",
			kinds: []asmparser.Kind{asmparser.KindMnemonic, asmparser.KindRegister, asmparser.KindPunct, asmparser.KindRegister},
			texts: []string{"mov", "ds", ",", "ax"},
		},
		{
			text:  "mov bx, word ptr ds:[bp+si*1+0x4]",
			kinds: []asmparser.Kind{
				asmparser.KindMnemonic, asmparser.KindRegister, asmparser.KindPunct,
				asmparser.KindKeyword, asmparser.KindKeyword,
				asmparser.KindRegister, asmparser.KindPunct,
				asmparser.KindBracketOpen, asmparser.KindRegister, asmparser.KindPunct, asmparser.KindRegister,
				asmparser.KindPunct, asmparser.KindImmediate, asmparser.KindPunct, asmparser.KindImmediate,
				asmparser.KindBracketClose,
			},
			texts: []string{"mov", "bx", ",", "word", "ptr", "ds", ":", "[", "bp", "+", "si", "*", "1", "+", "0x4", "]"},
		},
		{
			text:  "mov ax, -0x1",
			kinds: []asmparser.Kind{asmparser.KindMnemonic, asmparser.KindRegister, asmparser.KindPunct, asmparser.KindImmediate},
			texts: []string{"mov", "ax", ",", "-0x1"},
		},
		{
			text:  "mov cx, [bx-0x2]",
			kinds: []asmparser.Kind{
				asmparser.KindMnemonic, asmparser.KindRegister, asmparser.KindPunct,
				asmparser.KindBracketOpen, asmparser.KindRegister, asmparser.KindImmediate,
				asmparser.KindBracketClose,
			},
			texts: []string{"mov", "cx", ",", "[", "bx", "-0x2", "]"},
		},
		{
			text:  "mov ax, word ptr [bp+si*1-0x4]",
			kinds: []asmparser.Kind{
				asmparser.KindMnemonic, asmparser.KindRegister, asmparser.KindPunct,
				asmparser.KindKeyword, asmparser.KindKeyword,
				asmparser.KindBracketOpen, asmparser.KindRegister, asmparser.KindPunct, asmparser.KindRegister,
				asmparser.KindPunct, asmparser.KindImmediate, asmparser.KindImmediate,
				asmparser.KindBracketClose,
			},
			texts: []string{"mov", "ax", ",", "word", "ptr", "[", "bp", "+", "si", "*", "1", "-0x4", "]"},
		},
		{
			text:  "jmp .+0x0",
			kinds: []asmparser.Kind{asmparser.KindMnemonic, asmparser.KindKeyword, asmparser.KindPunct, asmparser.KindImmediate},
			texts: []string{"jmp", ".", "+", "0x0"},
		},
		{
			text:  "jmp .-0x5",
			kinds: []asmparser.Kind{asmparser.KindMnemonic, asmparser.KindKeyword, asmparser.KindPunct, asmparser.KindImmediate},
			texts: []string{"jmp", ".", "-", "0x5"},
		},
		{
			text:  "rep movsb",
			kinds: []asmparser.Kind{asmparser.KindKeyword, asmparser.KindMnemonic},
			texts: []string{"rep", "movsb"},
		},
		{
			text:  "  nop ",
			kinds: []asmparser.Kind{asmparser.KindMnemonic},
			texts: []string{"nop"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			tokens, err := NewParser().Parse(tt.text)
			require.NoError(t, err)
			require.Len(t, tokens, len(tt.kinds))
			for i, tok := range tokens {
				assert.Equal(t, tt.kinds[i], tok.Kind, "token %d (%s)", i, tok.Text)
				assert.Equal(t, tt.texts[i], tok.Text)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, text := range []string{"", "   ", "mov ax, $1", "rep"} {
		t.Run(text, func(t *testing.T) {
			_, err := NewParser().Parse(text)
			assert.Error(t, err)
		})
	}
}
