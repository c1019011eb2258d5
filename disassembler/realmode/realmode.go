// Package realmode decodes 16-bit real-mode x86 instructions.
package realmode

import (
	"github.com/ChainSafe/mzview/asmparser"
	"github.com/ChainSafe/mzview/asmparser/x86"
	"github.com/ChainSafe/mzview/disassembler"
	"github.com/pkg/errors"
	"golang.org/x/arch/x86/x86asm"
)

const mode = 16

type RealMode struct {
	parser asmparser.Parser
}

func New() *RealMode {
	return &RealMode{parser: x86.NewParser()}
}

func (r *RealMode) Decode(window []byte, ip uint64) (*asmparser.Instruction, error) {
	inst, err := x86asm.Decode(window, mode)
	if err != nil {
		return nil, errors.Wrapf(disassembler.ErrDecode, "at %#x: %v", ip, err)
	}

	text := x86asm.IntelSyntax(inst, ip, nil)
	tokens, err := r.parser.Parse(text)
	if err != nil {
		return nil, errors.Wrapf(disassembler.ErrDecode, "at %#x: %v", ip, err)
	}
	return &asmparser.Instruction{
		Text:   text,
		Tokens: tokens,
		Length: inst.Len,
	}, nil
}
