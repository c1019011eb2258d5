package manager

import (
	"errors"

	"github.com/ChainSafe/mzview/disassembler"
	"github.com/ChainSafe/mzview/disassembler/realmode"
)

func NewDisassembler(typ disassembler.Type) (disassembler.Disassembler, error) {
	switch typ {
	case disassembler.TypeRealMode:
		return realmode.New(), nil
	default:
		return nil, errors.New("disassembler not supported")
	}
}
