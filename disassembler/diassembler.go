// Package disassembler defines the single-instruction decoding contract the
// segment analysis consumes.
package disassembler

import (
	"fmt"

	"github.com/ChainSafe/mzview/asmparser"
	"github.com/pkg/errors"
)

// ErrDecode is returned when the bytes at the cursor are not an instruction.
var ErrDecode = errors.New("cannot decode instruction")

type Disassembler interface {
	// Decode decodes the instruction at the start of window. ip is the
	// address window[0] is reported at.
	Decode(window []byte, ip uint64) (*asmparser.Instruction, error)
}

type Type int64

const (
	TypeRealMode Type = iota + 1
)

func (t Type) String() string {
	switch t {
	case TypeRealMode:
		return "x86asm"
	default:
		return fmt.Sprintf("Type(%d)", int64(t))
	}
}

// ParseType maps a profile name to a backend type.
func ParseType(name string) (Type, error) {
	switch name {
	case "x86asm", "realmode":
		return TypeRealMode, nil
	default:
		return 0, fmt.Errorf("disassembler %q not supported", name)
	}
}
