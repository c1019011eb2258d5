package segment

import (
	"strconv"
	"strings"

	"github.com/ChainSafe/mzview/analyzer"
	"github.com/ChainSafe/mzview/asmparser"
	"github.com/pkg/errors"
)

var (
	// mov ax, <imm>
	loadAXPattern = asmparser.NewPattern("load-ax",
		asmparser.Mnemonic("mov"),
		asmparser.Register("ax"),
		asmparser.Immediate().As("value"),
	)

	// mov ax, <anything but an immediate>
	writeAXPattern = asmparser.NewPattern("write-ax",
		asmparser.Mnemonic("mov"),
		asmparser.Register("ax"),
		asmparser.Any(),
	)

	// mov ds, ax
	loadDSPattern = asmparser.NewPattern("load-ds",
		asmparser.Mnemonic("mov"),
		asmparser.Register("ds"),
		asmparser.Register("ax"),
	)

	// mov <reg>, [... <imm>]
	// The destination register is not checked: any register load from a
	// displacement counts as a data reference. A segment override before the
	// bracket is allowed.
	loadMemPattern = asmparser.NewPattern("load-mem",
		asmparser.Mnemonic("mov"),
		asmparser.Register(""),
		asmparser.Any(),
		asmparser.BracketOpen(),
		asmparser.Any(),
		asmparser.Immediate().As("disp"),
		asmparser.BracketClose(),
	)
)

// parseLiteral reads a 16-bit literal written as 0x-prefixed or h-suffixed
// hex. A leading minus wraps around to the two's complement value.
func parseLiteral(text string) (uint16, error) {
	digits, neg := strings.CutPrefix(text, "-")
	lower := strings.ToLower(digits)
	switch {
	case strings.HasPrefix(lower, "0x"):
		digits = digits[2:]
	case strings.HasSuffix(lower, "h"):
		digits = digits[:len(digits)-1]
	}

	v, err := strconv.ParseUint(digits, 16, 16)
	if err != nil {
		return 0, errors.Wrapf(analyzer.ErrMalformedOperand, "%q is not a 16-bit hex literal", text)
	}
	if neg {
		v = -v & 0xffff
	}
	return uint16(v), nil
}
