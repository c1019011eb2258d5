// Package segment implements analyzer.Analyzer by following the data segment
// register load near the entry point of a small-model DOS program.
//
// Small-model compilers emit a `mov ax, <paragraph>` / `mov ds, ax` pair
// right after the entry point, and the program then addresses its data
// relative to DS. The smallest displacement read through DS marks where
// the data starts inside that paragraph.
package segment

import (
	"github.com/ChainSafe/mzview/analyzer"
	"github.com/ChainSafe/mzview/asmparser"
	"github.com/ChainSafe/mzview/disassembler"
	"github.com/ChainSafe/mzview/mz"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultDecodeWindow    = 20
	DefaultMaxInstructions = 1 << 16
)

type Option func(*segmentAnalyzer)

// WithDecodeWindow sets how many bytes are handed to the disassembler per step.
func WithDecodeWindow(n int) Option {
	return func(a *segmentAnalyzer) {
		if n > 0 {
			a.window = n
		}
	}
}

// WithMaxInstructions bounds the number of instructions a single scan decodes.
func WithMaxInstructions(n int) Option {
	return func(a *segmentAnalyzer) {
		if n > 0 {
			a.maxInstructions = n
		}
	}
}

type segmentAnalyzer struct {
	dis             disassembler.Disassembler
	window          int
	maxInstructions int
}

func NewAnalyzer(dis disassembler.Disassembler, opts ...Option) analyzer.Analyzer {
	a := &segmentAnalyzer{
		dis:             dis,
		window:          DefaultDecodeWindow,
		maxInstructions: DefaultMaxInstructions,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *segmentAnalyzer) Analyze(data []byte, header *mz.Header) (*analyzer.SegmentBoundary, error) {
	start, err := header.StartAddress()
	if err != nil {
		return nil, err
	}

	fileLength := int64(len(data))
	if header.FileLength < fileLength {
		fileLength = header.FileLength
	}

	s := newScan(start, fileLength)
	for s.state != StateDone {
		if s.steps >= a.maxInstructions {
			log.Warnf("segment scan stopped after %d instructions at %#x", s.steps, s.cursor)
			break
		}
		inst, err := a.decode(data, s.cursor, uint64(s.cursor-s.start))
		if err != nil {
			return nil, err
		}
		log.Debugf("%#06x: %s", s.cursor, asmparser.Join(inst.Tokens))
		if err := s.step(inst); err != nil {
			return nil, err
		}
	}
	return s.result()
}

// decode hands the disassembler the window at cursor. ip is the offset of
// cursor inside the load module.
func (a *segmentAnalyzer) decode(data []byte, cursor int64, ip uint64) (*asmparser.Instruction, error) {
	end := cursor + int64(a.window)
	if end > int64(len(data)) {
		end = int64(len(data))
	}

	inst, err := a.dis.Decode(data[cursor:end], ip)
	if err != nil {
		return nil, errors.WithMessagef(err, "decoding at file offset %#x", cursor)
	}
	if inst.Length <= 0 {
		return nil, errors.Wrapf(disassembler.ErrDecode, "zero length instruction at file offset %#x", cursor)
	}
	return inst, nil
}
